package slack

import (
	"net/http"

	"github.com/slack-go/slack"
)

// Message is the chat.postMessage request body.
type Message struct {
	Channel     string             `json:"channel"`
	Text        string             `json:"text"`
	AsUser      bool               `json:"as_user"`
	UnfurlLinks bool               `json:"unfurl_links"`
	UnfurlMedia bool               `json:"unfurl_media"`
	Attachments []slack.Attachment `json:"attachments"`
}

// Options tunes the client. Zero values mean no pacing and the default API URL.
type Options struct {
	APIURL     string
	RatePerSec float64
	Burst      int
	HTTPClient *http.Client
}

// apiResponse is the envelope every Web API method returns.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
