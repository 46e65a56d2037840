package github

import (
	"net/http"
	"time"
)

const (
	DefaultAPIURL = "https://api.github.com/"
	DefaultWebURL = "https://github.com"

	// DraftPreviewAccept makes the pulls endpoint report the draft flag on
	// installations that still gate it behind the preview media type.
	DraftPreviewAccept = "application/vnd.github.shadow-cat-preview+json"
)

// Options configures where and how the client talks to GitHub.
type Options struct {
	APIURL            string // REST and GraphQL root, trailing slash optional
	WebURL            string // used to build commit resource URLs for GraphQL
	PullRequestAccept string
	HTTPClient        *http.Client
}

// AppCredentials identifies a GitHub App installation.
type AppCredentials struct {
	AppID          int64
	InstallationID int64
	PrivateKeyPEM  []byte
}

// InstallationToken is a short-lived installation access token.
type InstallationToken struct {
	Token     string
	ExpiresAt time.Time
}

// PullRequestFlags are the authoritative merged/draft flags of a pull request.
type PullRequestFlags struct {
	Merged bool
	Draft  bool
}

type WorkflowRunDetails struct {
	RunNumber int
	HTMLURL   string
}

// Reviewer is a required reviewer on a deployment environment.
type Reviewer struct {
	Kind  string // "User" or "Team"
	Name  string
	Login string // login for users, slug for teams
}

// Display renders the reviewer for a chat message.
func (r Reviewer) Display() string {
	switch {
	case r.Kind == "Team":
		return "@" + r.Login
	case r.Name != "" && r.Login != "":
		return r.Name + " (" + r.Login + ")"
	case r.Login != "":
		return r.Login
	}
	return r.Name
}

// WaitingContext is what a waiting deployment notification shows about the
// head commit and the environment reviewers.
type WaitingContext struct {
	CommitMessage string
	CommitterName string
	Reviewers     []Reviewer
}
