package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// Mode selects which bytes are signed and which prefix the rendered digest carries.
type Mode string

const (
	// ModeBody signs the raw body. GitHub sends it in X-Hub-Signature-256.
	ModeBody Mode = "sha256="
	// ModeTimestamped signs "v0:<timestamp>:<body>". Slack sends it in X-Slack-Signature.
	ModeTimestamped Mode = "v0="
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrSecretMissing    = errors.New("signing secret not configured")
	ErrUnknownMode      = errors.New("unknown signature mode")
)

// Compute renders the expected signature for body in the given mode.
func Compute(mode Mode, body []byte, timestamp string, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", ErrSecretMissing
	}

	mac := hmac.New(sha256.New, secret)
	switch mode {
	case ModeBody:
		mac.Write(body)
	case ModeTimestamped:
		mac.Write([]byte("v0:" + timestamp + ":"))
		mac.Write(body)
	default:
		return "", ErrUnknownMode
	}

	return string(mode) + hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify reports whether provided matches the signature computed over body.
// The comparison runs in constant time over the rendered signatures.
func Verify(mode Mode, body []byte, timestamp, provided string, secret []byte) bool {
	return Check(mode, body, timestamp, provided, secret) == nil
}

// Check is Verify returning ErrInvalidSignature (or a configuration error) instead of a bool.
func Check(mode Mode, body []byte, timestamp, provided string, secret []byte) error {
	expected, err := Compute(mode, body, timestamp, secret)
	if err != nil {
		return err
	}

	// Header values are case-insensitive hex; normalise before comparing.
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(provided))) {
		return ErrInvalidSignature
	}
	return nil
}
