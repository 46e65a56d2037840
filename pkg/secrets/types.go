package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrLoadFailed    = errors.New("failed to load secret bundle")
	ErrIncomplete    = errors.New("secret bundle is incomplete")
	ErrUnknownSource = errors.New("unknown secret source")
)

// Bundle is the process secret set stored as one JSON document.
type Bundle struct {
	SlackBotToken           string      `json:"slack_bot_token"`
	SlackSigningSecret      string      `json:"slack_app_signing_secret"`
	GitHubAppID             json.Number `json:"github_app_id"`
	GitHubAppInstallationID json.Number `json:"github_app_installation_id"`
	GitHubWebhookSecret     string      `json:"github_webhook_verification_secret"`
	GitHubAppPEM            string      `json:"github_app_pem"`
}

// Store returns the current secret bundle. Callers load it once per request.
type Store interface {
	Load(ctx context.Context) (Bundle, error)
}

// AppID parses the GitHub App id.
func (b Bundle) AppID() (int64, error) {
	id, err := b.GitHubAppID.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: github_app_id: %w", ErrIncomplete, err)
	}
	return id, nil
}

// InstallationID parses the GitHub App installation id.
func (b Bundle) InstallationID() (int64, error) {
	id, err := b.GitHubAppInstallationID.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: github_app_installation_id: %w", ErrIncomplete, err)
	}
	return id, nil
}

// Validate checks the fields the webhook path cannot work without.
func (b Bundle) Validate() error {
	switch {
	case b.SlackBotToken == "":
		return fmt.Errorf("%w: slack_bot_token", ErrIncomplete)
	case b.GitHubWebhookSecret == "":
		return fmt.Errorf("%w: github_webhook_verification_secret", ErrIncomplete)
	case b.GitHubAppPEM == "":
		return fmt.Errorf("%w: github_app_pem", ErrIncomplete)
	}
	if _, err := b.AppID(); err != nil {
		return err
	}
	if _, err := b.InstallationID(); err != nil {
		return err
	}
	return nil
}

// Decode parses a JSON secret document.
func Decode(data []byte) (Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("%w: decode: %w", ErrLoadFailed, err)
	}
	return b, nil
}
