package usecase

import (
	"context"

	"repoact-notify/internal/notify"
	"repoact-notify/pkg/github"
)

type githubConnector struct {
	opts github.Options
}

// NewGitHubConnector returns an OriginConnector that issues a fresh
// installation token on every Connect.
func NewGitHubConnector(opts github.Options) notify.OriginConnector {
	return githubConnector{opts: opts}
}

func (c githubConnector) Connect(ctx context.Context, cred github.AppCredentials, repoFullName string) (notify.OriginClient, error) {
	client, err := github.NewClient(ctx, c.opts, cred, repoFullName)
	if err != nil {
		return nil, err
	}
	return client, nil
}
