package usecase

import (
	"context"
	"fmt"
	"sync"

	"repoact-notify/internal/notify"
	"repoact-notify/pkg/github"
	"repoact-notify/pkg/secrets"
)

// originSession connects to GitHub on first use only, so deliveries that
// need no lookup never exchange a token.
type originSession struct {
	connect func(ctx context.Context) (notify.OriginClient, error)

	once   sync.Once
	client notify.OriginClient
	err    error
}

func (uc *implUseCase) newOriginSession(bundle secrets.Bundle, repoFullName string) *originSession {
	return &originSession{
		connect: func(ctx context.Context) (notify.OriginClient, error) {
			appID, err := bundle.AppID()
			if err != nil {
				return nil, fmt.Errorf("%w: %w", notify.ErrSecretsUnavailable, err)
			}
			installationID, err := bundle.InstallationID()
			if err != nil {
				return nil, fmt.Errorf("%w: %w", notify.ErrSecretsUnavailable, err)
			}

			client, err := uc.origin.Connect(ctx, github.AppCredentials{
				AppID:          appID,
				InstallationID: installationID,
				PrivateKeyPEM:  []byte(bundle.GitHubAppPEM),
			}, repoFullName)
			if err != nil {
				return nil, fmt.Errorf("%w: connect: %w", notify.ErrOriginLookupFailed, err)
			}
			return client, nil
		},
	}
}

func (s *originSession) get(ctx context.Context) (notify.OriginClient, error) {
	s.once.Do(func() {
		s.client, s.err = s.connect(ctx)
	})
	return s.client, s.err
}

// used reports whether any lookup was attempted.
func (s *originSession) used() bool {
	return s.client != nil || s.err != nil
}

// pullRequestFlags fetches the authoritative merged/draft flags.
func (s *originSession) pullRequestFlags(ctx context.Context, number int) (github.PullRequestFlags, error) {
	client, err := s.get(ctx)
	if err != nil {
		return github.PullRequestFlags{}, err
	}
	flags, err := client.QueryPullRequestFlags(ctx, number)
	if err != nil {
		return github.PullRequestFlags{}, fmt.Errorf("%w: pull request #%d: %w", notify.ErrOriginLookupFailed, number, err)
	}
	return flags, nil
}
