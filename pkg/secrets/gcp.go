package secrets

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/secretmanager/v1"
)

// GCPConfig names one Secret Manager secret version holding the JSON bundle.
type GCPConfig struct {
	Project  string
	SecretID string
	Version  string // defaults to "latest"
}

func (c GCPConfig) resourceName() string {
	version := c.Version
	if version == "" {
		version = "latest"
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", c.Project, c.SecretID, version)
}

type gcpStore struct {
	service *secretmanager.Service
	name    string
}

// NewGCP creates a Secret Manager backed Store using application default
// credentials unless opts say otherwise.
func NewGCP(ctx context.Context, cfg GCPConfig, opts ...option.ClientOption) (Store, error) {
	svc, err := secretmanager.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create secretmanager service: %w", err)
	}
	return &gcpStore{service: svc, name: cfg.resourceName()}, nil
}

// NewGCPFromHTTP creates a Secret Manager backed Store over a caller supplied
// HTTP client.
func NewGCPFromHTTP(ctx context.Context, cfg GCPConfig, httpClient *http.Client) (Store, error) {
	return NewGCP(ctx, cfg, option.WithHTTPClient(httpClient))
}

func (s *gcpStore) Load(ctx context.Context) (Bundle, error) {
	resp, err := s.service.Projects.Secrets.Versions.Access(s.name).Context(ctx).Do()
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: access %s: %w", ErrLoadFailed, s.name, err)
	}
	if resp.Payload == nil {
		return Bundle{}, fmt.Errorf("%w: %s has no payload", ErrLoadFailed, s.name)
	}

	data, err := base64.StdEncoding.DecodeString(resp.Payload.Data)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: payload encoding: %w", ErrLoadFailed, err)
	}
	b, err := Decode(data)
	if err != nil {
		return Bundle{}, err
	}
	if err := b.Validate(); err != nil {
		return Bundle{}, fmt.Errorf("%s: %w", s.name, err)
	}
	return b, nil
}
