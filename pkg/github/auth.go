package github

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gh "github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
)

const (
	assertionBackdate = 60 * time.Second
	assertionLifetime = 10 * time.Minute
)

// SignAppAssertion builds the RS256 JWT a GitHub App presents to exchange for
// an installation token. iat is backdated to absorb clock skew.
func SignAppAssertion(appID int64, key *rsa.PrivateKey, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    strconv.FormatInt(appID, 10),
		IssuedAt:  jwt.NewNumericDate(now.Add(-assertionBackdate)),
		ExpiresAt: jwt.NewNumericDate(now.Add(assertionLifetime)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign app assertion: %w", err)
	}
	return signed, nil
}

// IssueInstallationToken signs an app assertion and exchanges it for an
// installation access token. Nothing is cached.
func IssueInstallationToken(ctx context.Context, opts Options, cred AppCredentials) (InstallationToken, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(cred.PrivateKeyPEM)
	if err != nil {
		return InstallationToken{}, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}

	assertion, err := SignAppAssertion(cred.AppID, key, time.Now())
	if err != nil {
		return InstallationToken{}, err
	}

	client, err := newRESTClient(opts, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: assertion}))
	if err != nil {
		return InstallationToken{}, err
	}

	tok, _, err := client.Apps.CreateInstallationToken(ctx, cred.InstallationID, nil)
	if err != nil {
		return InstallationToken{}, fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}

	return InstallationToken{
		Token:     tok.GetToken(),
		ExpiresAt: tok.GetExpiresAt().Time,
	}, nil
}

// newRESTClient builds a go-github client that authenticates every request
// with a bearer token from ts.
func newRESTClient(opts Options, ts oauth2.TokenSource) (*gh.Client, error) {
	base := http.DefaultTransport
	var timeout time.Duration
	if opts.HTTPClient != nil {
		if opts.HTTPClient.Transport != nil {
			base = opts.HTTPClient.Transport
		}
		timeout = opts.HTTPClient.Timeout
	}

	client := gh.NewClient(&http.Client{
		Transport: &oauth2.Transport{Source: ts, Base: base},
		Timeout:   timeout,
	})

	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	client.BaseURL = u

	return client, nil
}
