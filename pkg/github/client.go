package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
)

// Client is an installation-authenticated GitHub client bound to one repository.
// It lives for a single webhook delivery.
type Client struct {
	rest     *gh.Client
	owner    string
	repo     string
	webURL   string
	prAccept string
}

// NewClient exchanges the app credentials for an installation token and
// returns a client scoped to repoFullName ("owner/name").
func NewClient(ctx context.Context, opts Options, cred AppCredentials, repoFullName string) (*Client, error) {
	if _, _, err := splitRepository(repoFullName); err != nil {
		return nil, err
	}
	tok, err := IssueInstallationToken(ctx, opts, cred)
	if err != nil {
		return nil, err
	}
	return NewClientWithToken(opts, tok, repoFullName)
}

// NewClientWithToken builds a client around an already issued token.
func NewClientWithToken(opts Options, tok InstallationToken, repoFullName string) (*Client, error) {
	owner, repo, err := splitRepository(repoFullName)
	if err != nil {
		return nil, err
	}

	rest, err := newRESTClient(opts, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok.Token}))
	if err != nil {
		return nil, err
	}

	accept := opts.PullRequestAccept
	if accept == "" {
		accept = DraftPreviewAccept
	}
	webURL := strings.TrimSuffix(opts.WebURL, "/")
	if webURL == "" {
		webURL = DefaultWebURL
	}

	return &Client{
		rest:     rest,
		owner:    owner,
		repo:     repo,
		webURL:   webURL,
		prAccept: accept,
	}, nil
}

func splitRepository(full string) (string, string, error) {
	owner, repo, ok := strings.Cut(full, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepository, full)
	}
	return owner, repo, nil
}

// QueryPullRequestFlags fetches the merged and draft flags of a pull request.
func (c *Client) QueryPullRequestFlags(ctx context.Context, number int) (PullRequestFlags, error) {
	u := fmt.Sprintf("repos/%s/%s/pulls/%d", c.owner, c.repo, number)
	req, err := c.rest.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return PullRequestFlags{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	req.Header.Set("Accept", c.prAccept)

	var pr gh.PullRequest
	if _, err := c.rest.Do(ctx, req, &pr); err != nil {
		return PullRequestFlags{}, fmt.Errorf("%w: pull request #%d: %w", ErrLookupFailed, number, err)
	}

	return PullRequestFlags{Merged: pr.GetMerged(), Draft: pr.GetDraft()}, nil
}

// FetchWorkflowRunDetails loads the workflow run behind runURL, which must
// point at the configured API host.
func (c *Client) FetchWorkflowRunDetails(ctx context.Context, runURL string) (WorkflowRunDetails, error) {
	u, err := url.Parse(runURL)
	if err != nil {
		return WorkflowRunDetails{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if u.IsAbs() && u.Host != c.rest.BaseURL.Host {
		return WorkflowRunDetails{}, fmt.Errorf("%w: %s", ErrForeignURL, runURL)
	}

	req, err := c.rest.NewRequest(http.MethodGet, runURL, nil)
	if err != nil {
		return WorkflowRunDetails{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	var run gh.WorkflowRun
	if _, err := c.rest.Do(ctx, req, &run); err != nil {
		return WorkflowRunDetails{}, fmt.Errorf("%w: workflow run: %w", ErrLookupFailed, err)
	}

	return WorkflowRunDetails{RunNumber: run.GetRunNumber(), HTMLURL: run.GetHTMLURL()}, nil
}
