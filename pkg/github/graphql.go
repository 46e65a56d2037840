package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type graphQLRequest struct {
	Query string `json:"query"`
}

type graphQLError struct {
	Message string   `json:"message"`
	Type    string   `json:"type,omitempty"`
	Path    []string `json:"path,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// PostGraphQL runs query against the GraphQL endpoint and decodes "data" into out.
func (c *Client) PostGraphQL(ctx context.Context, query string, out any) error {
	req, err := c.rest.NewRequest(http.MethodPost, "graphql", graphQLRequest{Query: query})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	var resp graphQLResponse
	if _, err := c.rest.Do(ctx, req, &resp); err != nil {
		return fmt.Errorf("%w: graphql: %w", ErrLookupFailed, err)
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("%w: %w: %s", ErrLookupFailed, ErrGraphQL, strings.Join(msgs, "; "))
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return fmt.Errorf("%w: graphql: empty data", ErrLookupFailed)
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("%w: graphql decode: %w", ErrLookupFailed, err)
	}
	return nil
}

// waitingContextQuery selects the head commit and the first protection rule's
// reviewers of a deployment environment in one round trip.
func (c *Client) waitingContextQuery(sha, environment string) string {
	commitURL := fmt.Sprintf("%s/%s/%s/commit/%s", c.webURL, c.owner, c.repo, sha)
	return fmt.Sprintf(`query {
  commit: resource(url: %q) {
    ... on Commit { message committer { name } }
  }
  repository(owner: %q, name: %q) {
    environment(name: %q) {
      protectionRules(first: 1) {
        totalCount
        nodes {
          reviewers(first: 20) {
            nodes {
              __typename
              ... on User { name login }
              ... on Team { name slug }
            }
          }
        }
      }
    }
  }
}`, commitURL, c.owner, c.repo, environment)
}

type waitingContextData struct {
	Commit *struct {
		Message   string `json:"message"`
		Committer struct {
			Name string `json:"name"`
		} `json:"committer"`
	} `json:"commit"`
	Repository *struct {
		Environment *struct {
			ProtectionRules struct {
				TotalCount int `json:"totalCount"`
				Nodes      []struct {
					Reviewers struct {
						Nodes []struct {
							Typename string `json:"__typename"`
							Name     string `json:"name"`
							Login    string `json:"login"`
							Slug     string `json:"slug"`
						} `json:"nodes"`
					} `json:"reviewers"`
				} `json:"nodes"`
			} `json:"protectionRules"`
		} `json:"environment"`
	} `json:"repository"`
}

// QueryWaitingContext resolves the head commit message/committer and the
// required reviewers of environment.
func (c *Client) QueryWaitingContext(ctx context.Context, sha, environment string) (WaitingContext, error) {
	var data waitingContextData
	if err := c.PostGraphQL(ctx, c.waitingContextQuery(sha, environment), &data); err != nil {
		return WaitingContext{}, err
	}
	if data.Commit == nil {
		return WaitingContext{}, fmt.Errorf("%w: commit %s not found", ErrLookupFailed, sha)
	}

	out := WaitingContext{
		CommitMessage: data.Commit.Message,
		CommitterName: data.Commit.Committer.Name,
	}
	if data.Repository == nil || data.Repository.Environment == nil {
		return out, nil
	}
	for _, rule := range data.Repository.Environment.ProtectionRules.Nodes {
		for _, n := range rule.Reviewers.Nodes {
			r := Reviewer{Kind: n.Typename, Name: n.Name, Login: n.Login}
			if n.Typename == "Team" {
				r.Login = n.Slug
			}
			out.Reviewers = append(out.Reviewers, r)
		}
	}
	return out, nil
}
