package notify

import (
	"context"

	"repoact-notify/internal/route"
	"repoact-notify/pkg/github"
	"repoact-notify/pkg/slack"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Deliver runs one webhook delivery from signature check to chat post.
	Deliver(ctx context.Context, input DeliverInput) (DeliverOutput, error)
}

// RouteResolver looks up where a route posts.
type RouteResolver interface {
	Get(ctx context.Context, routeID string) (route.Route, error)
}

// OriginClient is the GitHub lookups a notification may need.
type OriginClient interface {
	QueryPullRequestFlags(ctx context.Context, number int) (github.PullRequestFlags, error)
	FetchWorkflowRunDetails(ctx context.Context, runURL string) (github.WorkflowRunDetails, error)
	QueryWaitingContext(ctx context.Context, sha, environment string) (github.WaitingContext, error)
}

// OriginConnector authenticates as the app installation for one repository.
type OriginConnector interface {
	Connect(ctx context.Context, cred github.AppCredentials, repoFullName string) (OriginClient, error)
}

type ChatPoster interface {
	PostMessage(ctx context.Context, token string, msg slack.Message) (string, error)
}
