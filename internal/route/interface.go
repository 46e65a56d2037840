package route

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	Get(ctx context.Context, routeID string) (Route, error)
	Register(ctx context.Context, input RegisterInput) (Route, error)
}
