package repository

import (
	"context"

	"repoact-notify/internal/route"
)

// TableName is the table (or key namespace) holding route records. It is
// not shared with any other data.
const TableName = "github_activity_route_map"

// Repository is the composed interface for the route data store.
type Repository interface {
	RouteRepository
}

// RouteRepository is a point get/put store keyed by route id.
// GetRoute returns a zero Route and a nil error when the id is absent.
type RouteRepository interface {
	GetRoute(ctx context.Context, opt GetRouteOptions) (route.Route, error)
	PutRoute(ctx context.Context, opt PutRouteOptions) (route.Route, error)
}
