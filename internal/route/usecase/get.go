package usecase

import (
	"context"

	"repoact-notify/internal/route"
	repo "repoact-notify/internal/route/repository"
)

// Get resolves routeID. An absent route is ErrRouteNotFound.
func (uc *implUseCase) Get(ctx context.Context, routeID string) (route.Route, error) {
	if err := validateRouteID(routeID); err != nil {
		return route.Route{}, err
	}

	r, err := uc.repo.GetRoute(ctx, repo.GetRouteOptions{ID: routeID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Get GetRoute: %v", err)
		return route.Route{}, err
	}
	if r.ID == "" {
		return route.Route{}, route.ErrRouteNotFound
	}

	return r, nil
}
