package usecase

import (
	"context"
	"strings"

	"repoact-notify/internal/route"
	repo "repoact-notify/internal/route/repository"
)

// Register creates or replaces the route for input.RouteID.
func (uc *implUseCase) Register(ctx context.Context, input route.RegisterInput) (route.Route, error) {
	if err := validateRouteID(input.RouteID); err != nil {
		return route.Route{}, err
	}
	if err := validateRepository(input.RepositoryFullPath); err != nil {
		return route.Route{}, err
	}
	if strings.TrimSpace(input.ChannelID) == "" {
		return route.Route{}, route.ErrInvalidChannel
	}

	r, err := uc.repo.PutRoute(ctx, repo.PutRouteOptions{
		ID:                 input.RouteID,
		RepositoryFullPath: input.RepositoryFullPath,
		ChannelID:          input.ChannelID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Register PutRoute: %v", err)
		return route.Route{}, err
	}

	uc.l.Infof(ctx, "uc.Register: route %s -> %s in %s", r.ID, r.RepositoryFullPath, r.ChannelID)
	return r, nil
}
