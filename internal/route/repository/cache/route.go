package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"repoact-notify/internal/route"
	"repoact-notify/internal/route/repository"
)

const (
	defaultSize = 256
	defaultTTL  = time.Minute
)

// implRepository fronts another route repository with a bounded, expiring
// in-process cache. Only found routes are cached, so a newly registered route
// is visible on the next lookup.
type implRepository struct {
	next   repository.Repository
	routes *expirable.LRU[string, route.Route]
}

// New wraps next. size <= 0 and ttl <= 0 fall back to defaults.
func New(next repository.Repository, size int, ttl time.Duration) repository.Repository {
	if size <= 0 {
		size = defaultSize
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &implRepository{
		next:   next,
		routes: expirable.NewLRU[string, route.Route](size, nil, ttl),
	}
}

func (r *implRepository) GetRoute(ctx context.Context, opt repository.GetRouteOptions) (route.Route, error) {
	if cached, ok := r.routes.Get(opt.ID); ok {
		return cached, nil
	}

	found, err := r.next.GetRoute(ctx, opt)
	if err != nil {
		return route.Route{}, err
	}
	if found.ID != "" {
		r.routes.Add(opt.ID, found)
	}
	return found, nil
}

func (r *implRepository) PutRoute(ctx context.Context, opt repository.PutRouteOptions) (route.Route, error) {
	stored, err := r.next.PutRoute(ctx, opt)
	if err != nil {
		r.routes.Remove(opt.ID)
		return route.Route{}, err
	}
	r.routes.Add(opt.ID, stored)
	return stored, nil
}
