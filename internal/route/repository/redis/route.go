package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"repoact-notify/internal/route"
	"repoact-notify/internal/route/repository"
	pkgLog "repoact-notify/pkg/log"
)

const (
	fieldRepository = "repository_fullpath"
	fieldChannel    = "channel_id"
)

type implRepository struct {
	client    *redis.Client
	keyPrefix string
	l         pkgLog.Logger
}

// New creates a Redis backed route repository. Each route is a hash at
// keyPrefix + TableName + ":" + id.
func New(client *redis.Client, keyPrefix string, l pkgLog.Logger) repository.Repository {
	return &implRepository{
		client:    client,
		keyPrefix: keyPrefix,
		l:         l,
	}
}

func (r *implRepository) key(id string) string {
	return r.keyPrefix + repository.TableName + ":" + id
}

func (r *implRepository) GetRoute(ctx context.Context, opt repository.GetRouteOptions) (route.Route, error) {
	fields, err := r.client.HGetAll(ctx, r.key(opt.ID)).Result()
	if err != nil {
		r.l.Errorf(ctx, "redis repository: get %s: %v", opt.ID, err)
		return route.Route{}, fmt.Errorf("%w: redis hgetall failed: %w", repository.ErrFailedToGet, err)
	}
	if len(fields) == 0 {
		return route.Route{}, nil
	}

	repoPath := fields[fieldRepository]
	if repoPath == "" {
		return route.Route{}, fmt.Errorf("%w: %s has no %s", repository.ErrIncompleteRecord, opt.ID, fieldRepository)
	}
	channel := fields[fieldChannel]
	if channel == "" {
		return route.Route{}, fmt.Errorf("%w: %s has no %s", repository.ErrIncompleteRecord, opt.ID, fieldChannel)
	}

	return route.Route{
		ID:                 opt.ID,
		RepositoryFullPath: repoPath,
		ChannelID:          channel,
	}, nil
}

func (r *implRepository) PutRoute(ctx context.Context, opt repository.PutRouteOptions) (route.Route, error) {
	err := r.client.HSet(ctx, r.key(opt.ID), map[string]interface{}{
		fieldRepository: opt.RepositoryFullPath,
		fieldChannel:    opt.ChannelID,
	}).Err()
	if err != nil {
		r.l.Errorf(ctx, "redis repository: put %s: %v", opt.ID, err)
		return route.Route{}, fmt.Errorf("%w: redis hset failed: %w", repository.ErrFailedToPut, err)
	}

	return route.Route{
		ID:                 opt.ID,
		RepositoryFullPath: opt.RepositoryFullPath,
		ChannelID:          opt.ChannelID,
	}, nil
}
