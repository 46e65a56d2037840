package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"repoact-notify/internal/route"
	"repoact-notify/internal/route/repository"
	pkgLog "repoact-notify/pkg/log"
)

const (
	selectRouteQuery = `SELECT path, repository_fullpath, channel_id FROM ` + repository.TableName + ` WHERE path = ?`
	upsertRouteQuery = `INSERT INTO ` + repository.TableName + ` (path, repository_fullpath, channel_id, updated_at)
VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
ON CONFLICT(path) DO UPDATE SET
    repository_fullpath = excluded.repository_fullpath,
    channel_id = excluded.channel_id,
    updated_at = excluded.updated_at`
)

type routeRow struct {
	Path               string         `db:"path"`
	RepositoryFullPath sql.NullString `db:"repository_fullpath"`
	ChannelID          sql.NullString `db:"channel_id"`
}

type implRepository struct {
	db *sqlx.DB
	l  pkgLog.Logger
}

// New creates a SQLite backed route repository. The schema must already be
// migrated (see Migrate).
func New(db *sqlx.DB, l pkgLog.Logger) repository.Repository {
	return &implRepository{
		db: db,
		l:  l,
	}
}

func (r *implRepository) GetRoute(ctx context.Context, opt repository.GetRouteOptions) (route.Route, error) {
	var row routeRow
	err := r.db.GetContext(ctx, &row, selectRouteQuery, opt.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return route.Route{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "sqlite repository: get %s: %v", opt.ID, err)
		return route.Route{}, fmt.Errorf("%w: %w", repository.ErrFailedToGet, err)
	}

	if !row.RepositoryFullPath.Valid || row.RepositoryFullPath.String == "" {
		return route.Route{}, fmt.Errorf("%w: %s has no repository_fullpath", repository.ErrIncompleteRecord, opt.ID)
	}
	if !row.ChannelID.Valid || row.ChannelID.String == "" {
		return route.Route{}, fmt.Errorf("%w: %s has no channel_id", repository.ErrIncompleteRecord, opt.ID)
	}

	return route.Route{
		ID:                 row.Path,
		RepositoryFullPath: row.RepositoryFullPath.String,
		ChannelID:          row.ChannelID.String,
	}, nil
}

func (r *implRepository) PutRoute(ctx context.Context, opt repository.PutRouteOptions) (route.Route, error) {
	if _, err := r.db.ExecContext(ctx, upsertRouteQuery, opt.ID, opt.RepositoryFullPath, opt.ChannelID); err != nil {
		r.l.Errorf(ctx, "sqlite repository: put %s: %v", opt.ID, err)
		return route.Route{}, fmt.Errorf("%w: %w", repository.ErrFailedToPut, err)
	}

	return route.Route{
		ID:                 opt.ID,
		RepositoryFullPath: opt.RepositoryFullPath,
		ChannelID:          opt.ChannelID,
	}, nil
}
