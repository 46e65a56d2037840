package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"google.golang.org/api/option"

	"repoact-notify/config"
	"repoact-notify/internal/route/repository"
	"repoact-notify/internal/route/repository/cache"
	redisRepo "repoact-notify/internal/route/repository/redis"
	sqliteRepo "repoact-notify/internal/route/repository/sqlite"
	"repoact-notify/pkg/log"
	"repoact-notify/pkg/secrets"
)

func newSecretStore(ctx context.Context, cfg config.SecretsConfig) (secrets.Store, error) {
	if cfg.Source == config.SecretSourceGCP {
		var opts []option.ClientOption
		if cfg.GCPEndpoint != "" {
			opts = append(opts, option.WithEndpoint(cfg.GCPEndpoint))
		}
		return secrets.NewGCP(ctx, secrets.GCPConfig{
			Project:  cfg.GCPProject,
			SecretID: cfg.GCPSecretID,
			Version:  cfg.GCPVersion,
		}, opts...)
	}

	b := secrets.Bundle{
		SlackBotToken:           cfg.SlackBotToken,
		SlackSigningSecret:      cfg.SlackSigningSecret,
		GitHubAppID:             json.Number(cfg.GitHubAppID),
		GitHubAppInstallationID: json.Number(cfg.GitHubAppInstallationID),
		GitHubWebhookSecret:     cfg.GitHubWebhookSecret,
	}
	if cfg.GitHubAppPEMPath != "" {
		pem, err := os.ReadFile(cfg.GitHubAppPEMPath)
		if err != nil {
			return nil, fmt.Errorf("reading github app key: %w", err)
		}
		b.GitHubAppPEM = string(pem)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return secrets.NewStatic(b), nil
}

// newRouteRepository opens the configured backend behind the read-through
// cache. The returned func releases the backend.
func newRouteRepository(ctx context.Context, cfg config.RouteStoreConfig, l log.Logger) (repository.Repository, func(), error) {
	var (
		backend repository.Repository
		closeFn func()
	)

	switch cfg.Driver {
	case config.RouteDriverRedis:
		client, err := redisRepo.NewClient(ctx, redisRepo.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		backend = redisRepo.New(client, cfg.RedisKeyPrefix, l)
		closeFn = func() { _ = client.Close() }
	default:
		db, err := sqliteRepo.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqliteRepo.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		backend = sqliteRepo.New(db, l)
		closeFn = func() { _ = db.Close() }
	}

	if cfg.CacheSize <= 0 {
		return backend, closeFn, nil
	}
	return cache.New(backend, cfg.CacheSize, cfg.CacheTTL), closeFn, nil
}
