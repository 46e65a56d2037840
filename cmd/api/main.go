package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"repoact-notify/config"
	_ "repoact-notify/docs" // Swagger docs
	"repoact-notify/internal/httpserver"
	notifyUsecase "repoact-notify/internal/notify/usecase"
	"repoact-notify/internal/phrase"
	routeUsecase "repoact-notify/internal/route/usecase"
	"repoact-notify/internal/webhook"
	"repoact-notify/pkg/github"
	"repoact-notify/pkg/log"
	"repoact-notify/pkg/slack"
)

// @title       repoact-notify API
// @description Relays GitHub repository activity to Slack channels.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:          cfg.Logger.Level,
		Mode:           cfg.Logger.Mode,
		Encoding:       cfg.Logger.Encoding,
		ColorEnabled:   cfg.Logger.ColorEnabled,
		FilePath:       cfg.Logger.FilePath,
		FileMaxSizeMB:  cfg.Logger.FileMaxSizeMB,
		FileMaxBackups: cfg.Logger.FileMaxBackups,
		FileMaxAgeDays: cfg.Logger.FileMaxAgeDays,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting repoact-notify...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Secrets
	store, err := newSecretStore(ctx, cfg.Secrets)
	if err != nil {
		logger.Error(ctx, "Failed to initialize secret store: ", err)
		return
	}
	logger.Infof(ctx, "Secret source: %s", cfg.Secrets.Source)

	// 4. Route store
	routeRepo, closeRoutes, err := newRouteRepository(ctx, cfg.RouteStore, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize route store: ", err)
		return
	}
	defer closeRoutes()
	logger.Infof(ctx, "Route store: %s", cfg.RouteStore.Driver)

	routeUC := routeUsecase.New(routeRepo, logger)

	// 5. Notification pipeline
	phrases, err := phrase.Default()
	if err != nil {
		logger.Error(ctx, "Failed to load phrase catalog: ", err)
		return
	}

	chat := slack.New(slack.Options{
		APIURL:     cfg.Slack.APIURL,
		RatePerSec: cfg.Slack.RatePerSec,
		Burst:      cfg.Slack.Burst,
	})
	origin := notifyUsecase.NewGitHubConnector(github.Options{
		APIURL:            cfg.GitHub.APIBaseURL,
		WebURL:            cfg.GitHub.WebURL,
		PullRequestAccept: cfg.GitHub.PullRequestAccept,
	})

	notifyUC := notifyUsecase.New(logger, store, routeUC, origin, chat, phrases, phrase.NewRandom(cfg.Phrase.Seed))

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		MaxBodyBytes:   cfg.Webhook.MaxBodyBytes,
		TrustedProxies: cfg.HTTPServer.TrustedProxies,
		NotifyUC:       notifyUC,
		RouteUC:        routeUC,
		Secrets:        store,
		Security:       webhook.SecurityConfig{AllowedIPs: cfg.Webhook.AllowedIPs},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(context.Background(), "Server stopped gracefully")
}
