package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	routeHTTP "repoact-notify/internal/route/delivery/http"
	"repoact-notify/internal/webhook"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.mw.RequestID(), srv.mw.Logging(), srv.mw.BodyLimit())

	srv.l.Infof(context.Background(), "Server mode: %s", srv.environment)
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	webhook.RegisterRoutes(srv.gin, webhook.NewHandler(srv.notifyUC, srv.security, srv.l))
	srv.l.Infof(ctx, "GitHub webhook routes registered at POST /webhook/github/:route_id and POST /invoke")

	if srv.routeUC != nil {
		if srv.secrets == nil {
			return errors.New("secrets store is required for the route configurator")
		}
		h := routeHTTP.New(srv.l, srv.routeUC, srv.secrets)
		routeHTTP.RegisterRoutes(srv.gin.Group("/slack"), h)
		srv.l.Infof(ctx, "Route configurator registered at POST /slack/commands")
	} else {
		srv.l.Infof(ctx, "Route usecase not configured, skipping slash command route")
	}

	return nil
}
