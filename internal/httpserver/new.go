package httpserver

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"repoact-notify/internal/middleware"
	"repoact-notify/internal/notify"
	"repoact-notify/internal/route"
	"repoact-notify/internal/webhook"
	"repoact-notify/pkg/log"
	"repoact-notify/pkg/secrets"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	mw          middleware.Middleware

	// Domains
	notifyUC notify.UseCase
	routeUC  route.UseCase
	secrets  secrets.Store
	security webhook.SecurityConfig
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger       log.Logger
	Port         int
	Mode         string
	Environment  string
	MaxBodyBytes int64

	// TrustedProxies may set X-Forwarded-For. Empty trusts none.
	TrustedProxies []string

	NotifyUC notify.UseCase
	RouteUC  route.UseCase
	Secrets  secrets.Store
	Security webhook.SecurityConfig
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		mw:          middleware.New(logger, cfg.MaxBodyBytes),
		notifyUC:    cfg.NotifyUC,
		routeUC:     cfg.RouteUC,
		secrets:     cfg.Secrets,
		security:    cfg.Security,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.notifyUC == nil {
		return errors.New("notify usecase is required")
	}
	return nil
}
