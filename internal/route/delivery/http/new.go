package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"repoact-notify/internal/route"
	"repoact-notify/pkg/log"
	"repoact-notify/pkg/secrets"
)

// Handler is the public interface for the route configurator delivery layer.
type Handler interface {
	Command(c *gin.Context)
}

type handler struct {
	l       log.Logger
	uc      route.UseCase
	secrets secrets.Store
	now     func() time.Time
}

// New creates the slash-command handler for route configuration.
func New(l log.Logger, uc route.UseCase, store secrets.Store) *handler {
	return &handler{
		l:       l,
		uc:      uc,
		secrets: store,
		now:     time.Now,
	}
}
