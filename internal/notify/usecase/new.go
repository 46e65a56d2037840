package usecase

import (
	"repoact-notify/internal/notify"
	"repoact-notify/internal/phrase"
	"repoact-notify/pkg/log"
	"repoact-notify/pkg/secrets"
)

type implUseCase struct {
	l       log.Logger
	secrets secrets.Store
	routes  notify.RouteResolver
	origin  notify.OriginConnector
	chat    notify.ChatPoster
	phrases *phrase.Catalog
	sel     phrase.Selector
}

// New creates the notification pipeline. sel decides every randomized
// phrasing choice; pass phrase.Fixed in tests for exact output.
func New(
	l log.Logger,
	store secrets.Store,
	routes notify.RouteResolver,
	origin notify.OriginConnector,
	chat notify.ChatPoster,
	phrases *phrase.Catalog,
	sel phrase.Selector,
) *implUseCase {
	return &implUseCase{
		l:       l,
		secrets: store,
		routes:  routes,
		origin:  origin,
		chat:    chat,
		phrases: phrases,
		sel:     sel,
	}
}
