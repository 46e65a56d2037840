package http

import (
	"errors"

	"repoact-notify/internal/route"
)

var (
	errStaleRequest   = errors.New("request timestamp outside the accepted window")
	errUnknownCommand = errors.New("unknown command")
	errMissingFlag    = errors.New("missing required flag")
)

// userFacing reports whether err should be shown to the caller as a reply
// instead of failing the request.
func userFacing(err error) bool {
	switch {
	case errors.Is(err, route.ErrRouteNotFound),
		errors.Is(err, route.ErrInvalidRouteID),
		errors.Is(err, route.ErrInvalidRepository),
		errors.Is(err, route.ErrInvalidChannel),
		errors.Is(err, errUnknownCommand),
		errors.Is(err, errMissingFlag):
		return true
	}
	return false
}
