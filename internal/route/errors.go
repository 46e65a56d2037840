package route

import "errors"

var (
	ErrRouteNotFound     = errors.New("route not found")
	ErrInvalidRouteID    = errors.New("invalid route id")
	ErrInvalidRepository = errors.New("repository must be owner/name")
	ErrInvalidChannel    = errors.New("channel id is required")
)
