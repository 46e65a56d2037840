package middleware

import (
	"repoact-notify/pkg/log"
)

type Middleware struct {
	l            log.Logger
	maxBodyBytes int64
}

// New creates the shared HTTP middleware. maxBodyBytes <= 0 disables the
// request body limit.
func New(l log.Logger, maxBodyBytes int64) Middleware {
	return Middleware{
		l:            l,
		maxBodyBytes: maxBodyBytes,
	}
}
