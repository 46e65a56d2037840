package webhook

import (
	"repoact-notify/internal/notify"
	pkgLog "repoact-notify/pkg/log"
)

type Handler struct {
	notifyUC notify.UseCase
	security *SecurityValidator
	l        pkgLog.Logger
}

func NewHandler(
	notifyUC notify.UseCase,
	securityConfig SecurityConfig,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		notifyUC: notifyUC,
		security: NewSecurityValidator(securityConfig),
		l:        l,
	}
}
