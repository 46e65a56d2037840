package webhook

import (
	"errors"
	"net/http"

	"repoact-notify/internal/notify"
	pkgErrors "repoact-notify/pkg/errors"
)

// mapError translates notifier errors into HTTP errors from pkg/errors.
func (h *Handler) mapError(err error) *pkgErrors.HTTPError {
	switch {
	case errors.Is(err, notify.ErrInvalidSignature):
		return pkgErrors.NewHTTPError(http.StatusUnauthorized, "invalid signature")
	case errors.Is(err, notify.ErrMalformedPayload):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "malformed payload")
	case errors.Is(err, notify.ErrRouteNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "route not found")
	case errors.Is(err, notify.ErrUnhandledAction):
		return pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, "unhandled action")
	case errors.Is(err, notify.ErrMissingRequiredField):
		return pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, "missing required field")
	case errors.Is(err, notify.ErrOriginLookupFailed):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, "github lookup failed")
	case errors.Is(err, notify.ErrDeliveryFailed):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, "slack delivery failed")
	}
	return pkgErrors.ErrInternalServerError
}
