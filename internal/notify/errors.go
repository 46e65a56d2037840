package notify

import "errors"

var (
	ErrInvalidSignature     = errors.New("invalid webhook signature")
	ErrMalformedPayload     = errors.New("malformed webhook payload")
	ErrRouteNotFound        = errors.New("route not found")
	ErrUnhandledAction      = errors.New("unhandled action")
	ErrOriginLookupFailed   = errors.New("github lookup failed")
	ErrDeliveryFailed       = errors.New("slack delivery failed")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrSecretsUnavailable   = errors.New("secrets unavailable")
)
