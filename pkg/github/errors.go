package github

import "errors"

var (
	ErrInvalidPrivateKey = errors.New("invalid github app private key")
	ErrTokenExchange     = errors.New("installation token exchange failed")
	ErrLookupFailed      = errors.New("github lookup failed")
	ErrInvalidRepository = errors.New("repository must be owner/name")
	ErrForeignURL        = errors.New("url does not belong to the configured api host")
	ErrGraphQL           = errors.New("graphql query returned errors")
)
