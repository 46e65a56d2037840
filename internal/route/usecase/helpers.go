package usecase

import (
	"strings"

	"repoact-notify/internal/route"
)

// Route ids travel as a single URL path segment.
func validateRouteID(id string) error {
	if id == "" || len(id) > 128 || strings.ContainsAny(id, "/?# \t\r\n") {
		return route.ErrInvalidRouteID
	}
	return nil
}

func validateRepository(full string) error {
	owner, name, ok := strings.Cut(full, "/")
	if !ok || owner == "" || name == "" || strings.ContainsAny(name, "/ ") || strings.Contains(owner, " ") {
		return route.ErrInvalidRepository
	}
	return nil
}
