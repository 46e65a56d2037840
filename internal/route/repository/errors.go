package repository

import "errors"

var (
	ErrFailedToGet = errors.New("failed to get record")
	ErrFailedToPut = errors.New("failed to put record")
	// ErrIncompleteRecord is returned when a stored record lacks a field.
	ErrIncompleteRecord = errors.New("route record is missing a field")
)
