package services

import "errors"

// Sentinel errors for the failure cases the handlers map to HTTP statuses.
// Store-layer failures that match none of these surface as 500s.
var (
	// ErrValidation marks input the store or schema rejected (400).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an id with no matching record (404).
	ErrNotFound = errors.New("record not found")
	// ErrForbidden marks a caller who is not the record's owner (403).
	ErrForbidden = errors.New("forbidden")
)
