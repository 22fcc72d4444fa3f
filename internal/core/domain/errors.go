package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Notably returned by the state store before the first run.
	ErrNotFound = errors.New("not found")

	// ErrAuthRequired indicates a service requires credentials but none
	// are configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the configured credentials were rejected.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates an API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrMalformedResponse indicates an API response could not be decoded.
	ErrMalformedResponse = errors.New("malformed API response")
)
