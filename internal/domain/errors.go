package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrAccessDenied indicates the actor may not view the requested customer.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidInput indicates a malformed request field (bad tab, non-numeric id).
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamUnavailable indicates an external store failed to answer.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrSecurityCheckFailed indicates a bad or missing anti-forgery token.
	ErrSecurityCheckFailed = errors.New("security check failed")
)
