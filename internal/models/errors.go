package models

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when no caller identity is present.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden is returned when the caller lacks permission, e.g. a
	// non-owner edit or a submission outside the live window.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidState is returned when the test window does not allow the
	// action, e.g. unregistering from a live test.
	ErrInvalidState = errors.New("action not allowed in current test state")
	// ErrValidation is returned for malformed input.
	ErrValidation = errors.New("validation failed")
)
