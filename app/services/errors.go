package services

import (
	"errors"

	"inkwell/app/repositories"
)

// Error taxonomy surfaced to the API boundary. Controllers translate
// these with errors.Is; nothing else leaks out of the service layer.
var (
	// ErrNotFound is the repositories' sentinel, re-exported so callers
	// only need this package.
	ErrNotFound = repositories.ErrNotFound

	// ErrInvalid marks user-fixable input problems.
	ErrInvalid = errors.New("invalid input")

	// ErrUpstream marks a failure in an external collaborator
	// (store, upload, text generation).
	ErrUpstream = errors.New("upstream failure")
)
