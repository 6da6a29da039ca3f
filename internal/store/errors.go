package store

import "errors"

var (
	// ErrNotReady is returned by mutations called before Init completes
	ErrNotReady = errors.New("store is not initialized")

	// ErrNotFound is returned when no ticket has the requested id
	ErrNotFound = errors.New("ticket not found")

	// ErrInvalidArgument is returned when input fails validation. The store
	// is left unchanged.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPersistence marks a failed write-through. The in-memory change it
	// accompanies has been applied and stays authoritative for the session,
	// so callers should surface it as a warning rather than a failure.
	ErrPersistence = errors.New("failed to persist")
)
