package service

import "errors"

// Errors surfaced by the entity services to their callers.
var (
	// ErrQueuedForSync signals that a write was accepted locally and queued
	// for replay but has not reached the backend yet. Callers should treat it
	// as non-fatal.
	ErrQueuedForSync = errors.New("queued for sync, not yet persisted")

	// ErrRemoteOperationFailure wraps a failed backend write made while
	// online. The write has been queued for replay.
	ErrRemoteOperationFailure = errors.New("remote operation failed")

	// ErrNotFoundInCacheOrRemote is returned when a read failed remotely and
	// the cache held nothing to fall back to.
	ErrNotFoundInCacheOrRemote = errors.New("not found in cache or remote")

	// ErrInvalidRecord is returned when a payload breaks the field contract of
	// its entity type.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrUnknownEntityType is returned for entity types outside the supported
	// set.
	ErrUnknownEntityType = errors.New("unknown entity type")
)

// Errors of the reference backend record service.
var (
	// ErrRecordNotFound is returned when a record does not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrServiceUnavailable is returned when storage failed in a way worth
	// retrying.
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)

// errUnresolvedProvisionalID marks a queued mutation that targets a record
// whose create has not been replayed yet.
var errUnresolvedProvisionalID = errors.New("provisional id not resolved yet")

// ErrVersionIsNotSpecified is returned when the backend is built without a
// version string.
var ErrVersionIsNotSpecified = errors.New("app version is not specified")
