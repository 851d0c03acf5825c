package adapter

import "errors"

// Sentinel errors mapped from backend HTTP status codes.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")

	// ErrUnexpectedStatus covers every non-2xx status without its own sentinel.
	ErrUnexpectedStatus = errors.New("unexpected http status")

	// ErrTransport is wrapped around failures that produced no HTTP response
	// at all: refused connections, DNS errors, timeouts.
	ErrTransport = errors.New("transport failure")
)
