package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-clinic-keeper/internal/service"
	"github.com/MKhiriev/go-clinic-keeper/internal/store"
)

// errorStatuses is checked in order; the first match wins. Service errors
// come first because they wrap store errors.
var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrInvalidRecord, http.StatusBadRequest},
	{service.ErrUnknownEntityType, http.StatusNotFound},
	{service.ErrRecordNotFound, http.StatusNotFound},
	{service.ErrServiceUnavailable, http.StatusServiceUnavailable},

	{store.ErrRecordAlreadyExists, http.StatusConflict},
	{store.ErrRecordNotFound, http.StatusNotFound},
	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
