// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-clinic-keeper/internal/adapter"
	"github.com/MKhiriev/go-clinic-keeper/internal/store"
)

const (
	serverUnavailableText  = "No network or the backend is unreachable"
	storageUnavailableText = "Local database is unavailable"
)

// networkFailureMarkers are substrings of dial and timeout errors that reach
// the screen without being wrapped in adapter.ErrTransport.
var networkFailureMarkers = []string{
	"connection refused",
	"dial tcp",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"context deadline exceeded",
}

// humanizeError turns err into a line fit for the status screen.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, adapter.ErrTransport):
		return serverUnavailableText
	case errors.Is(err, store.ErrStorageUnavailable):
		return storageUnavailableText
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range networkFailureMarkers {
		if strings.Contains(msg, marker) {
			return serverUnavailableText
		}
	}

	return err.Error()
}
