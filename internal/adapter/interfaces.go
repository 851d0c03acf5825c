// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the clinic backend.
//
// [EntityAdapter] exposes the five remote operations the sync core needs per
// entity type and [Prober] the liveness check used by the connectivity
// monitor. The package ships an HTTP/REST implementation of both built on
// resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrServiceUnavailable] for 503).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// EntityAdapter performs remote entity operations against the backend. The
// backend is the source of truth: records returned here are authoritative.
type EntityAdapter interface {
	// List returns every record of entityType matching params.
	List(ctx context.Context, entityType models.EntityType, params models.ListParams) ([]models.Record, error)

	// GetByID returns a single record.
	GetByID(ctx context.Context, entityType models.EntityType, id string) (models.Record, error)

	// Create stores payload as a new record and returns it with its server id.
	Create(ctx context.Context, entityType models.EntityType, payload models.Record) (models.Record, error)

	// Update applies payload to the record with the given id and returns the
	// resulting record.
	Update(ctx context.Context, entityType models.EntityType, id string, payload models.Record) (models.Record, error)

	// Delete removes the record with the given id.
	Delete(ctx context.Context, entityType models.EntityType, id string) error
}

// Prober checks whether the backend is reachable.
type Prober interface {
	// Ping issues a single liveness request. Any 2xx answer is success;
	// everything else, including ctx expiring, is an error.
	Ping(ctx context.Context) error
}
