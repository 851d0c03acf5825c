// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// MutationKind is the write operation recorded by a QueuedMutation.
type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

var (
	// ErrInvalidMutation is returned by QueuedMutation.Validate when a
	// mutation breaks the entity id invariant or carries an unknown kind
	// or entity type.
	ErrInvalidMutation = errors.New("invalid queued mutation")
)

// QueuedMutation is a pending write kept in the durable mutation queue until
// the sync engine replays it against the backend.
type QueuedMutation struct {
	// ID is an opaque unique identifier assigned on enqueue.
	ID string `json:"id"`

	// Kind is the recorded write operation.
	Kind MutationKind `json:"kind"`

	// EntityType tags the record kind the write targets.
	EntityType EntityType `json:"entity_type"`

	// EntityID is empty only for MutationCreate.
	EntityID string `json:"entity_id,omitempty"`

	// Payload is the original write payload, never the provisional record.
	Payload Record `json:"payload,omitempty"`

	// ProvisionalID is the temporary id handed out for an offline create.
	// It is local bookkeeping only and is never sent to the backend.
	ProvisionalID string `json:"provisional_id,omitempty"`

	// EnqueuedAt is a monotonically increasing timestamp (unix nanoseconds)
	// assigned by the local store. Replay order follows it.
	EnqueuedAt int64 `json:"enqueued_at"`
}

// Validate checks the entity id invariant: EntityID is absent for creates and
// present for updates and deletes.
func (m QueuedMutation) Validate() error {
	if !m.EntityType.Valid() {
		return fmt.Errorf("%w: unknown entity type %q", ErrInvalidMutation, m.EntityType)
	}

	switch m.Kind {
	case MutationCreate:
		if m.EntityID != "" {
			return fmt.Errorf("%w: create must not carry an entity id", ErrInvalidMutation)
		}
	case MutationUpdate, MutationDelete:
		if m.EntityID == "" {
			return fmt.Errorf("%w: %s requires an entity id", ErrInvalidMutation, m.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidMutation, m.Kind)
	}

	return nil
}
