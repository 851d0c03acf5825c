package store

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalStore is the durable client-side persistence layer. It has two logical
// partitions: a cache partition holding one JSON blob per key, and a queue
// partition holding pending mutations ordered by enqueue time.
//
// Every method is individually atomic; no cross-key transactions exist. The
// store opens itself lazily on first use and opening is safe to race. When the
// underlying storage cannot be used, methods fail with [ErrStorageUnavailable];
// the store never degrades to a memory-only mode.
type LocalStore interface {
	// Put replaces the blob stored under key.
	Put(ctx context.Context, key string, value json.RawMessage) error

	// Get returns the blob stored under key, or [ErrCacheMiss] when the key
	// was never written.
	Get(ctx context.Context, key string) (json.RawMessage, error)

	// Enqueue durably appends m to the queue and returns its id. An id is
	// generated when m.ID is empty; EnqueuedAt is always assigned by the store
	// and strictly increases across calls.
	Enqueue(ctx context.Context, m models.QueuedMutation) (string, error)

	// ListQueue returns every queued mutation ordered by EnqueuedAt.
	ListQueue(ctx context.Context) ([]models.QueuedMutation, error)

	// Remove deletes the mutation with the given id. Removing an unknown id is
	// not an error.
	Remove(ctx context.Context, id string) error

	// ClearQueue deletes every queued mutation.
	ClearQueue(ctx context.Context) error

	// QueueLength returns the number of queued mutations.
	QueueLength(ctx context.Context) (int, error)
}
