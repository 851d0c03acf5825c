package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

// StateReader exposes the current connectivity state.
type StateReader interface {
	// State returns a synchronous snapshot of the connectivity state.
	State() models.ConnectivityState
}

// ConnectivityMonitor owns the tri-state connectivity signal. It combines
// host network events with active probes of the backend health endpoint and
// publishes every state change to its subscribers. Nothing else may change
// the state.
type ConnectivityMonitor interface {
	StateReader

	// Subscribe registers listener and immediately delivers the current state
	// to it, before any later transition. Listeners are called one at a time
	// in subscription order; they must not call Subscribe themselves.
	Subscribe(listener func(models.ConnectivityState)) (unsubscribe func())

	// Probe runs one active probe and returns the resulting state. When the
	// current state is offline, checking is published first.
	Probe(ctx context.Context) models.ConnectivityState

	// Run reacts to host network events and probes on a fixed interval while
	// the host reports itself online. It blocks until ctx is done.
	Run(ctx context.Context) error
}

// SyncEngine drains the mutation queue against the backend. At most one
// drain pass runs at a time.
type SyncEngine interface {
	// Sync runs one drain pass over a snapshot of the queue. A call made while
	// a pass is already running returns immediately with Skipped set.
	Sync(ctx context.Context) models.SyncReport

	// Busy reports whether a drain pass is running.
	Busy() bool

	// Subscribe registers listener and immediately delivers the current busy
	// flag to it, then every change.
	Subscribe(listener func(busy bool)) (unsubscribe func())

	// Watch starts a drain pass on every transition of monitor into online.
	// The returned stop function detaches from monitor and waits for passes
	// it started.
	Watch(ctx context.Context, monitor ConnectivityMonitor) (stop func())
}

// EntityService is the read/write entry point for one entity type. Reads
// prefer the backend and fall back to the local cache; writes go to the
// backend when online and are queued for replay otherwise.
type EntityService interface {
	// EntityType returns the record kind served.
	EntityType() models.EntityType

	// List returns the records matching params.
	List(ctx context.Context, params models.ListParams) ([]models.Record, error)

	// GetByID returns a single record.
	GetByID(ctx context.Context, id string) (models.Record, error)

	// Create stores a new record. Offline, it returns a provisional record
	// together with an error wrapping [ErrQueuedForSync].
	Create(ctx context.Context, data models.Record) (models.Record, error)

	// Update applies data to the record with the given id. Offline, it returns
	// the locally patched record together with an error wrapping
	// [ErrQueuedForSync].
	Update(ctx context.Context, id string, data models.Record) (models.Record, error)

	// Delete removes the record with the given id.
	Delete(ctx context.Context, id string) error

	// Cached returns the cached collection without contacting the backend.
	Cached(ctx context.Context) ([]models.Record, error)
}

// ClientSyncJob defines the contract for a background worker that
// periodically runs a drain pass while the client is online.
type ClientSyncJob interface {
	// Start launches the background goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
