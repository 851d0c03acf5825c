package store

import (
	"context"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

// RecordRepository persists entity records of the reference backend. Every
// method is scoped to one entity type; an id that exists under another type
// is reported as [ErrRecordNotFound].
type RecordRepository interface {
	// List returns the records of entityType matching params, oldest first.
	List(ctx context.Context, entityType models.EntityType, params models.ListParams) ([]models.Record, error)

	// Get returns a single record.
	Get(ctx context.Context, entityType models.EntityType, id string) (models.Record, error)

	// Create stores data under id. The id field inside data is ignored.
	Create(ctx context.Context, entityType models.EntityType, id string, data models.Record) (models.Record, error)

	// Patch merges patch into the stored record and returns the result.
	Patch(ctx context.Context, entityType models.EntityType, id string, patch models.Record) (models.Record, error)

	// Delete removes the record.
	Delete(ctx context.Context, entityType models.EntityType, id string) error
}
