package service

import (
	"context"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

// RecordService implements the five remote entity operations on the
// reference backend.
type RecordService interface {
	List(ctx context.Context, entityType models.EntityType, params models.ListParams) ([]models.Record, error)
	Get(ctx context.Context, entityType models.EntityType, id string) (models.Record, error)
	Create(ctx context.Context, entityType models.EntityType, data models.Record) (models.Record, error)
	Update(ctx context.Context, entityType models.EntityType, id string, data models.Record) (models.Record, error)
	Delete(ctx context.Context, entityType models.EntityType, id string) error
}

// AppInfoService reports build information of the running binary.
type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// RecordServiceWrapper defines middleware composition for RecordService.
// Implementations wrap an existing RecordService to add behavior such as
// validating.
type RecordServiceWrapper interface {
	Wrap(RecordService) RecordService // returns a decorated RecordService applying additional behavior
}
