package service

import (
	"context"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

// RecordValidationService checks payloads against the entity contracts and
// strips client-supplied ids before they reach the wrapped service.
type RecordValidationService struct {
	inner RecordService
}

func NewRecordValidationService() RecordServiceWrapper {
	return &RecordValidationService{}
}

func (v *RecordValidationService) List(ctx context.Context, entityType models.EntityType, params models.ListParams) ([]models.Record, error) {
	if _, err := contractFor(entityType); err != nil {
		return nil, err
	}
	return v.inner.List(ctx, entityType, params)
}

func (v *RecordValidationService) Get(ctx context.Context, entityType models.EntityType, id string) (models.Record, error) {
	if _, err := contractFor(entityType); err != nil {
		return nil, err
	}
	return v.inner.Get(ctx, entityType, id)
}

func (v *RecordValidationService) Create(ctx context.Context, entityType models.EntityType, data models.Record) (models.Record, error) {
	contract, err := contractFor(entityType)
	if err != nil {
		return nil, err
	}
	if err = contract.ValidateCreate(ctx, data); err != nil {
		return nil, err
	}
	return v.inner.Create(ctx, entityType, writablePayload(data))
}

func (v *RecordValidationService) Update(ctx context.Context, entityType models.EntityType, id string, data models.Record) (models.Record, error) {
	contract, err := contractFor(entityType)
	if err != nil {
		return nil, err
	}
	if err = contract.ValidateUpdate(ctx, data); err != nil {
		return nil, err
	}
	return v.inner.Update(ctx, entityType, id, writablePayload(data))
}

func (v *RecordValidationService) Delete(ctx context.Context, entityType models.EntityType, id string) error {
	if _, err := contractFor(entityType); err != nil {
		return err
	}
	return v.inner.Delete(ctx, entityType, id)
}

func (v *RecordValidationService) Wrap(wrapped RecordService) RecordService {
	v.inner = wrapped
	return v
}
