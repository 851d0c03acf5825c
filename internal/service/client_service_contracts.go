package service

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/MKhiriev/go-clinic-keeper/internal/validators"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

// recordContract applies the field contract of one entity type.
type recordContract struct {
	entityType models.EntityType
	validator  validators.Validator
}

func contractFor(entityType models.EntityType) (recordContract, error) {
	if !entityType.Valid() {
		return recordContract{}, fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}
	return recordContract{entityType: entityType, validator: validators.NewRecordValidator()}, nil
}

// ValidateCreate checks a full record against every rule.
func (c recordContract) ValidateCreate(ctx context.Context, data models.Record) error {
	return c.validate(ctx, data)
}

// ValidateUpdate checks only the fields present in the patch.
func (c recordContract) ValidateUpdate(ctx context.Context, data models.Record) error {
	if len(data) == 0 {
		return nil
	}
	return c.validate(ctx, data, slices.Sorted(maps.Keys(data))...)
}

func (c recordContract) validate(ctx context.Context, data models.Record, fields ...string) error {
	err := c.validator.Validate(ctx, validators.Record{EntityType: c.entityType, Data: data}, fields...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}

// writablePayload strips the id field: ids are owned by the backend or by
// the provisional id generator, never by the payload.
func writablePayload(data models.Record) models.Record {
	payload := data.Clone()
	delete(payload, models.IDField)
	return payload
}
