package validators

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

// Record is a generic record tagged with the entity type whose contract
// applies to it.
type Record struct {
	EntityType models.EntityType
	Data       models.Record
}

// contracts holds the per-entity field rules in validator tag syntax. Only
// top-level fields are covered; fields without a rule are accepted as-is.
var contracts = map[models.EntityType]map[string]any{
	models.EntityClient: {
		"name":  "required",
		"email": "omitempty,email",
		"phone": "omitempty,max=32",
	},
	models.EntityHearingReport: {
		"clientId": "required",
		"testDate": "required",
	},
	models.EntityReminder: {
		"clientId": "required",
		"dueAt":    "required",
		"message":  "required,max=2000",
	},
}

type RecordValidator struct {
	validate *validator.Validate
}

func NewRecordValidator() Validator {
	return &RecordValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks a [Record] against its entity contract. When fields are
// given only those fields are checked.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case Record:
		return v.validateRecord(ctx, value, fields...)
	case *Record:
		return v.validateRecord(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRecord(ctx context.Context, r Record, fields ...string) error {
	rules, ok := contracts[r.EntityType]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEntityType, r.EntityType)
	}

	if len(fields) > 0 {
		scoped := make(map[string]any, len(fields))
		for _, field := range fields {
			if rule, found := rules[field]; found {
				scoped[field] = rule
			}
		}
		rules = scoped
	}

	data := r.Data
	if data == nil {
		data = models.Record{}
	}

	errs := v.validate.ValidateMapCtx(ctx, data, rules)
	if len(errs) == 0 {
		return nil
	}

	names := make([]string, 0, len(errs))
	for field := range errs {
		names = append(names, field)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, field := range names {
		parts = append(parts, fmt.Sprintf("%s: %v", field, errs[field]))
	}

	return fmt.Errorf("%w: %s: %s", ErrInvalidFields, r.EntityType, strings.Join(parts, "; "))
}
