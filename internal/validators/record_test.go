// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

func TestRecordValidator_Validate(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		obj     any
		fields  []string
		wantErr error
	}{
		{
			name: "valid client",
			obj:  Record{EntityType: models.EntityClient, Data: models.Record{"name": "A", "email": "a@clinic.test"}},
		},
		{
			name: "pointer is accepted",
			obj:  &Record{EntityType: models.EntityClient, Data: models.Record{"name": "A"}},
		},
		{
			name:    "client without name",
			obj:     Record{EntityType: models.EntityClient, Data: models.Record{"phone": "123"}},
			wantErr: ErrInvalidFields,
		},
		{
			name:    "client with malformed email",
			obj:     Record{EntityType: models.EntityClient, Data: models.Record{"name": "A", "email": "nope"}},
			wantErr: ErrInvalidFields,
		},
		{
			name:    "nil data fails required fields",
			obj:     Record{EntityType: models.EntityReminder},
			wantErr: ErrInvalidFields,
		},
		{
			name: "valid reminder",
			obj: Record{EntityType: models.EntityReminder, Data: models.Record{
				"clientId": "c1", "dueAt": "2026-11-01", "message": "call back",
			}},
		},
		{
			name: "hearing report with extra fields",
			obj: Record{EntityType: models.EntityHearingReport, Data: models.Record{
				"clientId": "c1", "testDate": "2026-10-01", "leftEar": map[string]any{"1000": 20},
			}},
		},
		{
			name:   "scoped to present fields skips missing required ones",
			obj:    Record{EntityType: models.EntityClient, Data: models.Record{"phone": "555"}},
			fields: []string{"phone"},
		},
		{
			name:    "scoped field is still checked",
			obj:     Record{EntityType: models.EntityClient, Data: models.Record{"email": "bad"}},
			fields:  []string{"email"},
			wantErr: ErrInvalidFields,
		},
		{
			name:    "unknown entity type",
			obj:     Record{EntityType: "staff", Data: models.Record{}},
			wantErr: ErrUnknownEntityType,
		},
		{
			name:    "unsupported type",
			obj:     models.Record{"name": "A"},
			wantErr: ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.obj, tt.fields...)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecordValidator_MessageListsFieldsInOrder(t *testing.T) {
	err := NewRecordValidator().Validate(context.Background(), Record{EntityType: models.EntityReminder})
	require.Error(t, err)

	msg := err.Error()
	assert.Less(t, strings.Index(msg, "clientId"), strings.Index(msg, "dueAt"))
	assert.Less(t, strings.Index(msg, "dueAt"), strings.Index(msg, "message"))
}
