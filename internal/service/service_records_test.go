// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/store"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

// ─────────────────────────────────────────────
// Mock: store.RecordRepository
// ─────────────────────────────────────────────

type mockRecordRepository struct {
	listFn   func(ctx context.Context, et models.EntityType, params models.ListParams) ([]models.Record, error)
	getFn    func(ctx context.Context, et models.EntityType, id string) (models.Record, error)
	createFn func(ctx context.Context, et models.EntityType, id string, data models.Record) (models.Record, error)
	patchFn  func(ctx context.Context, et models.EntityType, id string, patch models.Record) (models.Record, error)
	deleteFn func(ctx context.Context, et models.EntityType, id string) error
}

func (m *mockRecordRepository) List(ctx context.Context, et models.EntityType, params models.ListParams) ([]models.Record, error) {
	if m.listFn != nil {
		return m.listFn(ctx, et, params)
	}
	return nil, nil
}

func (m *mockRecordRepository) Get(ctx context.Context, et models.EntityType, id string) (models.Record, error) {
	if m.getFn != nil {
		return m.getFn(ctx, et, id)
	}
	return nil, nil
}

func (m *mockRecordRepository) Create(ctx context.Context, et models.EntityType, id string, data models.Record) (models.Record, error) {
	if m.createFn != nil {
		return m.createFn(ctx, et, id, data)
	}
	return data.Merge(models.Record{models.IDField: id}), nil
}

func (m *mockRecordRepository) Patch(ctx context.Context, et models.EntityType, id string, patch models.Record) (models.Record, error) {
	if m.patchFn != nil {
		return m.patchFn(ctx, et, id, patch)
	}
	return nil, nil
}

func (m *mockRecordRepository) Delete(ctx context.Context, et models.EntityType, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, et, id)
	}
	return nil
}

const validID = "0192d0a4-5f6e-7c2b-9a1d-3e4f5a6b7c8d"

func newTestRecordService(repo *mockRecordRepository) RecordService {
	return NewRecordValidationService().Wrap(NewRecordService(repo, logger.Nop()))
}

// ─────────────────────────────────────────────
// recordService
// ─────────────────────────────────────────────

func TestRecordService_CreateAssignsUUID(t *testing.T) {
	var gotID string
	var gotData models.Record
	repo := &mockRecordRepository{
		createFn: func(_ context.Context, _ models.EntityType, id string, data models.Record) (models.Record, error) {
			gotID, gotData = id, data
			return data.Merge(models.Record{models.IDField: id}), nil
		},
	}

	rec, err := newTestRecordService(repo).Create(context.Background(), models.EntityClient,
		models.Record{"id": "tmp-abc", "name": "A"})
	require.NoError(t, err)

	assert.Len(t, gotID, 36)
	assert.Equal(t, models.Record{"name": "A"}, gotData, "client ids never reach storage")
	assert.Equal(t, gotID, rec.ID())
}

func TestRecordService_RejectsMalformedIDs(t *testing.T) {
	called := false
	repo := &mockRecordRepository{
		getFn: func(context.Context, models.EntityType, string) (models.Record, error) {
			called = true
			return nil, nil
		},
	}
	svc := newTestRecordService(repo)
	ctx := context.Background()

	_, err := svc.Get(ctx, models.EntityClient, "tmp-0192d0a4")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = svc.Update(ctx, models.EntityClient, "nope", models.Record{"name": "B"})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, models.EntityClient, ""), ErrRecordNotFound)
	assert.False(t, called)
}

func TestRecordService_MapsStoreErrors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		want    error
	}{
		{"not found", store.ErrRecordNotFound, ErrRecordNotFound},
		{"transient", store.ErrTransient, ErrServiceUnavailable},
		{"other", store.ErrExecutingQuery, store.ErrExecutingQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRecordRepository{
				getFn: func(context.Context, models.EntityType, string) (models.Record, error) {
					return nil, tt.repoErr
				},
				deleteFn: func(context.Context, models.EntityType, string) error {
					return tt.repoErr
				},
			}
			svc := newTestRecordService(repo)

			_, err := svc.Get(context.Background(), models.EntityReminder, validID)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.repoErr)

			assert.ErrorIs(t, svc.Delete(context.Background(), models.EntityReminder, validID), tt.want)
		})
	}
}

func TestRecordService_ListPassesFilters(t *testing.T) {
	repo := &mockRecordRepository{
		listFn: func(_ context.Context, et models.EntityType, params models.ListParams) ([]models.Record, error) {
			assert.Equal(t, models.EntityHearingReport, et)
			assert.Equal(t, models.ListParams{"clientId": "c1"}, params)
			return []models.Record{{"id": validID}}, nil
		},
	}

	records, err := newTestRecordService(repo).List(context.Background(), models.EntityHearingReport, models.ListParams{"clientId": "c1"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// ─────────────────────────────────────────────
// RecordValidationService
// ─────────────────────────────────────────────

func TestRecordValidationService_Contracts(t *testing.T) {
	repo := &mockRecordRepository{
		patchFn: func(_ context.Context, _ models.EntityType, id string, patch models.Record) (models.Record, error) {
			return patch.Merge(models.Record{models.IDField: id}), nil
		},
	}
	svc := newTestRecordService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.EntityReminder, models.Record{"clientId": "c1", "dueAt": "2026-11-01"})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = svc.Update(ctx, models.EntityClient, validID, models.Record{"email": "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	rec, err := svc.Update(ctx, models.EntityClient, validID, models.Record{"phone": "555"})
	require.NoError(t, err)
	assert.Equal(t, "555", rec["phone"])
}

func TestRecordValidationService_UnknownEntityType(t *testing.T) {
	svc := newTestRecordService(&mockRecordRepository{})
	ctx := context.Background()

	_, err := svc.List(ctx, "staff", nil)
	assert.True(t, errors.Is(err, ErrUnknownEntityType))

	_, err = svc.Get(ctx, "staff", validID)
	assert.ErrorIs(t, err, ErrUnknownEntityType)

	assert.ErrorIs(t, svc.Delete(ctx, "staff", validID), ErrUnknownEntityType)
}
