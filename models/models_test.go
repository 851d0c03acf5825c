// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityType_KeysAndPaths(t *testing.T) {
	assert.Equal(t, "clients", EntityClient.CacheKey())
	assert.Equal(t, "hearingReports", EntityHearingReport.CacheKey())
	assert.Equal(t, "reminders", EntityReminder.CacheKey())

	for _, e := range EntityTypes {
		got, err := ParseEntityPath(e.Path())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	_, err := ParseEntityPath("invoices")
	assert.Error(t, err)
	assert.False(t, EntityType("invoice").Valid())
}

func TestQueuedMutation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		m       QueuedMutation
		wantErr bool
	}{
		{"create without id", QueuedMutation{Kind: MutationCreate, EntityType: EntityClient}, false},
		{"create with id", QueuedMutation{Kind: MutationCreate, EntityType: EntityClient, EntityID: "1"}, true},
		{"update with id", QueuedMutation{Kind: MutationUpdate, EntityType: EntityReminder, EntityID: "1"}, false},
		{"update without id", QueuedMutation{Kind: MutationUpdate, EntityType: EntityReminder}, true},
		{"delete without id", QueuedMutation{Kind: MutationDelete, EntityType: EntityHearingReport}, true},
		{"unknown kind", QueuedMutation{Kind: "upsert", EntityType: EntityClient}, true},
		{"unknown entity", QueuedMutation{Kind: MutationCreate, EntityType: "invoice"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMutation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRecord_MergeDoesNotMutate(t *testing.T) {
	orig := Record{"id": "c1", "name": "A"}
	merged := orig.Merge(Record{"name": "B", "phone": "123"})

	assert.Equal(t, "A", orig["name"])
	assert.Equal(t, "B", merged["name"])
	assert.Equal(t, "123", merged["phone"])
	assert.Equal(t, "c1", merged.ID())
}

func TestListParams_Match(t *testing.T) {
	r := Record{"clientId": "c1", "done": false, "priority": float64(2)}

	assert.True(t, ListParams(nil).Match(r))
	assert.True(t, ListParams{"clientId": "c1"}.Match(r))
	assert.True(t, ListParams{"done": "false", "priority": "2"}.Match(r))
	assert.False(t, ListParams{"clientId": "c2"}.Match(r))
	assert.False(t, ListParams{"missing": "x"}.Match(r))
}

func TestIsProvisionalID(t *testing.T) {
	assert.True(t, IsProvisionalID(ProvisionalIDPrefix+"abc"))
	assert.False(t, IsProvisionalID("0190c2a4-7d1e-7000-8000-000000000000"))
}

func TestAppBuildInfo_String(t *testing.T) {
	info := NewAppBuildInfo("1.2.0", "2026-01-02", "abc123")

	assert.Equal(t, "1.2.0", info.BuildVersion())
	assert.Equal(t, "1.2.0 (abc123, 2026-01-02)", info.String())
}
