package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clinic-keeper/internal/store"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

func TestCollectionCache_ListMiss(t *testing.T) {
	c := newCollectionCache(newSQLiteStore(t))

	_, err := c.List(context.Background(), models.EntityClient)
	assert.ErrorIs(t, err, store.ErrCacheMiss)

	_, found, err := c.Find(context.Background(), models.EntityClient, "c1")
	assert.ErrorIs(t, err, store.ErrCacheMiss)
	assert.False(t, found)
}

func TestCollectionCache_UpsertPatchRemove(t *testing.T) {
	c := newCollectionCache(newSQLiteStore(t))
	ctx := context.Background()

	require.NoError(t, c.Upsert(ctx, models.EntityClient,
		models.Record{"id": "c1", "name": "A"},
		models.Record{"id": "c2", "name": "B"},
	))
	require.NoError(t, c.Upsert(ctx, models.EntityClient, models.Record{"id": "c1", "name": "A2"}))

	records, err := c.List(ctx, models.EntityClient)
	require.NoError(t, err)
	assert.Equal(t, []models.Record{{"id": "c1", "name": "A2"}, {"id": "c2", "name": "B"}}, records)

	patched, found, err := c.Patch(ctx, models.EntityClient, "c2", models.Record{"phone": "1"})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.Record{"id": "c2", "name": "B", "phone": "1"}, patched)

	_, found, err = c.Patch(ctx, models.EntityClient, "c3", models.Record{"phone": "1"})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Remove(ctx, models.EntityClient, "c1"))
	require.NoError(t, c.Remove(ctx, models.EntityClient, "unknown"))

	records, err = c.List(ctx, models.EntityClient)
	require.NoError(t, err)
	assert.Equal(t, []models.Record{{"id": "c2", "name": "B", "phone": "1"}}, records)
}

func TestCollectionCache_ReplaceWithNil(t *testing.T) {
	c := newCollectionCache(newSQLiteStore(t))
	ctx := context.Background()

	require.NoError(t, c.Replace(ctx, models.EntityReminder, nil))

	records, err := c.List(ctx, models.EntityReminder)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCollectionCache_ResolveRewritesEveryCollection(t *testing.T) {
	c := newCollectionCache(newSQLiteStore(t))
	ctx := context.Background()

	require.NoError(t, c.Upsert(ctx, models.EntityClient, models.Record{"id": "tmp-1", "name": "A"}))
	require.NoError(t, c.Upsert(ctx, models.EntityReminder,
		models.Record{"id": "r1", "clientId": "tmp-1", "message": "x"},
		models.Record{"id": "r2", "clientId": "c9", "message": "y"},
	))

	server := models.Record{"id": "srv-1", "name": "A"}
	require.NoError(t, c.Resolve(ctx, models.EntityClient, "tmp-1", server))

	clients, err := c.List(ctx, models.EntityClient)
	require.NoError(t, err)
	assert.Equal(t, []models.Record{server}, clients)

	reminders, err := c.List(ctx, models.EntityReminder)
	require.NoError(t, err)
	assert.Equal(t, "srv-1", reminders[0]["clientId"])
	assert.Equal(t, "c9", reminders[1]["clientId"])

	// hearing reports were never cached and stay a miss
	_, err = c.List(ctx, models.EntityHearingReport)
	assert.ErrorIs(t, err, store.ErrCacheMiss)
}

func TestRewriteRecord(t *testing.T) {
	rec := models.Record{"id": "r1", "clientId": "tmp-1", "count": 3}

	out, ok := rewriteRecord(rec, map[string]string{"tmp-1": "srv-1"})
	require.True(t, ok)
	assert.Equal(t, "srv-1", out["clientId"])
	assert.Equal(t, "tmp-1", rec["clientId"], "input must not be modified")

	same, ok := rewriteRecord(rec, map[string]string{"tmp-9": "srv-9"})
	assert.False(t, ok)
	assert.Equal(t, rec, same)
}

func TestCollectionCache_Rewrites(t *testing.T) {
	c := newCollectionCache(newSQLiteStore(t))
	ctx := context.Background()

	rewrites, err := c.Rewrites(ctx)
	require.NoError(t, err)
	assert.Empty(t, rewrites)

	require.NoError(t, c.SaveRewrites(ctx, map[string]string{"tmp-1": "srv-1"}))

	rewrites, err = c.Rewrites(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"tmp-1": "srv-1"}, rewrites)
}

func TestPendingProvisional(t *testing.T) {
	ref, pending := pendingProvisional(models.Record{"name": "A", "visits": 3})
	assert.False(t, pending)
	assert.Empty(t, ref)

	ref, pending = pendingProvisional(models.Record{"reportId": "tmp-2", "clientId": "tmp-1", "message": "call"})
	assert.True(t, pending)
	assert.Equal(t, "tmp-1", ref)

	_, pending = pendingProvisional(nil)
	assert.False(t, pending)
}
