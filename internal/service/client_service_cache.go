package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/MKhiriev/go-clinic-keeper/internal/store"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

// idRewritesKey is the cache key of the persisted provisional id -> server id
// table.
const idRewritesKey = "idRewrites"

// collectionCache keeps one cached collection per entity type in the local
// store. Each collection is an ordered JSON list of records. The mutex makes
// every read-modify-write of a collection atomic with respect to the other
// methods of the same cache.
type collectionCache struct {
	store store.LocalStore
	mu    sync.Mutex
}

func newCollectionCache(localStore store.LocalStore) *collectionCache {
	return &collectionCache{store: localStore}
}

func (c *collectionCache) load(ctx context.Context, entityType models.EntityType) ([]models.Record, error) {
	raw, err := c.store.Get(ctx, entityType.CacheKey())
	if err != nil {
		return nil, err
	}

	var records []models.Record
	if err = json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode cached %s: %w", entityType.CacheKey(), err)
	}
	return records, nil
}

// loadOrEmpty treats a never-written collection as empty.
func (c *collectionCache) loadOrEmpty(ctx context.Context, entityType models.EntityType) ([]models.Record, error) {
	records, err := c.load(ctx, entityType)
	if errors.Is(err, store.ErrCacheMiss) {
		return []models.Record{}, nil
	}
	return records, err
}

func (c *collectionCache) save(ctx context.Context, entityType models.EntityType, records []models.Record) error {
	if records == nil {
		records = []models.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", entityType.CacheKey(), err)
	}
	return c.store.Put(ctx, entityType.CacheKey(), raw)
}

// List returns the cached collection, or [store.ErrCacheMiss] when it was
// never written.
func (c *collectionCache) List(ctx context.Context, entityType models.EntityType) ([]models.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx, entityType)
}

// Find returns the cached record with the given id.
func (c *collectionCache) Find(ctx context.Context, entityType models.EntityType, id string) (models.Record, bool, error) {
	records, err := c.List(ctx, entityType)
	if err != nil {
		return nil, false, err
	}

	i := indexOf(records, id)
	if i < 0 {
		return nil, false, nil
	}
	return records[i], true, nil
}

// Replace overwrites the whole collection.
func (c *collectionCache) Replace(ctx context.Context, entityType models.EntityType, records []models.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, entityType, records)
}

// Upsert replaces cached records by id and appends unknown ones.
func (c *collectionCache) Upsert(ctx context.Context, entityType models.EntityType, records ...models.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, err := c.loadOrEmpty(ctx, entityType)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if i := indexOf(cached, rec.ID()); i >= 0 {
			cached[i] = rec
			continue
		}
		cached = append(cached, rec)
	}

	return c.save(ctx, entityType, cached)
}

// Patch merges patch into the cached record with the given id and returns
// the result. found is false when no such record is cached.
func (c *collectionCache) Patch(ctx context.Context, entityType models.EntityType, id string, patch models.Record) (patched models.Record, found bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, err := c.loadOrEmpty(ctx, entityType)
	if err != nil {
		return nil, false, err
	}

	i := indexOf(cached, id)
	if i < 0 {
		return nil, false, nil
	}

	cached[i] = cached[i].Merge(patch)
	cached[i][models.IDField] = id
	if err = c.save(ctx, entityType, cached); err != nil {
		return nil, false, err
	}
	return cached[i], true, nil
}

// Remove drops the record with the given id. Removing an unknown id is not
// an error.
func (c *collectionCache) Remove(ctx context.Context, entityType models.EntityType, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, err := c.loadOrEmpty(ctx, entityType)
	if err != nil {
		return err
	}

	i := indexOf(cached, id)
	if i < 0 {
		return nil
	}
	return c.save(ctx, entityType, slices.Delete(cached, i, i+1))
}

// Resolve swaps the provisional record of entityType for the server record
// and rewrites every cached string field equal to provisionalID, in every
// collection, to the server id.
func (c *collectionCache) Resolve(ctx context.Context, entityType models.EntityType, provisionalID string, server models.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rewrite := map[string]string{provisionalID: server.ID()}

	for _, et := range models.EntityTypes {
		cached, err := c.loadOrEmpty(ctx, et)
		if err != nil {
			return err
		}

		changed := false
		if et == entityType {
			if i := indexOf(cached, provisionalID); i >= 0 {
				cached = slices.Delete(cached, i, i+1)
				changed = true
			}
			if j := indexOf(cached, server.ID()); j >= 0 {
				cached[j] = server
			} else {
				cached = append(cached, server)
			}
			changed = true
		}

		for i, rec := range cached {
			if rewritten, ok := rewriteRecord(rec, rewrite); ok {
				cached[i] = rewritten
				changed = true
			}
		}

		if changed {
			if err = c.save(ctx, et, cached); err != nil {
				return err
			}
		}
	}

	return nil
}

// Rewrites returns the persisted provisional id -> server id table. A table
// that was never written is empty.
func (c *collectionCache) Rewrites(ctx context.Context) (map[string]string, error) {
	rewrites := map[string]string{}

	raw, err := c.store.Get(ctx, idRewritesKey)
	if errors.Is(err, store.ErrCacheMiss) {
		return rewrites, nil
	}
	if err != nil {
		return rewrites, err
	}
	if err = json.Unmarshal(raw, &rewrites); err != nil {
		return map[string]string{}, fmt.Errorf("decode %s: %w", idRewritesKey, err)
	}
	return rewrites, nil
}

func (c *collectionCache) SaveRewrites(ctx context.Context, rewrites map[string]string) error {
	raw, err := json.Marshal(rewrites)
	if err != nil {
		return fmt.Errorf("encode %s: %w", idRewritesKey, err)
	}
	return c.store.Put(ctx, idRewritesKey, raw)
}

func indexOf(records []models.Record, id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(records, func(r models.Record) bool { return r.ID() == id })
}

// rewriteRecord returns a copy of rec with every top-level string field
// found in rewrites replaced. ok is false when nothing matched.
func rewriteRecord(rec models.Record, rewrites map[string]string) (out models.Record, ok bool) {
	if len(rewrites) == 0 {
		return rec, false
	}

	for k, v := range rec {
		s, isStr := v.(string)
		if !isStr {
			continue
		}
		if to, found := rewrites[s]; found {
			if out == nil {
				out = rec.Clone()
			}
			out[k] = to
		}
	}

	if out == nil {
		return rec, false
	}
	return out, true
}

// pendingProvisional returns the first provisional id, in key order, still
// held by a top-level string field of rec.
func pendingProvisional(rec models.Record) (string, bool) {
	for _, k := range slices.Sorted(maps.Keys(rec)) {
		if s, isStr := rec[k].(string); isStr && models.IsProvisionalID(s) {
			return s, true
		}
	}
	return "", false
}
