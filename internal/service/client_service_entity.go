package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-clinic-keeper/internal/adapter"
	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/metrics"
	"github.com/MKhiriev/go-clinic-keeper/internal/store"
	"github.com/MKhiriev/go-clinic-keeper/internal/utils"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

// entityService is the [EntityService] shared by every entity type; the
// type-specific part is its field contract.
type entityService struct {
	entityType models.EntityType
	contract   recordContract

	localStore store.LocalStore
	cache      *collectionCache
	remote     adapter.EntityAdapter
	monitor    StateReader
	ids        *utils.UUIDGenerator

	metrics *metrics.Sync
	logger  *logger.Logger
}

func newEntityService(
	entityType models.EntityType,
	localStore store.LocalStore,
	cache *collectionCache,
	remote adapter.EntityAdapter,
	monitor StateReader,
	m *metrics.Sync,
	log *logger.Logger,
) (*entityService, error) {
	contract, err := contractFor(entityType)
	if err != nil {
		return nil, err
	}

	return &entityService{
		entityType: entityType,
		contract:   contract,
		localStore: localStore,
		cache:      cache,
		remote:     remote,
		monitor:    monitor,
		ids:        utils.NewUUIDGenerator(),
		metrics:    m,
		logger:     log.WithComponent(string(entityType)),
	}, nil
}

func (s *entityService) EntityType() models.EntityType {
	return s.entityType
}

// ── Read path ─────────────────────────────────────────────────────────────────

func (s *entityService) List(ctx context.Context, params models.ListParams) ([]models.Record, error) {
	records, err := s.remote.List(ctx, s.entityType, params)
	if err == nil {
		// a filtered result is only a slice of the collection
		var cacheErr error
		if len(params) == 0 {
			cacheErr = s.cache.Replace(ctx, s.entityType, records)
		} else {
			cacheErr = s.cache.Upsert(ctx, s.entityType, records...)
		}
		s.logCacheError(cacheErr, "entityService.List", "")
		return records, nil
	}

	cached, cacheErr := s.cache.List(ctx, s.entityType)
	if cacheErr != nil {
		if !errors.Is(cacheErr, store.ErrCacheMiss) {
			s.logCacheError(cacheErr, "entityService.List", "")
		}
		return nil, fmt.Errorf("%w: list %s: %w", ErrNotFoundInCacheOrRemote, s.entityType, err)
	}

	s.logger.Debug().Err(err).
		Str("func", "entityService.List").
		Str("entity_type", string(s.entityType)).
		Msg("remote list failed, serving cached collection")
	s.metrics.CacheFallback(s.entityType)

	matched := make([]models.Record, 0, len(cached))
	for _, rec := range cached {
		if params.Match(rec) {
			matched = append(matched, rec.Clone())
		}
	}
	return matched, nil
}

func (s *entityService) GetByID(ctx context.Context, id string) (models.Record, error) {
	record, err := s.remote.GetByID(ctx, s.entityType, id)
	if err == nil {
		s.logCacheError(s.cache.Upsert(ctx, s.entityType, record), "entityService.GetByID", id)
		return record, nil
	}

	cached, found, cacheErr := s.cache.Find(ctx, s.entityType, id)
	if cacheErr != nil && !errors.Is(cacheErr, store.ErrCacheMiss) {
		s.logCacheError(cacheErr, "entityService.GetByID", id)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNotFoundInCacheOrRemote, s.entityType, id, err)
	}

	s.logger.Debug().Err(err).
		Str("func", "entityService.GetByID").
		Str("entity_type", string(s.entityType)).
		Str("entity_id", id).
		Msg("remote read failed, serving cached record")
	s.metrics.CacheFallback(s.entityType)

	return cached.Clone(), nil
}

func (s *entityService) Cached(ctx context.Context) ([]models.Record, error) {
	records, err := s.cache.List(ctx, s.entityType)
	if errors.Is(err, store.ErrCacheMiss) {
		return []models.Record{}, nil
	}
	return records, err
}

// ── Write path ────────────────────────────────────────────────────────────────

func (s *entityService) Create(ctx context.Context, data models.Record) (models.Record, error) {
	if err := s.contract.ValidateCreate(ctx, data); err != nil {
		return nil, err
	}
	payload := writablePayload(data)
	mutation := models.QueuedMutation{Kind: models.MutationCreate, EntityType: s.entityType, Payload: payload}

	reason := metrics.ReasonOffline
	if s.online() {
		if _, remotePayload, ok := s.serverIDs(ctx, "", payload); ok {
			record, err := s.remote.Create(ctx, s.entityType, remotePayload)
			if err == nil {
				s.logCacheError(s.cache.Upsert(ctx, s.entityType, record), "entityService.Create", record.ID())
				return record, nil
			}
			return nil, s.enqueueAfterFailure(ctx, mutation, err)
		}
		reason = metrics.ReasonUnsyncedReference
	}

	mutation.ProvisionalID = s.ids.GenerateProvisional()
	if err := s.enqueue(ctx, mutation, reason); err != nil {
		return nil, err
	}

	provisional := payload.Merge(models.Record{models.IDField: mutation.ProvisionalID})
	s.logCacheError(s.cache.Upsert(ctx, s.entityType, provisional), "entityService.Create", mutation.ProvisionalID)

	return provisional, fmt.Errorf("%w: create %s %s", ErrQueuedForSync, s.entityType, mutation.ProvisionalID)
}

func (s *entityService) Update(ctx context.Context, id string, data models.Record) (models.Record, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: %s update requires an id", ErrInvalidRecord, s.entityType)
	}
	if err := s.contract.ValidateUpdate(ctx, data); err != nil {
		return nil, err
	}
	payload := writablePayload(data)
	mutation := models.QueuedMutation{Kind: models.MutationUpdate, EntityType: s.entityType, EntityID: id, Payload: payload}

	reason := metrics.ReasonOffline
	if s.online() {
		if remoteID, remotePayload, ok := s.serverIDs(ctx, id, payload); ok {
			record, err := s.remote.Update(ctx, s.entityType, remoteID, remotePayload)
			if err == nil {
				s.logCacheError(s.cache.Upsert(ctx, s.entityType, record), "entityService.Update", remoteID)
				return record, nil
			}
			return nil, s.enqueueAfterFailure(ctx, mutation, err)
		}
		reason = metrics.ReasonUnsyncedReference
	}

	if err := s.enqueue(ctx, mutation, reason); err != nil {
		return nil, err
	}

	localID := s.localID(ctx, id)
	patched, found, err := s.cache.Patch(ctx, s.entityType, localID, payload)
	s.logCacheError(err, "entityService.Update", localID)
	if !found {
		patched = payload.Merge(models.Record{models.IDField: localID})
	}

	return patched, fmt.Errorf("%w: update %s %s", ErrQueuedForSync, s.entityType, id)
}

func (s *entityService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s delete requires an id", ErrInvalidRecord, s.entityType)
	}
	mutation := models.QueuedMutation{Kind: models.MutationDelete, EntityType: s.entityType, EntityID: id}

	reason := metrics.ReasonOffline
	if s.online() {
		if remoteID, _, ok := s.serverIDs(ctx, id, nil); ok {
			err := s.remote.Delete(ctx, s.entityType, remoteID)
			if err == nil {
				s.logCacheError(s.cache.Remove(ctx, s.entityType, remoteID), "entityService.Delete", remoteID)
				return nil
			}
			return s.enqueueAfterFailure(ctx, mutation, err)
		}
		reason = metrics.ReasonUnsyncedReference
	}

	if err := s.enqueue(ctx, mutation, reason); err != nil {
		return err
	}
	localID := s.localID(ctx, id)
	s.logCacheError(s.cache.Remove(ctx, s.entityType, localID), "entityService.Delete", localID)

	return fmt.Errorf("%w: delete %s %s", ErrQueuedForSync, s.entityType, id)
}

func (s *entityService) online() bool {
	return s.monitor.State() == models.StateOnline
}

// serverIDs rewrites provisional ids in the target id and payload to the
// server ids recorded by earlier drain passes. ok is false while any of them
// still points at a create the backend has not seen; such a write is queued
// behind that create instead of being sent.
func (s *entityService) serverIDs(ctx context.Context, id string, payload models.Record) (string, models.Record, bool) {
	if _, pending := pendingProvisional(payload); !pending && !models.IsProvisionalID(id) {
		return id, payload, true
	}

	rewrites, err := s.cache.Rewrites(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "entityService.serverIDs").Msg("failed to read id rewrite table")
	}

	if id != "" {
		if id, err = resolveEntityID(id, rewrites); err != nil {
			s.logUnsynced(err)
			return "", nil, false
		}
	}

	payload, _ = rewriteRecord(payload, rewrites)
	if ref, pending := pendingProvisional(payload); pending {
		s.logUnsynced(fmt.Errorf("%w: %s", errUnresolvedProvisionalID, ref))
		return "", nil, false
	}

	return id, payload, true
}

// localID is the id the cache holds for id: the server id once a drain pass
// has resolved a provisional one.
func (s *entityService) localID(ctx context.Context, id string) string {
	if !models.IsProvisionalID(id) {
		return id
	}
	rewrites, err := s.cache.Rewrites(ctx)
	if err != nil {
		return id
	}
	if to, ok := rewrites[id]; ok {
		return to
	}
	return id
}

func (s *entityService) logUnsynced(err error) {
	s.logger.Debug().Err(err).
		Str("func", "entityService.serverIDs").
		Str("entity_type", string(s.entityType)).
		Msg("write references an unsynced record, queuing it")
}

func (s *entityService) enqueue(ctx context.Context, m models.QueuedMutation, reason string) error {
	id, err := s.localStore.Enqueue(ctx, m)
	if err != nil {
		s.logger.Err(err).
			Str("func", "entityService.enqueue").
			Str("entity_type", string(m.EntityType)).
			Str("entity_id", m.EntityID).
			Msg("failed to queue mutation")
		return fmt.Errorf("queue %s %s: %w", m.Kind, m.EntityType, err)
	}

	s.logger.Info().
		Str("func", "entityService.enqueue").
		Str("mutation_id", id).
		Str("kind", string(m.Kind)).
		Str("entity_type", string(m.EntityType)).
		Str("entity_id", m.EntityID).
		Str("reason", reason).
		Msg("mutation queued for sync")
	s.metrics.Enqueued(m.EntityType, m.Kind, reason)

	return nil
}

// enqueueAfterFailure queues the write that just failed online and returns
// the error the caller must see.
func (s *entityService) enqueueAfterFailure(ctx context.Context, m models.QueuedMutation, remoteErr error) error {
	s.logger.Warn().Err(remoteErr).
		Str("func", "entityService.enqueueAfterFailure").
		Str("kind", string(m.Kind)).
		Str("entity_type", string(m.EntityType)).
		Str("entity_id", m.EntityID).
		Msg("remote write failed")

	if err := s.enqueue(ctx, m, metrics.ReasonRemoteFailure); err != nil {
		return fmt.Errorf("%w: %s %s: %w (%w)", ErrRemoteOperationFailure, m.Kind, m.EntityType, remoteErr, err)
	}
	return fmt.Errorf("%w: %s %s: %w", ErrRemoteOperationFailure, m.Kind, m.EntityType, remoteErr)
}

func (s *entityService) logCacheError(err error, fn, id string) {
	if err == nil {
		return
	}
	s.logger.Err(err).
		Str("func", fn).
		Str("entity_type", string(s.entityType)).
		Str("entity_id", id).
		Msg("failed to update cached collection")
}
