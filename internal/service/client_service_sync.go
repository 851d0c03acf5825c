package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-clinic-keeper/internal/adapter"
	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/metrics"
	"github.com/MKhiriev/go-clinic-keeper/internal/store"
	"github.com/MKhiriev/go-clinic-keeper/internal/utils"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

type syncEngine struct {
	localStore store.LocalStore
	remote     adapter.EntityAdapter
	cache      *collectionCache

	busy   atomic.Bool
	events broadcaster[bool]

	metrics *metrics.Sync
	logger  *logger.Logger
}

func newSyncEngine(localStore store.LocalStore, remote adapter.EntityAdapter, cache *collectionCache, m *metrics.Sync, log *logger.Logger) *syncEngine {
	return &syncEngine{
		localStore: localStore,
		remote:     remote,
		cache:      cache,
		metrics:    m,
		logger:     log.WithComponent("sync"),
	}
}

func (e *syncEngine) Busy() bool {
	return e.busy.Load()
}

func (e *syncEngine) Subscribe(listener func(busy bool)) func() {
	return e.events.subscribe(e.busy.Load, listener)
}

func (e *syncEngine) Sync(ctx context.Context) models.SyncReport {
	if !e.busy.CompareAndSwap(false, true) {
		e.logger.Debug().Str("func", "syncEngine.Sync").Msg("drain pass already running, skipping")
		return models.SyncReport{Skipped: true}
	}
	report := models.SyncReport{Started: time.Now()}
	passID := uuid.NewString()
	ctx = utils.WithRequestID(ctx, passID)

	queue, err := e.localStore.ListQueue(ctx)
	if err == nil && len(queue) == 0 {
		e.busy.Store(false)
		report.Remaining = 0
		e.metrics.SetQueueDepth(0)
		return report
	}

	e.events.publish(func() (bool, bool) { return true, true })
	defer e.events.publish(func() (bool, bool) {
		e.busy.Store(false)
		return false, true
	})

	if err != nil {
		report.Err = fmt.Errorf("read queue snapshot: %w", err)
		report.Remaining = e.queueLength(ctx, -1)
	} else {
		e.drain(ctx, queue, &report)
	}

	e.metrics.ObserveDrain(time.Since(report.Started))
	if report.Remaining >= 0 {
		e.metrics.SetQueueDepth(report.Remaining)
	}

	event := e.logger.Info()
	if report.Err != nil {
		event = e.logger.Err(report.Err)
	}
	event.Str("func", "syncEngine.Sync").
		Str("pass_id", passID).
		Int("replayed", report.Replayed).
		Int("failed", report.Failed).
		Int("remaining", report.Remaining).
		Dur("took", time.Since(report.Started)).
		Msg("drain pass finished")

	return report
}

// drain replays the snapshot queue in order. Mutations enqueued after the
// snapshot was taken wait for the next pass.
func (e *syncEngine) drain(ctx context.Context, queue []models.QueuedMutation, report *models.SyncReport) {
	rewrites := e.loadRewrites(ctx)

	for _, m := range queue {
		if ctx.Err() != nil {
			break
		}

		if err := e.replay(ctx, m, rewrites); err != nil {
			report.Failed++
			e.metrics.ReplayFailed(m.EntityType, m.Kind)
			e.logger.Warn().Err(err).
				Str("func", "syncEngine.drain").
				Str("mutation_id", m.ID).
				Str("kind", string(m.Kind)).
				Str("entity_type", string(m.EntityType)).
				Str("entity_id", m.EntityID).
				Msg("replay failed, mutation stays queued")
			continue
		}

		if err := e.localStore.Remove(ctx, m.ID); err != nil {
			report.Failed++
			e.logger.Err(err).
				Str("func", "syncEngine.drain").
				Str("mutation_id", m.ID).
				Msg("replayed mutation could not be removed from the queue")
			continue
		}

		report.Replayed++
		e.metrics.Replayed(m.EntityType, m.Kind)
	}

	report.Remaining = e.queueLength(ctx, len(queue)-report.Replayed)
}

// replay sends one queued mutation to the backend and reflects the result
// in the cache. rewrites is updated when a provisional create resolves.
func (e *syncEngine) replay(ctx context.Context, m models.QueuedMutation, rewrites map[string]string) error {
	payload, _ := rewriteRecord(m.Payload, rewrites)
	if ref, pending := pendingProvisional(payload); pending {
		return fmt.Errorf("%w: %s references %s", errUnresolvedProvisionalID, m.EntityType, ref)
	}

	switch m.Kind {
	case models.MutationCreate:
		record, err := e.remote.Create(ctx, m.EntityType, payload)
		if err != nil {
			return fmt.Errorf("replay create %s: %w", m.EntityType, err)
		}

		if m.ProvisionalID == "" {
			e.logCacheError(e.cache.Upsert(ctx, m.EntityType, record), m)
			return nil
		}

		rewrites[m.ProvisionalID] = record.ID()
		e.saveRewrites(ctx, rewrites)
		e.logCacheError(e.cache.Resolve(ctx, m.EntityType, m.ProvisionalID, record), m)
		e.logger.Info().
			Str("func", "syncEngine.replay").
			Str("entity_type", string(m.EntityType)).
			Str("provisional_id", m.ProvisionalID).
			Str("entity_id", record.ID()).
			Msg("provisional record resolved")
		return nil

	case models.MutationUpdate:
		id, err := resolveEntityID(m.EntityID, rewrites)
		if err != nil {
			return err
		}
		record, err := e.remote.Update(ctx, m.EntityType, id, payload)
		if err != nil {
			return fmt.Errorf("replay update %s %s: %w", m.EntityType, id, err)
		}
		e.logCacheError(e.cache.Upsert(ctx, m.EntityType, record), m)
		return nil

	case models.MutationDelete:
		id, err := resolveEntityID(m.EntityID, rewrites)
		if err != nil {
			return err
		}
		if err = e.remote.Delete(ctx, m.EntityType, id); err != nil {
			return fmt.Errorf("replay delete %s %s: %w", m.EntityType, id, err)
		}
		e.logCacheError(e.cache.Remove(ctx, m.EntityType, id), m)
		return nil
	}

	return fmt.Errorf("%w: unknown kind %q", models.ErrInvalidMutation, m.Kind)
}

// resolveEntityID maps a provisional id to its server id. A provisional id
// without a mapping means its create has not reached the backend yet.
func resolveEntityID(id string, rewrites map[string]string) (string, error) {
	if to, ok := rewrites[id]; ok {
		return to, nil
	}
	if models.IsProvisionalID(id) {
		return "", fmt.Errorf("%w: %s", errUnresolvedProvisionalID, id)
	}
	return id, nil
}

func (e *syncEngine) loadRewrites(ctx context.Context) map[string]string {
	rewrites, err := e.cache.Rewrites(ctx)
	if err != nil {
		e.logger.Err(err).Str("func", "syncEngine.loadRewrites").Msg("failed to read id rewrite table")
	}
	return rewrites
}

func (e *syncEngine) saveRewrites(ctx context.Context, rewrites map[string]string) {
	if err := e.cache.SaveRewrites(ctx, rewrites); err != nil {
		e.logger.Err(err).Str("func", "syncEngine.saveRewrites").Msg("failed to persist id rewrite table")
	}
}

// queueLength counts the queue, returning fallback when the count fails.
func (e *syncEngine) queueLength(ctx context.Context, fallback int) int {
	n, err := e.localStore.QueueLength(ctx)
	if err != nil {
		e.logger.Err(err).Str("func", "syncEngine.queueLength").Msg("failed to count queued mutations")
		return fallback
	}
	return n
}

func (e *syncEngine) logCacheError(err error, m models.QueuedMutation) {
	if err == nil {
		return
	}
	e.logger.Err(err).
		Str("func", "syncEngine.replay").
		Str("mutation_id", m.ID).
		Str("entity_type", string(m.EntityType)).
		Msg("failed to update cached collection after replay")
}

func (e *syncEngine) Watch(ctx context.Context, monitor ConnectivityMonitor) func() {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		prev    models.ConnectivityState
		stopped bool
	)

	unsubscribe := monitor.Subscribe(func(state models.ConnectivityState) {
		mu.Lock()
		defer mu.Unlock()

		was := prev
		prev = state
		if stopped || state != models.StateOnline || was == models.StateOnline {
			return
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Sync(ctx)
		}()
	})

	return func() {
		unsubscribe()
		mu.Lock()
		stopped = true
		mu.Unlock()
		wg.Wait()
	}
}
