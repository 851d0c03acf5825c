package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-clinic-keeper/internal/config"
	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/utils"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

// localStore is the SQLite-backed implementation of [LocalStore].
//
// The database is opened and migrated on first use. Concurrent first calls
// share a single open attempt; its outcome, including failure, is kept for
// the lifetime of the store.
type localStore struct {
	cfg    config.ClientDB
	logger *logger.Logger
	ids    *utils.UUIDGenerator

	openOnce sync.Once
	openErr  error
	db       *DB

	// enqueueMu orders enqueued_at assignment with the insert itself so that
	// enqueue order and timestamp order never disagree.
	enqueueMu      sync.Mutex
	lastEnqueuedAt int64
}

// NewLocalStore returns a [LocalStore] backed by the SQLite file cfg.DSN. The
// file is not touched until the first call.
func NewLocalStore(cfg config.ClientDB, log *logger.Logger) LocalStore {
	return newLocalStore(cfg, log)
}

func newLocalStore(cfg config.ClientDB, log *logger.Logger) *localStore {
	return &localStore{
		cfg:    cfg,
		logger: log,
		ids:    utils.NewUUIDGenerator(),
	}
}

// Open connects and migrates the database. It is idempotent and safe to call
// concurrently; every other method calls it implicitly.
func (s *localStore) Open(ctx context.Context) error {
	s.openOnce.Do(func() {
		db, err := NewConnectSQLite(ctx, s.cfg, s.logger)
		if err != nil {
			s.openErr = err
			return
		}

		if err = db.Migrate(ctx); err != nil {
			_ = db.Close()
			s.openErr = fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
			return
		}

		var last int64
		if err = db.QueryRowContext(ctx, maxEnqueuedAt).Scan(&last); err != nil {
			_ = db.Close()
			s.openErr = storageError("read queue watermark", err)
			return
		}

		s.db = db
		s.lastEnqueuedAt = last
	})

	return s.openErr
}

// Close releases the database handle if it was opened.
func (s *localStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *localStore) Put(ctx context.Context, key string, value json.RawMessage) error {
	if err := s.Open(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, putCacheEntry, key, string(value), time.Now().UnixNano())
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.Put").
			Str("key", key).
			Msg("failed to write cache entry")
		return storageError("put cache entry "+key, err)
	}

	return nil
}

func (s *localStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if err := s.Open(ctx); err != nil {
		return nil, err
	}

	var value string
	err := s.db.QueryRowContext(ctx, getCacheEntry, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.Get").
			Str("key", key).
			Msg("failed to read cache entry")
		return nil, storageError("get cache entry "+key, err)
	}

	return json.RawMessage(value), nil
}

func (s *localStore) Enqueue(ctx context.Context, m models.QueuedMutation) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	if err := s.Open(ctx); err != nil {
		return "", err
	}

	if m.ID == "" {
		m.ID = s.ids.Generate()
	}

	payload, err := json.Marshal(m.Payload)
	if err != nil {
		return "", fmt.Errorf("encode mutation payload: %w", err)
	}

	s.enqueueMu.Lock()
	defer s.enqueueMu.Unlock()

	enqueuedAt := time.Now().UnixNano()
	if enqueuedAt <= s.lastEnqueuedAt {
		enqueuedAt = s.lastEnqueuedAt + 1
	}

	_, err = s.db.ExecContext(ctx, insertQueuedMutation,
		m.ID,
		string(m.Kind),
		string(m.EntityType),
		nullString(m.EntityID),
		string(payload),
		nullString(m.ProvisionalID),
		enqueuedAt,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.Enqueue").
			Str("mutation_id", m.ID).
			Str("entity_type", string(m.EntityType)).
			Msg("failed to insert queued mutation")
		return "", storageError("enqueue mutation", err)
	}
	s.lastEnqueuedAt = enqueuedAt

	return m.ID, nil
}

func (s *localStore) ListQueue(ctx context.Context) ([]models.QueuedMutation, error) {
	if err := s.Open(ctx); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	rows, err := s.db.QueryContext(ctx, listQueuedMutations)
	if err != nil {
		log.Err(err).Str("func", "localStore.ListQueue").Msg("failed to query queued mutations")
		return nil, storageError("list queue", err)
	}
	defer rows.Close()

	var queue []models.QueuedMutation
	for rows.Next() {
		var (
			m             models.QueuedMutation
			kind, entity  string
			entityID      sql.NullString
			provisionalID sql.NullString
			payload       string
		)

		if err = rows.Scan(&m.ID, &kind, &entity, &entityID, &payload, &provisionalID, &m.EnqueuedAt); err != nil {
			log.Err(err).Str("func", "localStore.ListQueue").Msg("failed to scan queued mutation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		m.Kind = models.MutationKind(kind)
		m.EntityType = models.EntityType(entity)
		m.EntityID = entityID.String
		m.ProvisionalID = provisionalID.String
		if err = json.Unmarshal([]byte(payload), &m.Payload); err != nil {
			return nil, fmt.Errorf("decode payload of mutation %s: %w", m.ID, err)
		}

		queue = append(queue, m)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "localStore.ListQueue").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return queue, nil
}

func (s *localStore) Remove(ctx context.Context, id string) error {
	if err := s.Open(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, removeQueuedMutation, id); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.Remove").
			Str("mutation_id", id).
			Msg("failed to remove queued mutation")
		return storageError("remove mutation "+id, err)
	}

	return nil
}

func (s *localStore) ClearQueue(ctx context.Context) error {
	if err := s.Open(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, clearQueuedMutations); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localStore.ClearQueue").Msg("failed to clear queue")
		return storageError("clear queue", err)
	}

	return nil
}

func (s *localStore) QueueLength(ctx context.Context) (int, error) {
	if err := s.Open(ctx); err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx, countQueuedMutations).Scan(&n); err != nil {
		return 0, storageError("count queue", err)
	}

	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
