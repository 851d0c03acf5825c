package service

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clinic-keeper/internal/adapter"
	"github.com/MKhiriev/go-clinic-keeper/internal/config"
	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/store"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

// newSQLiteStore opens a local store on a fresh file.
func newSQLiteStore(t *testing.T) store.LocalStore {
	t.Helper()

	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{
		DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "local.db")},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	return storages.LocalStore
}

// fixedState is a StateReader whose state is set by the test.
type fixedState struct {
	mu    sync.Mutex
	state models.ConnectivityState
}

func newFixedState(state models.ConnectivityState) *fixedState {
	return &fixedState{state: state}
}

func (s *fixedState) State() models.ConnectivityState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *fixedState) Set(state models.ConnectivityState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// fakeRemote is an in-memory backend. Every call is appended to calls as
// "<op> <entityType> [id]" before fail is consulted.
type fakeRemote struct {
	mu      sync.Mutex
	nextID  int
	records map[models.EntityType][]models.Record
	calls   []string
	fail    func(op string, entityType models.EntityType, id string) error
}

var _ adapter.EntityAdapter = (*fakeRemote)(nil)

func newFakeRemote() *fakeRemote {
	return &fakeRemote{records: make(map[models.EntityType][]models.Record)}
}

func (f *fakeRemote) record(op string, entityType models.EntityType, id string) error {
	call := op + " " + string(entityType)
	if id != "" {
		call += " " + id
	}
	f.calls = append(f.calls, call)

	if f.fail != nil {
		return f.fail(op, entityType, id)
	}
	return nil
}

func (f *fakeRemote) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeRemote) Stored(entityType models.EntityType) []models.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.records[entityType])
}

func (f *fakeRemote) SetFail(fail func(op string, entityType models.EntityType, id string) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

func (f *fakeRemote) List(_ context.Context, entityType models.EntityType, params models.ListParams) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("list", entityType, ""); err != nil {
		return nil, err
	}

	out := []models.Record{}
	for _, r := range f.records[entityType] {
		if params.Match(r) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (f *fakeRemote) GetByID(_ context.Context, entityType models.EntityType, id string) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("get", entityType, id); err != nil {
		return nil, err
	}

	if i := indexOf(f.records[entityType], id); i >= 0 {
		return f.records[entityType][i].Clone(), nil
	}
	return nil, adapter.ErrNotFound
}

func (f *fakeRemote) Create(_ context.Context, entityType models.EntityType, payload models.Record) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("create", entityType, ""); err != nil {
		return nil, err
	}

	f.nextID++
	rec := payload.Merge(models.Record{models.IDField: fmt.Sprintf("srv-%d", f.nextID)})
	f.records[entityType] = append(f.records[entityType], rec)
	return rec.Clone(), nil
}

func (f *fakeRemote) Update(_ context.Context, entityType models.EntityType, id string, payload models.Record) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("update", entityType, id); err != nil {
		return nil, err
	}

	i := indexOf(f.records[entityType], id)
	if i < 0 {
		return nil, adapter.ErrNotFound
	}
	f.records[entityType][i] = f.records[entityType][i].Merge(payload)
	return f.records[entityType][i].Clone(), nil
}

func (f *fakeRemote) Delete(_ context.Context, entityType models.EntityType, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("delete", entityType, id); err != nil {
		return err
	}

	i := indexOf(f.records[entityType], id)
	if i < 0 {
		return adapter.ErrNotFound
	}
	f.records[entityType] = slices.Delete(f.records[entityType], i, i+1)
	return nil
}

// testClient bundles facades and the engine over one store and cache.
type testClient struct {
	store   store.LocalStore
	cache   *collectionCache
	remote  *fakeRemote
	state   *fixedState
	engine  *syncEngine
	clients *entityService
	reports *entityService
	remind  *entityService
}

func newTestClient(t *testing.T, state models.ConnectivityState) *testClient {
	t.Helper()

	localStore := newSQLiteStore(t)
	cache := newCollectionCache(localStore)
	remote := newFakeRemote()
	st := newFixedState(state)

	facade := func(et models.EntityType) *entityService {
		svc, err := newEntityService(et, localStore, cache, remote, st, nil, logger.Nop())
		require.NoError(t, err)
		return svc
	}

	return &testClient{
		store:   localStore,
		cache:   cache,
		remote:  remote,
		state:   st,
		engine:  newSyncEngine(localStore, remote, cache, nil, logger.Nop()),
		clients: facade(models.EntityClient),
		reports: facade(models.EntityHearingReport),
		remind:  facade(models.EntityReminder),
	}
}

func (c *testClient) queue(t *testing.T) []models.QueuedMutation {
	t.Helper()
	q, err := c.store.ListQueue(context.Background())
	require.NoError(t, err)
	return q
}
