package service

import (
	"github.com/MKhiriev/go-clinic-keeper/internal/adapter"
	"github.com/MKhiriev/go-clinic-keeper/internal/config"
	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/metrics"
	"github.com/MKhiriev/go-clinic-keeper/internal/platform"
	"github.com/MKhiriev/go-clinic-keeper/internal/store"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

// ClientServices holds the long-lived client services. They are built once
// at startup and share one local store and one cache.
type ClientServices struct {
	Monitor    ConnectivityMonitor
	SyncEngine SyncEngine
	SyncJob    ClientSyncJob

	Clients        EntityService
	HearingReports EntityService
	Reminders      EntityService
}

// ClientDeps are the collaborators the client services are built from.
type ClientDeps struct {
	LocalStore store.LocalStore
	Remote     adapter.EntityAdapter
	Prober     adapter.Prober
	Platform   platform.Signal
	Metrics    *metrics.Sync
}

func NewClientServices(deps ClientDeps, cfg config.ClientConnectivity, log *logger.Logger) (*ClientServices, error) {
	cache := newCollectionCache(deps.LocalStore)
	monitor := newConnectivityMonitor(deps.Prober, deps.Platform, cfg, deps.Metrics, log)
	engine := newSyncEngine(deps.LocalStore, deps.Remote, cache, deps.Metrics, log)

	facades := make(map[models.EntityType]EntityService, len(models.EntityTypes))
	for _, et := range models.EntityTypes {
		svc, err := newEntityService(et, deps.LocalStore, cache, deps.Remote, monitor, deps.Metrics, log)
		if err != nil {
			return nil, err
		}
		facades[et] = svc
	}

	return &ClientServices{
		Monitor:        monitor,
		SyncEngine:     engine,
		SyncJob:        NewClientSyncJob(engine, monitor),
		Clients:        facades[models.EntityClient],
		HearingReports: facades[models.EntityHearingReport],
		Reminders:      facades[models.EntityReminder],
	}, nil
}

// Entities returns the entity services in [models.EntityTypes] order.
func (s *ClientServices) Entities() []EntityService {
	return []EntityService{s.Clients, s.HearingReports, s.Reminders}
}
