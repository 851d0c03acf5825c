package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

// defaultSyncInterval is used when Start receives a non-positive interval.
const defaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	engine  SyncEngine
	monitor StateReader

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that calls engine.Sync on a
// ticker while monitor reports online. The job is idle until Start is called.
func NewClientSyncJob(engine SyncEngine, monitor StateReader) ClientSyncJob {
	return &clientSyncJob{engine: engine, monitor: monitor}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that runs a drain pass every interval. Ticks
// that find the monitor not online are skipped. The goroutine exits when ctx
// is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if j.monitor.State() != models.StateOnline {
					continue
				}
				_ = j.engine.Sync(jobCtx)
			}
		}
	}()
}

// Stop implements ClientSyncJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the job
// is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
