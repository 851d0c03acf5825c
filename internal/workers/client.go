package workers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/go-clinic-keeper/internal/config"
	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/service"
)

const metricsShutdownTimeout = 5 * time.Second

// NewClientWorkers assembles the client background workers: the connectivity
// monitor loop, the sync trigger on every online transition, the scheduled
// sync job and, when cfg.MetricsAddress is set, the metrics endpoint.
func NewClientWorkers(services *service.ClientServices, cfg config.ClientWorkers, gatherer prometheus.Gatherer, log *logger.Logger) *Workers {
	workers := []Worker{
		WorkerFunc(services.Monitor.Run),
		syncTrigger(services.SyncEngine, services.Monitor),
		syncJob(services.SyncJob, cfg.SyncInterval),
	}
	if cfg.MetricsAddress != "" {
		workers = append(workers, metricsServer(cfg.MetricsAddress, gatherer, log))
	}
	return NewWorkers(workers...)
}

func syncTrigger(engine service.SyncEngine, monitor service.ConnectivityMonitor) Worker {
	return WorkerFunc(func(ctx context.Context) error {
		stop := engine.Watch(ctx, monitor)
		<-ctx.Done()
		stop()
		return nil
	})
}

func syncJob(job service.ClientSyncJob, interval time.Duration) Worker {
	return WorkerFunc(func(ctx context.Context) error {
		job.Start(ctx, interval)
		<-ctx.Done()
		job.Stop()
		return nil
	})
}

func metricsServer(addr string, gatherer prometheus.Gatherer, log *logger.Logger) Worker {
	return WorkerFunc(func(ctx context.Context) error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("func", "workers.metricsServer").Str("addr", addr).Msg("serving client metrics")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("metrics server: %w", err)
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	})
}
