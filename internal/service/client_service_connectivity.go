package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-clinic-keeper/internal/adapter"
	"github.com/MKhiriev/go-clinic-keeper/internal/config"
	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/metrics"
	"github.com/MKhiriev/go-clinic-keeper/internal/platform"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

type connectivityMonitor struct {
	prober   adapter.Prober
	platform platform.Signal
	interval time.Duration
	timeout  time.Duration

	logger  *logger.Logger
	metrics *metrics.Sync

	mu    sync.RWMutex
	state models.ConnectivityState
	subs  broadcaster[models.ConnectivityState]

	probes sync.WaitGroup
}

// newConnectivityMonitor builds the monitor. The initial state mirrors the
// host signal: online when the host reports network access, offline
// otherwise. Probes are bounded by cfg.ProbeTimeout and repeated every
// cfg.ProbeInterval once Run is called.
func newConnectivityMonitor(prober adapter.Prober, signal platform.Signal, cfg config.ClientConnectivity, m *metrics.Sync, log *logger.Logger) *connectivityMonitor {
	if cfg.ProbeInterval <= 0 {
		cfg.ProbeInterval = config.DefaultProbeInterval
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = config.DefaultProbeTimeout
	}

	initial := models.StateOffline
	if signal.Online() {
		initial = models.StateOnline
	}
	m.SetConnectivity(initial)

	return &connectivityMonitor{
		prober:   prober,
		platform: signal,
		interval: cfg.ProbeInterval,
		timeout:  cfg.ProbeTimeout,
		logger:   log.WithComponent("connectivity"),
		metrics:  m,
		state:    initial,
	}
}

func (c *connectivityMonitor) State() models.ConnectivityState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *connectivityMonitor) Subscribe(listener func(models.ConnectivityState)) func() {
	return c.subs.subscribe(c.State, listener)
}

// transition moves to next and notifies subscribers. Equal states are never
// published. When from is set, the move only happens out of that state.
func (c *connectivityMonitor) transition(next models.ConnectivityState, from ...models.ConnectivityState) {
	c.subs.publish(func() (models.ConnectivityState, bool) {
		c.mu.Lock()
		defer c.mu.Unlock()

		prev := c.state
		if prev == next {
			return prev, false
		}
		if len(from) > 0 && prev != from[0] {
			return prev, false
		}
		c.state = next

		c.logger.Info().
			Str("func", "connectivityMonitor.transition").
			Str("from", string(prev)).
			Str("state", string(next)).
			Msg("connectivity changed")
		c.metrics.SetConnectivity(next)

		return next, true
	})
}

func (c *connectivityMonitor) Probe(ctx context.Context) models.ConnectivityState {
	c.transition(models.StateChecking, models.StateOffline)

	probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.prober.Ping(probeCtx)
	switch {
	case err == nil:
		c.transition(models.StateOnline)
	case ctx.Err() != nil:
		// shutting down, not a probe failure
		return c.State()
	default:
		c.logger.Debug().Err(err).
			Str("func", "connectivityMonitor.Probe").
			Dur("timeout", c.timeout).
			Msg("health probe failed")
		c.transition(models.StateOffline)
	}

	return c.State()
}

func (c *connectivityMonitor) probeAsync(ctx context.Context) {
	c.probes.Add(1)
	go func() {
		defer c.probes.Done()
		c.Probe(ctx)
	}()
}

func (c *connectivityMonitor) Run(ctx context.Context) error {
	events := c.platform.Watch(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer c.probes.Wait()

	if c.platform.Online() {
		c.probeAsync(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			c.logger.Debug().Str("func", "connectivityMonitor.Run").Stringer("event", ev).Msg("platform event")

			switch ev {
			case platform.Offline:
				c.transition(models.StateOffline)
			case platform.Online:
				c.probeAsync(ctx)
			}

		case <-ticker.C:
			if c.platform.Online() {
				c.probeAsync(ctx)
			}
		}
	}
}
