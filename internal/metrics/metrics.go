// Package metrics defines the Prometheus collectors of the clinic client and
// the reference backend. Collectors are registered on the Registerer handed
// to the constructor; a nil *Sync or *HTTP is a valid no-op recorder.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

const namespace = "clinic"

// Enqueue reasons.
const (
	ReasonOffline           = "offline"
	ReasonRemoteFailure     = "remote_failure"
	// ReasonUnsyncedReference is an online write held back because it points
	// at a record whose create is still queued.
	ReasonUnsyncedReference = "unsynced_reference"
)

// Sync holds the client-side collectors for the offline sync core.
type Sync struct {
	queueDepth        prometheus.Gauge
	enqueued          *prometheus.CounterVec
	replayed          *prometheus.CounterVec
	replayFailures    *prometheus.CounterVec
	drainDuration     prometheus.Histogram
	connectivityState *prometheus.GaugeVec
	cacheFallbacks    *prometheus.CounterVec
}

// NewSync registers the client collectors on reg.
func NewSync(reg prometheus.Registerer) *Sync {
	f := promauto.With(reg)

	return &Sync{
		queueDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mutation_queue_depth",
			Help:      "Number of mutations waiting for replay",
		}),
		enqueued: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_enqueued_total",
			Help:      "Total writes queued for later replay by entity type, kind and reason",
		}, []string{"entity_type", "kind", "reason"}),
		replayed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_replayed_total",
			Help:      "Total queued mutations applied to the backend",
		}, []string{"entity_type", "kind"}),
		replayFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutation_replay_failures_total",
			Help:      "Total replay attempts that left the mutation queued",
		}, []string{"entity_type", "kind"}),
		drainDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "drain_duration_seconds",
			Help:      "Duration of one drain pass over the mutation queue",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}),
		connectivityState: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connectivity_state",
			Help:      "1 for the current connectivity state, 0 otherwise",
		}, []string{"state"}),
		cacheFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_fallback_reads_total",
			Help:      "Total reads served from the local cache after a remote failure",
		}, []string{"entity_type"}),
	}
}

func (m *Sync) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

func (m *Sync) Enqueued(entityType models.EntityType, kind models.MutationKind, reason string) {
	if m == nil {
		return
	}
	m.enqueued.WithLabelValues(string(entityType), string(kind), reason).Inc()
}

func (m *Sync) Replayed(entityType models.EntityType, kind models.MutationKind) {
	if m == nil {
		return
	}
	m.replayed.WithLabelValues(string(entityType), string(kind)).Inc()
}

func (m *Sync) ReplayFailed(entityType models.EntityType, kind models.MutationKind) {
	if m == nil {
		return
	}
	m.replayFailures.WithLabelValues(string(entityType), string(kind)).Inc()
}

func (m *Sync) ObserveDrain(d time.Duration) {
	if m == nil {
		return
	}
	m.drainDuration.Observe(d.Seconds())
}

// SetConnectivity marks state as current and clears the other states.
func (m *Sync) SetConnectivity(state models.ConnectivityState) {
	if m == nil {
		return
	}
	for _, s := range []models.ConnectivityState{models.StateOnline, models.StateOffline, models.StateChecking} {
		v := 0.0
		if s == state {
			v = 1
		}
		m.connectivityState.WithLabelValues(string(s)).Set(v)
	}
}

func (m *Sync) CacheFallback(entityType models.EntityType) {
	if m == nil {
		return
	}
	m.cacheFallbacks.WithLabelValues(string(entityType)).Inc()
}

// HTTP holds the reference backend request collectors.
type HTTP struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTP registers the backend collectors on reg.
func NewHTTP(reg prometheus.Registerer) *HTTP {
	f := promauto.With(reg)

	return &HTTP{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route pattern, method and status",
		}, []string{"route", "method", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// Observe records one finished request.
func (m *HTTP) Observe(route, method, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, status).Inc()
	m.duration.WithLabelValues(route, method).Observe(d.Seconds())
}
