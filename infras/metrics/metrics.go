package metrics

import (
	"roombooking/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the booking engine.
type Metrics struct {
	// OccurrencesTotal counts persisted occurrences by initial state.
	OccurrencesTotal *prometheus.CounterVec

	// ViolationsTotal counts availability violations by kind.
	ViolationsTotal *prometheus.CounterVec

	// ConflictsTotal counts candidate occurrences that collided with existing ones.
	ConflictsTotal prometheus.Counter

	// TransitionsTotal counts lifecycle transitions by target state.
	TransitionsTotal *prometheus.CounterVec

	// PersistenceConflicts counts writes lost to a concurrent transaction.
	PersistenceConflicts prometheus.Counter

	// CreateDuration is the time spent creating a reservation.
	CreateDuration prometheus.Histogram

	// OutboxPublished counts relayed outbox events by status.
	OutboxPublished *prometheus.CounterVec

	// OutboxBacklog is the number of unpublished outbox events.
	OutboxBacklog prometheus.Gauge

	// ExpiredOccurrences counts pending occurrences rejected by the expiry job.
	ExpiredOccurrences prometheus.Counter
}

// New registers the collectors on reg. Tests pass a fresh registry.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OccurrencesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "occurrences_total",
				Help:      "Total number of persisted occurrences",
			},
			[]string{"state"},
		),

		ViolationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "availability_violations_total",
				Help:      "Total number of availability violations",
			},
			[]string{"kind"},
		),

		ConflictsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conflicts_total",
				Help:      "Total number of conflicting candidate occurrences",
			},
		),

		TransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "occurrence_transitions_total",
				Help:      "Total number of occurrence state transitions",
			},
			[]string{"state"},
		),

		PersistenceConflicts: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "persistence_conflicts_total",
				Help:      "Total number of writes lost to concurrent transactions",
			},
		),

		CreateDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "reservation_create_duration_seconds",
				Help:      "Time to create a reservation",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2, 5},
			},
		),

		OutboxPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outbox_published_total",
				Help:      "Total number of relayed outbox events",
			},
			[]string{"status"},
		),

		OutboxBacklog: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "outbox_backlog",
				Help:      "Number of unpublished outbox events",
			},
		),

		ExpiredOccurrences: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "expired_occurrences_total",
				Help:      "Total number of pending occurrences expired before start",
			},
		),
	}
}

// NewDefault registers on the process-wide registry served at /metrics.
func NewDefault(cfg *config.Config) *Metrics {
	return New(cfg.Metrics.Namespace, prometheus.DefaultRegisterer)
}

func (m *Metrics) IncOccurrence(state string) {
	m.OccurrencesTotal.WithLabelValues(state).Inc()
}

func (m *Metrics) IncViolation(kind string) {
	m.ViolationsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncConflicts(count int) {
	m.ConflictsTotal.Add(float64(count))
}

func (m *Metrics) IncTransition(state string, count int) {
	m.TransitionsTotal.WithLabelValues(state).Add(float64(count))
}

func (m *Metrics) IncPersistenceConflict() {
	m.PersistenceConflicts.Inc()
}

func (m *Metrics) ObserveCreateDuration(seconds float64) {
	m.CreateDuration.Observe(seconds)
}

func (m *Metrics) IncPublished(status string, count int) {
	m.OutboxPublished.WithLabelValues(status).Add(float64(count))
}

func (m *Metrics) SetBacklog(size int) {
	m.OutboxBacklog.Set(float64(size))
}

func (m *Metrics) IncExpired(count int) {
	m.ExpiredOccurrences.Add(float64(count))
}
