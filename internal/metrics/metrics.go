// Package metrics exposes Prometheus counters for name-part reconciliation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backfill outcomes.
const (
	OutcomeUpdated = "updated"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Metrics provides observability for the salutation service.
type Metrics struct {
	// Events that derived at least one field, by event
	Derivations *prometheus.CounterVec

	// Fields pinned by a direct edit, by field
	Overrides *prometheus.CounterVec

	// Explicit resets
	Resets prometheus.Counter

	// Backfill records by outcome
	BackfillRecords *prometheus.CounterVec

	// Duration of full backfill runs
	BackfillDuration prometheus.Histogram
}

// New creates a Metrics instance registered with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		Derivations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "salutation_derivations_total",
			Help: "Total lifecycle events that changed derived name parts, by event",
		}, []string{"event"}), // event: "create", "update", "fill_blank", "backfill", "reset"

		Overrides: f.NewCounterVec(prometheus.CounterOpts{
			Name: "salutation_overrides_total",
			Help: "Total derived fields pinned by a direct edit, by field",
		}, []string{"field"}),

		Resets: f.NewCounter(prometheus.CounterOpts{
			Name: "salutation_resets_total",
			Help: "Total explicit name-part resets",
		}),

		BackfillRecords: f.NewCounterVec(prometheus.CounterOpts{
			Name: "salutation_backfill_records_total",
			Help: "Total contacts visited by backfill runs, by outcome",
		}, []string{"outcome"}),

		BackfillDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "salutation_backfill_duration_seconds",
			Help:    "Duration of full backfill runs",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}),
	}
}

// IncrementDerivation records an event that changed derived fields.
func (m *Metrics) IncrementDerivation(event string) {
	if m != nil {
		m.Derivations.WithLabelValues(event).Inc()
	}
}

// IncrementOverride records a field pinned by a direct edit.
func (m *Metrics) IncrementOverride(field string) {
	if m != nil {
		m.Overrides.WithLabelValues(field).Inc()
	}
}

// IncrementReset records an explicit reset.
func (m *Metrics) IncrementReset() {
	if m != nil {
		m.Resets.Inc()
	}
}

// IncrementBackfill records one backfilled record's outcome.
func (m *Metrics) IncrementBackfill(outcome string) {
	if m != nil {
		m.BackfillRecords.WithLabelValues(outcome).Inc()
	}
}

// ObserveBackfillDuration records the duration of a backfill run.
func (m *Metrics) ObserveBackfillDuration(d time.Duration) {
	if m != nil {
		m.BackfillDuration.Observe(d.Seconds())
	}
}
