// Package metrics records settlement runs in a Prometheus registry.
//
// The CLI has no listener; metrics are written in the node exporter textfile
// format so a textfile collector can pick them up.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/splitsettle/internal/money"
)

const namespace = "splitsettle"

// Run outcomes.
const (
	OutcomeOptimized = "optimized"
	OutcomeFallback  = "fallback"
	OutcomeRejected  = "rejected"
)

// Recorder holds the settlement metrics. A nil *Recorder discards everything.
type Recorder struct {
	registry           *prometheus.Registry
	runs               *prometheus.CounterVec
	participants       prometheus.Gauge
	naiveTransfers     prometheus.Gauge
	optimizedTransfers prometheus.Gauge
	maxDrift           prometheus.Gauge
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Settlement runs by outcome.",
		}, []string{"outcome"}),
		participants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "people",
			Help:      "Total headcount of the last settlement run.",
		}),
		naiveTransfers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "naive_transfers",
			Help:      "Transfers in the unoptimized all-pairs debt set of the last run.",
		}),
		optimizedTransfers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "optimized_transfers",
			Help:      "Transfers emitted by the last run.",
		}),
		maxDrift: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "max_drift",
			Help:      "Largest per-person balance drift found by validation, in currency units.",
		}),
	}
	r.registry.MustRegister(r.runs, r.participants, r.naiveTransfers, r.optimizedTransfers, r.maxDrift)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveRun records one completed settlement run.
func (r *Recorder) ObserveRun(outcome string, people int64, naive, emitted int, maxDrift money.Money) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(outcome).Inc()
	r.participants.Set(float64(people))
	r.naiveTransfers.Set(float64(naive))
	r.optimizedTransfers.Set(float64(emitted))
	r.maxDrift.Set(maxDrift.Decimal().InexactFloat64())
}

// ObserveRejected records a run refused because of invalid input.
func (r *Recorder) ObserveRejected() {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(OutcomeRejected).Inc()
}

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
