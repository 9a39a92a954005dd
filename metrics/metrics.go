// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons for BallotsRejected.
const (
	ReasonInvalid = "invalid"
	ReasonClosed  = "closed"
	ReasonMissing = "not_found"
)

type TallyMetrics struct {
	BallotsAccepted prometheus.Counter
	BallotsRejected *prometheus.CounterVec
	TallyDuration   prometheus.Histogram
	SmithSetSize    prometheus.Histogram
	ElectionsClosed prometheus.Counter
}

// NewTallyMetrics registers every collector on reg. Each registry can hold
// one set per namespace.
func NewTallyMetrics(reg prometheus.Registerer, namespace string) *TallyMetrics {
	factory := promauto.With(reg)
	return &TallyMetrics{
		BallotsAccepted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ballots_accepted_total",
				Help:      "Total number of ballots stored",
			},
		),
		BallotsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ballots_rejected_total",
				Help:      "Total number of ballots refused, by reason",
			},
			[]string{"reason"},
		),
		TallyDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tally_duration_seconds",
				Help:      "Histogram of full tally times",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
			},
		),
		SmithSetSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "smith_set_size",
				Help:      "Number of candidates in each computed Smith set",
				Buckets:   prometheus.LinearBuckets(1, 1, 8),
			},
		),
		ElectionsClosed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "elections_closed_total",
				Help:      "Total number of elections closed by their admin",
			},
		),
	}
}

// ObserveTally records one completed tally.
func (m *TallyMetrics) ObserveTally(started time.Time, smithSize int) {
	m.TallyDuration.Observe(time.Since(started).Seconds())
	m.SmithSetSize.Observe(float64(smithSize))
}

func (m *TallyMetrics) Rejected(reason string) {
	m.BallotsRejected.WithLabelValues(reason).Inc()
}
