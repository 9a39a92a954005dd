// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTallyMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewTallyMetrics(reg, "test")

	m.BallotsAccepted.Inc()
	m.Rejected(ReasonInvalid)
	m.ObserveTally(time.Now(), 2)
	m.ElectionsClosed.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"test_ballots_accepted_total",
		"test_ballots_rejected_total",
		"test_tally_duration_seconds",
		"test_smith_set_size",
		"test_elections_closed_total",
	}, names)
}

func TestNewTallyMetrics_DuplicatePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewTallyMetrics(reg, "dup")
	assert.Panics(t, func() { NewTallyMetrics(reg, "dup") })
}

func TestRejected_CountsByReason(t *testing.T) {
	m := NewTallyMetrics(prometheus.NewRegistry(), "test")

	m.Rejected(ReasonInvalid)
	m.Rejected(ReasonInvalid)
	m.Rejected(ReasonClosed)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BallotsRejected.WithLabelValues(ReasonInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BallotsRejected.WithLabelValues(ReasonClosed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BallotsRejected.WithLabelValues(ReasonMissing)))
}

func TestObserveTally(t *testing.T) {
	m := NewTallyMetrics(prometheus.NewRegistry(), "test")

	m.ObserveTally(time.Now(), 3)
	m.ObserveTally(time.Now(), 1)

	expected := `
# HELP test_smith_set_size Number of candidates in each computed Smith set
# TYPE test_smith_set_size histogram
test_smith_set_size_bucket{le="1"} 1
test_smith_set_size_bucket{le="2"} 1
test_smith_set_size_bucket{le="3"} 2
test_smith_set_size_bucket{le="4"} 2
test_smith_set_size_bucket{le="5"} 2
test_smith_set_size_bucket{le="6"} 2
test_smith_set_size_bucket{le="7"} 2
test_smith_set_size_bucket{le="8"} 2
test_smith_set_size_bucket{le="+Inf"} 2
test_smith_set_size_sum 4
test_smith_set_size_count 2
`
	require.NoError(t, testutil.CollectAndCompare(m.SmithSetSize, strings.NewReader(expected)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TallyDuration))
}
