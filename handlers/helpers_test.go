// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/danielhkuo/rank-approve/cliparse"
	"github.com/danielhkuo/rank-approve/events"
	"github.com/danielhkuo/rank-approve/metrics"
	"github.com/danielhkuo/rank-approve/testutil"
	"github.com/prometheus/client_golang/prometheus"
)

// recordingPublisher keeps every event it is given
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ElectionClosed
	err    error
}

func (p *recordingPublisher) PublishElectionClosed(_ context.Context, ev events.ElectionClosed) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []events.ElectionClosed {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.ElectionClosed(nil), p.events...)
}

var errBrokerDown = errors.New("broker down")

type testServer struct {
	db        *sql.DB
	cfg       cliparse.Config
	metrics   *metrics.TallyMetrics
	publisher *recordingPublisher
	elections *ElectionHandler
	ballots   *BallotHandler
	results   *ResultsHandler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		db:        testutil.SetupTestDB(t),
		cfg:       testutil.GetTestConfig(),
		metrics:   metrics.NewTallyMetrics(prometheus.NewRegistry(), "test"),
		publisher: &recordingPublisher{},
	}
	s.elections = NewElectionHandler(s.db, s.cfg, s.publisher, s.metrics)
	s.ballots = NewBallotHandler(s.db, s.cfg, s.metrics)
	s.results = NewResultsHandler(s.db, s.cfg, s.metrics)
	return s
}
