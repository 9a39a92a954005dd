// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/rank-approve/cliparse"
	"github.com/danielhkuo/rank-approve/events"
	"github.com/danielhkuo/rank-approve/handlers"
	"github.com/danielhkuo/rank-approve/metrics"
	"github.com/danielhkuo/rank-approve/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "rank_approve"

// NewRouter wires every endpoint. Tally metrics are registered on reg, which
// is also what GET /metrics exposes.
func NewRouter(db *sql.DB, cfg cliparse.Config, publisher events.Publisher, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, middleware.WithLogging, chimw.Recoverer, middleware.CORS)

	// Initialize handlers
	m := metrics.NewTallyMetrics(reg, metricsNamespace)
	electionHandler := handlers.NewElectionHandler(db, cfg, publisher, m)
	ballotHandler := handlers.NewBallotHandler(db, cfg, m)
	resultsHandler := handlers.NewResultsHandler(db, cfg, m)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	r.Route("/elections", func(r chi.Router) {
		// Election management (admin operations)
		r.Post("/", electionHandler.CreateElection)
		r.Get("/{id}/admin", electionHandler.GetElectionAdmin)
		r.Post("/{id}/close", electionHandler.CloseElection)

		// Voting and results (public, by share slug)
		r.Get("/{slug}", resultsHandler.GetElection)
		r.Post("/{slug}/ballots", ballotHandler.SubmitBallot)
		r.Get("/{slug}/ballot-count", resultsHandler.GetBallotCount)
		r.Get("/{slug}/results", resultsHandler.GetResults)
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("rank-approve API v1"))
	})

	return r
}
