// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/rank-approve/cliparse"
	"github.com/danielhkuo/rank-approve/election"
	"github.com/danielhkuo/rank-approve/metrics"
	"github.com/danielhkuo/rank-approve/middleware"
	"github.com/danielhkuo/rank-approve/models"
	"github.com/go-chi/chi/v5"
)

type ResultsHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	metrics *metrics.TallyMetrics
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config, m *metrics.TallyMetrics) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg, metrics: m}
}

// lookup resolves the slug and writes the error response itself
func (h *ResultsHandler) lookup(w http.ResponseWriter, r *http.Request) (models.Election, bool) {
	shareSlug := chi.URLParam(r, "slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return models.Election{}, false
	}

	el, err := getElectionBySlug(r.Context(), h.db, shareSlug)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return models.Election{}, false
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Election{}, false
	}
	return el, true
}

// GetElection handles GET /elections/{slug}
// Returns election details and candidates for the ballot form
func (h *ResultsHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	el, ok := h.lookup(w, r)
	if !ok {
		return
	}

	candidates, err := getCandidates(r.Context(), h.db, el.ID)
	if err != nil {
		slog.Error("failed to load candidates", "election_id", el.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	count, err := getBallotCount(r.Context(), h.db, el.ID)
	if err != nil {
		slog.Error("failed to count ballots", "election_id", el.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionWithCandidates{
		Election:    el,
		Candidates:  candidates,
		BallotCount: count,
	})
}

// GetBallotCount handles GET /elections/{slug}/ballot-count
func (h *ResultsHandler) GetBallotCount(w http.ResponseWriter, r *http.Request) {
	el, ok := h.lookup(w, r)
	if !ok {
		return
	}

	count, err := getBallotCount(r.Context(), h.db, el.ID)
	if err != nil {
		slog.Error("failed to count ballots", "election_id", el.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotCountResponse{BallotCount: count})
}

// GetResults handles GET /elections/{slug}/results
// Results are recomputed from the stored ballots on every request, open or closed.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	el, ok := h.lookup(w, r)
	if !ok {
		return
	}

	snapshot, _, err := loadTallyInput(r.Context(), h.db, el)
	if err != nil {
		slog.Error("failed to load election", "election_id", el.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	started := time.Now()
	result, err := election.Tally(snapshot, h.cfg.Weights)
	if err != nil {
		// Ballots are validated on the way in, so this means the stored data drifted
		slog.Error("failed to tally election", "election_id", el.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}
	h.metrics.ObserveTally(started, len(result.SmithSet))

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Election: el,
		Method:   models.MethodSmithComposite,
		NoVotes:  !result.HasVotes(),
		Weights:  h.cfg.Weights,
		Result:   result,
	})
}
