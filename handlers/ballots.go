// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/rank-approve/auth"
	"github.com/danielhkuo/rank-approve/cliparse"
	"github.com/danielhkuo/rank-approve/election"
	"github.com/danielhkuo/rank-approve/metrics"
	"github.com/danielhkuo/rank-approve/middleware"
	"github.com/danielhkuo/rank-approve/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxVoterNameLength = 100

type BallotHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	metrics *metrics.TallyMetrics
}

func NewBallotHandler(db *sql.DB, cfg cliparse.Config, m *metrics.TallyMetrics) *BallotHandler {
	return &BallotHandler{db: db, cfg: cfg, metrics: m}
}

// SubmitBallot handles POST /elections/{slug}/ballots
// Ballots are append-only. The voter name is informational and never checked.
func (h *BallotHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	shareSlug := chi.URLParam(r, "slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	// Parse request
	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		h.metrics.Rejected(metrics.ReasonInvalid)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voterName := strings.TrimSpace(req.VoterName)
	if voterName == "" {
		h.metrics.Rejected(metrics.ReasonInvalid)
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_name is required")
		return
	}
	if len(voterName) > maxVoterNameLength {
		h.metrics.Rejected(metrics.ReasonInvalid)
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_name is too long")
		return
	}

	// Find election by share slug
	el, err := getElectionBySlug(r.Context(), h.db, shareSlug)
	if errors.Is(err, sql.ErrNoRows) {
		h.metrics.Rejected(metrics.ReasonMissing)
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Can only vote on open elections
	if el.Status != models.StatusOpen {
		h.metrics.Rejected(metrics.ReasonClosed)
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open for voting")
		return
	}

	candidates, err := getCandidates(r.Context(), h.db, el.ID)
	if err != nil {
		slog.Error("failed to load candidates", "election_id", el.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c.ID] = true
	}

	ballot := election.Ballot{VoterName: voterName, Ranking: req.Ranking, Approved: req.Approved}
	if err := election.ValidateBallot(known, ballot); err != nil {
		h.metrics.Rejected(metrics.ReasonInvalid)
		var verr *election.ValidationError
		if errors.As(err, &verr) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid candidate id: "+verr.CandidateID)
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Get IP hash for tracking
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt) // Reuse admin salt for IP hashing

	ballotID := uuid.NewString()
	err = insertBallot(r.Context(), h.db, models.Ballot{
		ID:          ballotID,
		ElectionID:  el.ID,
		VoterName:   voterName,
		Ranking:     req.Ranking,
		Approved:    req.Approved,
		SubmittedAt: time.Now().UTC(),
		IPHash:      &ipHash,
	})
	if errors.Is(err, errElectionNotOpen) {
		// Closed after the status check above
		h.metrics.Rejected(metrics.ReasonClosed)
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open for voting")
		return
	}
	if err != nil {
		slog.Error("failed to insert ballot", "election_id", el.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ballot")
		return
	}

	h.metrics.BallotsAccepted.Inc()
	slog.Info("ballot submitted", "election_id", el.ID, "ballot_id", ballotID)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitBallotResponse{
		BallotID: ballotID,
		Message:  "Ballot submitted successfully",
	})
}
