// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/rank-approve/auth"
	"github.com/danielhkuo/rank-approve/cliparse"
	"github.com/danielhkuo/rank-approve/election"
	"github.com/danielhkuo/rank-approve/events"
	"github.com/danielhkuo/rank-approve/metrics"
	"github.com/danielhkuo/rank-approve/middleware"
	"github.com/danielhkuo/rank-approve/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	maxTitleLength     = 200
	maxCandidateLength = 100
	maxCandidates      = 50
)

type ElectionHandler struct {
	db        *sql.DB
	cfg       cliparse.Config
	publisher events.Publisher
	metrics   *metrics.TallyMetrics
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config, publisher events.Publisher, m *metrics.TallyMetrics) *ElectionHandler {
	return &ElectionHandler{db: db, cfg: cfg, publisher: publisher, metrics: m}
}

// CreateElection handles POST /elections
// The election opens immediately; candidates are fixed from here on.
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	title := strings.TrimSpace(req.Title)
	if title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(title) > maxTitleLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is too long")
		return
	}
	names, msg := cleanCandidateNames(req.Candidates)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	electionID := uuid.NewString()
	adminKey := auth.GenerateAdminKey(electionID, h.cfg.AdminKeySalt)
	shareSlug := auth.GenerateShareSlug(electionID, h.cfg.ElectionSlugSalt)
	now := time.Now().UTC()

	candidates := make([]models.Candidate, len(names))
	for i, name := range names {
		candidates[i] = models.Candidate{
			ID:         uuid.NewString(),
			ElectionID: electionID,
			Name:       name,
			Position:   i,
		}
	}

	if err := h.insertElection(r.Context(), electionID, title, shareSlug, now, candidates); err != nil {
		slog.Error("failed to insert election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	slog.Info("election created", "election_id", electionID, "candidates", len(candidates))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		ElectionID: electionID,
		AdminKey:   adminKey,
		ShareSlug:  shareSlug,
		ShareURL:   h.cfg.BaseURL + "/elections/" + shareSlug,
		Candidates: candidates,
	})
}

func (h *ElectionHandler) insertElection(ctx context.Context, id, title, slug string, createdAt time.Time, candidates []models.Candidate) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO election (id, title, status, share_slug, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, title, models.StatusOpen, slug, createdAt)
	if err != nil {
		return err
	}

	for _, c := range candidates {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO candidate (id, election_id, name, display_order)
			VALUES ($1, $2, $3, $4)
		`, c.ID, c.ElectionID, c.Name, c.Position)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// cleanCandidateNames trims names and returns a client message when the list
// cannot form an election.
func cleanCandidateNames(raw []string) ([]string, string) {
	if len(raw) < 2 {
		return nil, "at least 2 candidates are required"
	}
	if len(raw) > maxCandidates {
		return nil, "too many candidates"
	}

	seen := make(map[string]bool, len(raw))
	names := make([]string, 0, len(raw))
	for _, name := range raw {
		name = strings.TrimSpace(name)
		switch {
		case name == "":
			return nil, "candidate names cannot be empty"
		case len(name) > maxCandidateLength:
			return nil, "candidate name is too long: " + name
		case seen[name]:
			return nil, "duplicate candidate name: " + name
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, ""
}

// authorize checks the admin key and writes the error response itself
func (h *ElectionHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	electionID := chi.URLParam(r, "id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return "", false
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(electionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return "", false
	}
	return electionID, true
}

// GetElectionAdmin handles GET /elections/{id}/admin
func (h *ElectionHandler) GetElectionAdmin(w http.ResponseWriter, r *http.Request) {
	electionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	el, err := getElectionByID(r.Context(), h.db, electionID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
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

// CloseElection handles POST /elections/{id}/close
// Ballots are refused afterwards. The closing tally is published, not stored.
// If the tally cannot be computed the election stays open.
func (h *ElectionHandler) CloseElection(w http.ResponseWriter, r *http.Request) {
	electionID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	el, err := getElectionByID(ctx, h.db, electionID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if el.Status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open")
		return
	}

	// The close only commits once the closing tally has been computed
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	closedAt := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		UPDATE election
		SET status = $1, closed_at = $2
		WHERE id = $3 AND status = $4
	`, models.StatusClosed, closedAt, electionID, models.StatusOpen)
	if err != nil {
		slog.Error("failed to close election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close election")
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Lost a race with another close request
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open")
		return
	}

	snapshot, _, err := loadTallyInput(ctx, tx, el)
	if err != nil {
		slog.Error("failed to load election", "election_id", electionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	started := time.Now()
	result, err := election.Tally(snapshot, h.cfg.Weights)
	if err != nil {
		slog.Error("failed to tally closed election", "election_id", electionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to tally election")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit close", "election_id", electionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close election")
		return
	}

	h.metrics.ObserveTally(started, len(result.SmithSet))
	h.metrics.ElectionsClosed.Inc()

	var winner *string
	if top, ok := result.Winner(); ok && !top.IsTied {
		winner = &top.Name
	}

	ev := events.ElectionClosed{
		ElectionID:  el.ID,
		Title:       el.Title,
		ShareSlug:   el.ShareSlug,
		BallotCount: result.BallotCount,
		SmithSet:    result.SmithSet,
		Winner:      winner,
		ClosedAt:    closedAt,
	}
	if err := h.publisher.PublishElectionClosed(ctx, ev); err != nil {
		// Non-fatal: the election is already closed
		slog.Warn("failed to publish election closed event", "election_id", electionID, "error", err)
	}

	slog.Info("election closed", "election_id", electionID, "ballots", result.BallotCount)

	middleware.JSONResponse(w, http.StatusOK, models.CloseElectionResponse{
		ClosedAt:    closedAt,
		BallotCount: result.BallotCount,
		Winner:      winner,
	})
}
