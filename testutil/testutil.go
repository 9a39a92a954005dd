// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/rank-approve/auth"
	"github.com/danielhkuo/rank-approve/cliparse"
	"github.com/danielhkuo/rank-approve/db"
	"github.com/danielhkuo/rank-approve/election"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SetupTestDB creates a fresh SQLite database with the full schema in a
// temporary directory. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.TypeSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      ":memory:",
		DatabaseType:     db.TypeSQLite,
		AdminKeySalt:     "test-admin-salt",
		ElectionSlugSalt: "test-slug-salt",
		BaseURL:          "http://vote.test",
		KafkaTopic:       "election-events",
		Weights:          election.DefaultWeights(),
	}
}

// TestElection is an election inserted directly into the database
type TestElection struct {
	ID         string
	AdminKey   string
	ShareSlug  string
	Candidates map[string]string // name -> candidate id
}

// CreateTestElection creates an election with the given candidates in order.
// status should be "open" or "closed"
func CreateTestElection(t *testing.T, conn *sql.DB, cfg cliparse.Config, status string, names ...string) TestElection {
	t.Helper()

	el := TestElection{
		ID:         uuid.NewString(),
		Candidates: make(map[string]string, len(names)),
	}
	el.AdminKey = auth.GenerateAdminKey(el.ID, cfg.AdminKeySalt)
	el.ShareSlug = auth.GenerateShareSlug(el.ID, cfg.ElectionSlugSalt)

	var closedAt *time.Time
	if status == "closed" {
		now := time.Now().UTC()
		closedAt = &now
	}

	_, err := conn.Exec(`
		INSERT INTO election (id, title, status, share_slug, closed_at, created_at)
		VALUES ($1, 'Test Election', $2, $3, $4, $5)
	`, el.ID, status, el.ShareSlug, closedAt, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	for i, name := range names {
		id := uuid.NewString()
		_, err := conn.Exec(`
			INSERT INTO candidate (id, election_id, name, display_order)
			VALUES ($1, $2, $3, $4)
		`, id, el.ID, name, i)
		if err != nil {
			t.Fatalf("Failed to create test candidate: %v", err)
		}
		el.Candidates[name] = id
	}

	return el
}

// IDs maps candidate names to their ids
func (el TestElection) IDs(names ...string) []string {
	ids := make([]string, len(names))
	for i, name := range names {
		ids[i] = el.Candidates[name]
	}
	return ids
}

// SubmitTestBallot stores a ballot directly, bypassing validation
func SubmitTestBallot(t *testing.T, conn *sql.DB, electionID, voterName string, ranking, approved []string) string {
	t.Helper()

	if ranking == nil {
		ranking = []string{}
	}
	if approved == nil {
		approved = []string{}
	}
	rankingJSON, _ := json.Marshal(ranking)
	approvedJSON, _ := json.Marshal(approved)

	ballotID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO ballot (id, election_id, voter_name, ranking, approved, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, ballotID, electionID, voterName, string(rankingJSON), string(approvedJSON), time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	return ballotID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// WithURLParams attaches chi route parameters so handlers can be called
// without going through a router
func WithURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
