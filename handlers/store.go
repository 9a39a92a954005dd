// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/rank-approve/election"
	"github.com/danielhkuo/rank-approve/models"
)

const electionColumns = `id, title, status, share_slug, closed_at, created_at`

var errElectionNotOpen = errors.New("election is not open")

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// getElectionByID returns sql.ErrNoRows when no election has the id
func getElectionByID(ctx context.Context, db *sql.DB, id string) (models.Election, error) {
	row := db.QueryRowContext(ctx, `SELECT `+electionColumns+` FROM election WHERE id = $1`, id)
	return scanElection(row)
}

// getElectionBySlug returns sql.ErrNoRows when no election has the slug
func getElectionBySlug(ctx context.Context, db *sql.DB, slug string) (models.Election, error) {
	row := db.QueryRowContext(ctx, `SELECT `+electionColumns+` FROM election WHERE share_slug = $1`, slug)
	return scanElection(row)
}

func scanElection(row *sql.Row) (models.Election, error) {
	var el models.Election
	var closedAt sql.NullTime
	err := row.Scan(&el.ID, &el.Title, &el.Status, &el.ShareSlug, &closedAt, &el.CreatedAt)
	if err != nil {
		return models.Election{}, err
	}
	if closedAt.Valid {
		el.ClosedAt = &closedAt.Time
	}
	return el, nil
}

func getCandidates(ctx context.Context, db querier, electionID string) ([]models.Candidate, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, election_id, name, display_order
		FROM candidate
		WHERE election_id = $1
		ORDER BY display_order
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Position); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func getBallotCount(ctx context.Context, db *sql.DB, electionID string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ballot WHERE election_id = $1`, electionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ballots: %w", err)
	}
	return count, nil
}

func getBallots(ctx context.Context, db querier, electionID string) ([]models.Ballot, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, election_id, voter_name, ranking, approved, submitted_at
		FROM ballot
		WHERE election_id = $1
		ORDER BY submitted_at, id
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballots: %w", err)
	}
	defer rows.Close()

	ballots := []models.Ballot{}
	for rows.Next() {
		var b models.Ballot
		var ranking, approved string
		if err := rows.Scan(&b.ID, &b.ElectionID, &b.VoterName, &ranking, &approved, &b.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		if err := json.Unmarshal([]byte(ranking), &b.Ranking); err != nil {
			return nil, fmt.Errorf("failed to decode ranking of ballot %s: %w", b.ID, err)
		}
		if err := json.Unmarshal([]byte(approved), &b.Approved); err != nil {
			return nil, fmt.Errorf("failed to decode approvals of ballot %s: %w", b.ID, err)
		}
		ballots = append(ballots, b)
	}
	return ballots, rows.Err()
}

// loadTallyInput assembles the read-only snapshot the election package tallies.
func loadTallyInput(ctx context.Context, db querier, el models.Election) (election.Election, []models.Candidate, error) {
	candidates, err := getCandidates(ctx, db, el.ID)
	if err != nil {
		return election.Election{}, nil, err
	}
	ballots, err := getBallots(ctx, db, el.ID)
	if err != nil {
		return election.Election{}, nil, err
	}

	snapshot := election.Election{
		Title:      el.Title,
		Candidates: make([]election.Candidate, len(candidates)),
		Votes:      make([]election.Ballot, len(ballots)),
		CreatedAt:  el.CreatedAt,
	}
	for i, c := range candidates {
		snapshot.Candidates[i] = election.Candidate{ID: c.ID, Name: c.Name}
	}
	for i, b := range ballots {
		snapshot.Votes[i] = election.Ballot{
			VoterName: b.VoterName,
			Ranking:   b.Ranking,
			Approved:  b.Approved,
			Timestamp: b.SubmittedAt,
		}
	}
	return snapshot, candidates, nil
}

// insertBallot appends b to its election unless the election has been closed.
// The no-op status update takes the election row lock for the rest of the
// transaction, so a concurrent close either tallies this ballot or makes the
// insert fail with errElectionNotOpen.
func insertBallot(ctx context.Context, db *sql.DB, b models.Ballot) error {
	ranking, err := encodeIDs(b.Ranking)
	if err != nil {
		return fmt.Errorf("failed to encode ranking: %w", err)
	}
	approved, err := encodeIDs(b.Approved)
	if err != nil {
		return fmt.Errorf("failed to encode approvals: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE election SET status = status
		WHERE id = $1 AND status = $2
	`, b.ElectionID, models.StatusOpen)
	if err != nil {
		return fmt.Errorf("failed to lock election: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to lock election: %w", err)
	}
	if n == 0 {
		return errElectionNotOpen
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ballot (id, election_id, voter_name, ranking, approved, submitted_at, ip_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, b.ID, b.ElectionID, b.VoterName, ranking, approved, b.SubmittedAt, b.IPHash)
	if err != nil {
		return fmt.Errorf("failed to insert ballot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ballot: %w", err)
	}
	return nil
}

// encodeIDs stores a nil list as an empty JSON array
func encodeIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
