package models

import (
	"time"

	"github.com/danielhkuo/rank-approve/election"
)

// Election status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Tally method constants
const (
	MethodSmithComposite = "smith-composite"
)

// Request types

type CreateElectionRequest struct {
	Title      string   `json:"title"`
	Candidates []string `json:"candidates"`
}

type SubmitBallotRequest struct {
	VoterName string   `json:"voter_name"`
	Ranking   []string `json:"ranking"`  // candidate ids, most preferred first
	Approved  []string `json:"approved"` // candidate ids
}

// Response types

type CreateElectionResponse struct {
	ElectionID string      `json:"election_id"`
	AdminKey   string      `json:"admin_key"`
	ShareSlug  string      `json:"share_slug"`
	ShareURL   string      `json:"share_url"`
	Candidates []Candidate `json:"candidates"`
}

type SubmitBallotResponse struct {
	BallotID string `json:"ballot_id"`
	Message  string `json:"message"`
}

type CloseElectionResponse struct {
	ClosedAt    time.Time `json:"closed_at"`
	BallotCount int       `json:"ballot_count"`
	Winner      *string   `json:"winner,omitempty"`
}

type BallotCountResponse struct {
	BallotCount int `json:"ballot_count"`
}

// ResultsResponse is recomputed from the stored ballots on every request.
type ResultsResponse struct {
	Election Election         `json:"election"`
	Method   string           `json:"method"`
	NoVotes  bool             `json:"no_votes"`
	Weights  election.Weights `json:"weights"`
	election.Result
}

// Domain types

type Election struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	ShareSlug string     `json:"share_slug"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type Candidate struct {
	ID         string `json:"id"`
	ElectionID string `json:"election_id"`
	Name       string `json:"name"`
	Position   int    `json:"position"`
}

type ElectionWithCandidates struct {
	Election    Election    `json:"election"`
	Candidates  []Candidate `json:"candidates"`
	BallotCount int         `json:"ballot_count"`
}

type Ballot struct {
	ID          string    `json:"id"`
	ElectionID  string    `json:"election_id"`
	VoterName   string    `json:"voter_name"`
	Ranking     []string  `json:"ranking"`
	Approved    []string  `json:"approved"`
	SubmittedAt time.Time `json:"submitted_at"`
	IPHash      *string   `json:"-"` // Never expose in JSON
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
