// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "time"

type Candidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Ballot is one voter's submission. Ranking lists candidate ids, most
// preferred first, and may leave candidates out.
type Ballot struct {
	VoterName string    `json:"voter_name"`
	Ranking   []string  `json:"ranking"`
	Approved  []string  `json:"approved"`
	Timestamp time.Time `json:"timestamp"`
}

// Election is the read-only input to every tally function.
// Candidate order is display order only.
type Election struct {
	Title      string      `json:"title"`
	Candidates []Candidate `json:"candidates"`
	Votes      []Ballot    `json:"votes"`
	CreatedAt  time.Time   `json:"created_at"`
}

// CandidateNames returns the candidate names in display order.
func (e Election) CandidateNames() []string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.Name
	}
	return names
}

type PairwiseResult struct {
	Candidate1      string `json:"candidate1"`
	Candidate2      string `json:"candidate2"`
	Candidate1Votes int    `json:"candidate1_votes"`
	Candidate2Votes int    `json:"candidate2_votes"`
}

// Victory is a strict pairwise defeat. Margin is always at least 1.
type Victory struct {
	Winner string `json:"winner"`
	Loser  string `json:"loser"`
	Margin int    `json:"margin"`
}

type CandidateScore struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	NetVictories   int     `json:"net_victories"`
	AvgMargin      float64 `json:"avg_margin"`
	ApprovalScore  int     `json:"approval_score"`
	CompositeScore float64 `json:"composite_score"`
	Rank           int     `json:"rank"` // 1-indexed, repeats for ties
	IsTied         bool    `json:"is_tied"`
}

// SupportScore is a single per-candidate figure used by the summaries.
type SupportScore struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
