// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "fmt"

// Result bundles every stage of one tally.
type Result struct {
	BallotCount int              `json:"ballot_count"`
	Pairwise    []PairwiseResult `json:"pairwise"`
	Victories   []Victory        `json:"victories"`
	SmithSet    []string         `json:"smith_set"`
	Rankings    []CandidateScore `json:"rankings"`
	Approval    []SupportScore   `json:"approval"`
	Borda       []SupportScore   `json:"borda"`
}

// HasVotes reports whether any ballot was cast. Rankings are empty otherwise.
func (r Result) HasVotes() bool {
	return r.BallotCount > 0
}

// Winner returns the top-ranked candidate. ok is false when nothing was ranked.
func (r Result) Winner() (CandidateScore, bool) {
	if len(r.Rankings) == 0 {
		return CandidateScore{}, false
	}
	return r.Rankings[0], true
}

// Tally validates e and runs the full pipeline. The ranker is skipped when
// no ballots were cast.
func Tally(e Election, w Weights) (Result, error) {
	if err := w.Validate(); err != nil {
		return Result{}, err
	}
	if err := Validate(e); err != nil {
		return Result{}, fmt.Errorf("failed to validate election: %w", err)
	}

	res := Result{
		BallotCount: len(e.Votes),
		Pairwise:    Pairwise(e),
		Rankings:    []CandidateScore{},
		Approval:    ApprovalShares(e),
		Borda:       BordaScores(e),
	}
	res.Victories = Victories(res.Pairwise)
	res.SmithSet = SmithSet(res.Victories, e.CandidateNames()...)

	if res.HasVotes() {
		res.Rankings = w.Rank(res.SmithSet, res.Victories, e)
	}
	return res, nil
}
