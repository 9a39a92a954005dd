// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"math"
	"sort"
)

// Composite score weights. These are policy, not derived from the tally.
const (
	VictoryWeight  = 0.4
	MarginWeight   = 0.3
	ApprovalWeight = 0.3
)

// ScoreTolerance is the largest difference between two composite scores
// that still counts as a tie.
const ScoreTolerance = 1e-9

var ErrInvalidWeights = errors.New("weights must be finite, non-negative and not all zero")

type Weights struct {
	Victory  float64 `json:"victory_weight"`
	Margin   float64 `json:"margin_weight"`
	Approval float64 `json:"approval_weight"`
}

func DefaultWeights() Weights {
	return Weights{Victory: VictoryWeight, Margin: MarginWeight, Approval: ApprovalWeight}
}

func (w Weights) Validate() error {
	for _, x := range []float64{w.Victory, w.Margin, w.Approval} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ErrInvalidWeights
		}
	}
	if w.Victory < 0 || w.Margin < 0 || w.Approval < 0 {
		return ErrInvalidWeights
	}
	if w.Victory == 0 && w.Margin == 0 && w.Approval == 0 {
		return ErrInvalidWeights
	}
	return nil
}

// Rank orders the Smith set using the default weights.
// Callers must not invoke it for an election without ballots.
func Rank(smithSet []string, victories []Victory, e Election) []CandidateScore {
	return DefaultWeights().Rank(smithSet, victories, e)
}

// Rank scores every Smith-set member and returns them best first. Members
// whose scores lie within ScoreTolerance share a rank, are flagged IsTied
// and are listed by name; the next group resumes at rank + group size.
func (w Weights) Rank(smithSet []string, victories []Victory, e Election) []CandidateScore {
	scores := make([]CandidateScore, 0, len(smithSet))
	if len(smithSet) == 0 {
		return scores
	}

	ids := make(map[string]string, len(e.Candidates))
	for _, c := range e.Candidates {
		ids[c.Name] = c.ID
	}
	approvals := approvalCounts(e)

	for _, name := range smithSet {
		s := CandidateScore{ID: ids[name], Name: name}

		marginSum, touched := 0, 0
		for _, v := range victories {
			switch name {
			case v.Winner:
				s.Wins++
				marginSum += v.Margin
				touched++
			case v.Loser:
				s.Losses++
				marginSum -= v.Margin
				touched++
			}
		}
		s.NetVictories = s.Wins - s.Losses
		if touched > 0 {
			s.AvgMargin = float64(marginSum) / float64(touched)
		}
		s.ApprovalScore = approvals[s.ID]
		s.CompositeScore = w.Victory*float64(s.NetVictories) +
			w.Margin*s.AvgMargin +
			w.Approval*float64(s.ApprovalScore)

		scores = append(scores, s)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].CompositeScore > scores[j].CompositeScore
	})

	for start := 0; start < len(scores); {
		end := start + 1
		for end < len(scores) && math.Abs(scores[start].CompositeScore-scores[end].CompositeScore) <= ScoreTolerance {
			end++
		}

		group := scores[start:end]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Name < group[j].Name })
		for i := range group {
			group[i].Rank = start + 1
			group[i].IsTied = len(group) > 1
		}
		start = end
	}

	return scores
}

// approvalCounts counts, per candidate id, the ballots approving it.
// A ballot listing an id twice still counts once.
func approvalCounts(e Election) map[string]int {
	counts := make(map[string]int, len(e.Candidates))
	for _, b := range e.Votes {
		seen := make(map[string]bool, len(b.Approved))
		for _, id := range b.Approved {
			if !seen[id] {
				seen[id] = true
				counts[id]++
			}
		}
	}
	return counts
}
