// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"math"
	"sort"
)

// ApprovalShares returns the percentage of ballots approving each candidate,
// rounded to one decimal. Every share is 0 when no ballots were cast.
func ApprovalShares(e Election) []SupportScore {
	counts := approvalCounts(e)

	shares := make([]SupportScore, len(e.Candidates))
	for i, c := range e.Candidates {
		shares[i] = SupportScore{Name: c.Name}
		if len(e.Votes) > 0 {
			shares[i].Value = round1(float64(counts[c.ID]) / float64(len(e.Votes)) * 100)
		}
	}
	sortSupport(shares)
	return shares
}

// BordaScores returns each candidate's average Borda points, rounded to one
// decimal. A ranked candidate earns n-1-position points; an unranked one
// earns nothing.
func BordaScores(e Election) []SupportScore {
	n := len(e.Candidates)
	totals := make(map[string]int, n)
	for _, b := range e.Votes {
		for id, pos := range rankPositions(b.Ranking) {
			if points := n - 1 - pos; points > 0 {
				totals[id] += points
			}
		}
	}

	scores := make([]SupportScore, n)
	for i, c := range e.Candidates {
		scores[i] = SupportScore{Name: c.Name}
		if len(e.Votes) > 0 {
			scores[i].Value = round1(float64(totals[c.ID]) / float64(len(e.Votes)))
		}
	}
	sortSupport(scores)
	return scores
}

func sortSupport(s []SupportScore) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Value != s[j].Value {
			return s[i].Value > s[j].Value
		}
		return s[i].Name < s[j].Name
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
