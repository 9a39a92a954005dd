// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "sort"

// Victories turns pairwise results into strict defeat edges. A tied pair
// contributes nothing. Output is sorted by winner, then loser.
func Victories(results []PairwiseResult) []Victory {
	type edge struct{ winner, loser string }
	seen := make(map[edge]bool)

	victories := []Victory{}
	for _, r := range results {
		if r.Candidate1 == r.Candidate2 {
			continue
		}

		var v Victory
		switch {
		case r.Candidate1Votes > r.Candidate2Votes:
			v = Victory{Winner: r.Candidate1, Loser: r.Candidate2, Margin: r.Candidate1Votes - r.Candidate2Votes}
		case r.Candidate2Votes > r.Candidate1Votes:
			v = Victory{Winner: r.Candidate2, Loser: r.Candidate1, Margin: r.Candidate2Votes - r.Candidate1Votes}
		default:
			continue
		}

		key := edge{v.Winner, v.Loser}
		if seen[key] {
			continue
		}
		seen[key] = true
		victories = append(victories, v)
	}

	sort.Slice(victories, func(i, j int) bool {
		if victories[i].Winner != victories[j].Winner {
			return victories[i].Winner < victories[j].Winner
		}
		return victories[i].Loser < victories[j].Loser
	})
	return victories
}
