// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

// Pairwise counts, for every unordered pair of candidates, the ballots that
// prefer each side. Pairs follow candidate-list order (i < j).
func Pairwise(e Election) []PairwiseResult {
	positions := make([]map[string]int, len(e.Votes))
	for i, b := range e.Votes {
		positions[i] = rankPositions(b.Ranking)
	}

	n := len(e.Candidates)
	results := make([]PairwiseResult, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c1, c2 := e.Candidates[i], e.Candidates[j]
			result := PairwiseResult{Candidate1: c1.Name, Candidate2: c2.Name}

			for _, pos := range positions {
				pos1, ranked1 := pos[c1.ID]
				pos2, ranked2 := pos[c2.ID]

				switch {
				case !ranked1 && !ranked2:
					// abstains on this pair
				case !ranked2, ranked1 && pos1 < pos2:
					result.Candidate1Votes++
				default:
					result.Candidate2Votes++
				}
			}

			results = append(results, result)
		}
	}
	return results
}

// rankPositions maps each candidate id to its first index in the ranking.
func rankPositions(ranking []string) map[string]int {
	pos := make(map[string]int, len(ranking))
	for i, id := range ranking {
		if _, seen := pos[id]; !seen {
			pos[id] = i
		}
	}
	return pos
}
