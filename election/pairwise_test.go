// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairwise(t *testing.T) {
	tests := []struct {
		name     string
		election Election
		expected []PairwiseResult
	}{
		{
			name:     "clear winner",
			election: newElection(abc("A", "B", "C"), ballots("A>B>C", 3), ballots("B>C>A", 1)),
			expected: []PairwiseResult{
				{Candidate1: "A", Candidate2: "B", Candidate1Votes: 3, Candidate2Votes: 1},
				{Candidate1: "A", Candidate2: "C", Candidate1Votes: 3, Candidate2Votes: 1},
				{Candidate1: "B", Candidate2: "C", Candidate1Votes: 4, Candidate2Votes: 0},
			},
		},
		{
			name:     "rotating cycle",
			election: newElection(abc("A", "B", "C"), ballots("A>B>C", 2), ballots("B>C>A", 2), ballots("C>A>B", 2)),
			expected: []PairwiseResult{
				{Candidate1: "A", Candidate2: "B", Candidate1Votes: 4, Candidate2Votes: 2},
				{Candidate1: "A", Candidate2: "C", Candidate1Votes: 2, Candidate2Votes: 4},
				{Candidate1: "B", Candidate2: "C", Candidate1Votes: 4, Candidate2Votes: 2},
			},
		},
		{
			name:     "unranked candidate sits below ranked ones",
			election: newElection(abc("A", "B"), ballots("A", 1)),
			expected: []PairwiseResult{
				{Candidate1: "A", Candidate2: "B", Candidate1Votes: 1, Candidate2Votes: 0},
			},
		},
		{
			name:     "unranked first candidate loses",
			election: newElection(abc("A", "B"), ballots("B", 1)),
			expected: []PairwiseResult{
				{Candidate1: "A", Candidate2: "B", Candidate1Votes: 0, Candidate2Votes: 1},
			},
		},
		{
			name:     "ballot ranking neither candidate abstains",
			election: newElection(abc("A", "B", "C"), ballots("C", 2)),
			expected: []PairwiseResult{
				{Candidate1: "A", Candidate2: "B", Candidate1Votes: 0, Candidate2Votes: 0},
				{Candidate1: "A", Candidate2: "C", Candidate1Votes: 0, Candidate2Votes: 2},
				{Candidate1: "B", Candidate2: "C", Candidate1Votes: 0, Candidate2Votes: 2},
			},
		},
		{
			name:     "duplicate id uses first occurrence",
			election: newElection(abc("A", "B"), ballots("B>A>B", 1)),
			expected: []PairwiseResult{
				{Candidate1: "A", Candidate2: "B", Candidate1Votes: 0, Candidate2Votes: 1},
			},
		},
		{
			name:     "single candidate has no pairs",
			election: newElection(abc("A"), ballots("A", 3)),
			expected: []PairwiseResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Pairwise(tt.election))
		})
	}
}

func TestPairwise_UsesNamesButMatchesIDs(t *testing.T) {
	e := newElection([]Candidate{{ID: "1", Name: "Dune"}, {ID: "2", Name: "Emma"}})
	e.Votes = []Ballot{{Ranking: []string{"2", "1"}}}

	results := Pairwise(e)
	require.Len(t, results, 1)
	assert.Equal(t, PairwiseResult{Candidate1: "Dune", Candidate2: "Emma", Candidate1Votes: 0, Candidate2Votes: 1}, results[0])
}

func TestPairwise_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 200; i++ {
		e := randomElection(rng)
		results := Pairwise(e)

		n := len(e.Candidates)
		require.Len(t, results, n*(n-1)/2, "one result per unordered pair")

		seen := make(map[[2]string]bool)
		for _, r := range results {
			key := [2]string{r.Candidate1, r.Candidate2}
			if r.Candidate2 < r.Candidate1 {
				key = [2]string{r.Candidate2, r.Candidate1}
			}
			require.False(t, seen[key], "pair %v repeated", key)
			seen[key] = true

			total := r.Candidate1Votes + r.Candidate2Votes
			require.LessOrEqual(t, total, len(e.Votes))

			abstained := 0
			for _, b := range e.Votes {
				pos := rankPositions(b.Ranking)
				_, ok1 := pos["id-"+r.Candidate1]
				_, ok2 := pos["id-"+r.Candidate2]
				if !ok1 && !ok2 {
					abstained++
				}
			}
			assert.Equal(t, len(e.Votes)-abstained, total, "votes counted for %s vs %s", r.Candidate1, r.Candidate2)
		}
	}
}
