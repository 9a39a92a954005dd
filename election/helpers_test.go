// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// abc builds candidates whose id and name are both the given letters.
func abc(names ...string) []Candidate {
	out := make([]Candidate, len(names))
	for i, n := range names {
		out[i] = Candidate{ID: n, Name: n}
	}
	return out
}

// ballots repeats a ranking given as "A>B>C" count times.
func ballots(ranking string, count int, approved ...string) []Ballot {
	var ids []string
	if ranking != "" {
		ids = strings.Split(ranking, ">")
	}
	out := make([]Ballot, count)
	for i := range out {
		out[i] = Ballot{
			VoterName: fmt.Sprintf("voter %s #%d", ranking, i+1),
			Ranking:   ids,
			Approved:  approved,
			Timestamp: time.Date(2025, 1, 1, 12, 0, i, 0, time.UTC),
		}
	}
	return out
}

func newElection(candidates []Candidate, groups ...[]Ballot) Election {
	e := Election{
		Title:      "Book Club Vote",
		Candidates: candidates,
		Votes:      []Ballot{},
		CreatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, g := range groups {
		e.Votes = append(e.Votes, g...)
	}
	return e
}

// randomElection builds a valid election with partial rankings and random
// approvals.
func randomElection(rng *rand.Rand) Election {
	n := 1 + rng.IntN(6)
	candidates := make([]Candidate, n)
	for i := range candidates {
		name := string(rune('A' + i))
		candidates[i] = Candidate{ID: "id-" + name, Name: name}
	}

	e := newElection(candidates)
	m := rng.IntN(25)
	for i := 0; i < m; i++ {
		perm := rng.Perm(n)
		cut := rng.IntN(n + 1)
		var b Ballot
		for _, p := range perm[:cut] {
			b.Ranking = append(b.Ranking, candidates[p].ID)
		}
		for _, c := range candidates {
			if rng.IntN(2) == 0 {
				b.Approved = append(b.Approved, c.ID)
			}
		}
		e.Votes = append(e.Votes, b)
	}
	return e
}
