// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApprovalShares(t *testing.T) {
	e := newElection(abc("A", "B", "C"),
		ballots("A>B>C", 2, "A"),
		ballots("B>C>A", 1, "B", "C"),
	)

	assert.Equal(t, []SupportScore{
		{Name: "A", Value: 66.7},
		{Name: "B", Value: 33.3},
		{Name: "C", Value: 33.3},
	}, ApprovalShares(e))
}

func TestApprovalShares_NoVotes(t *testing.T) {
	assert.Equal(t, []SupportScore{
		{Name: "A", Value: 0},
		{Name: "B", Value: 0},
	}, ApprovalShares(newElection(abc("B", "A"))))
}

func TestBordaScores(t *testing.T) {
	e := newElection(abc("A", "B", "C"),
		ballots("A>B>C", 2),
		ballots("C", 1),
	)

	// A: 2+2+0, B: 1+1+0, C: 0+0+2 over three ballots.
	assert.Equal(t, []SupportScore{
		{Name: "A", Value: 1.3},
		{Name: "B", Value: 0.7},
		{Name: "C", Value: 0.7},
	}, BordaScores(e))
}

func TestBordaScores_DuplicateRankingUsesFirstPosition(t *testing.T) {
	e := newElection(abc("A", "B"), ballots("B>A>B", 1))

	assert.Equal(t, []SupportScore{
		{Name: "B", Value: 1},
		{Name: "A", Value: 0},
	}, BordaScores(e))
}
