// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		election   Election
		wantErr    error
		wantBallot int
		wantID     string
	}{
		{
			name:     "valid election",
			election: newElection(abc("A", "B"), ballots("A>B", 2, "A")),
		},
		{
			name:     "no ballots is valid",
			election: newElection(abc("A", "B")),
		},
		{
			name:       "duplicate candidate id",
			election:   newElection([]Candidate{{ID: "1", Name: "A"}, {ID: "1", Name: "B"}}),
			wantErr:    ErrDuplicateCandidate,
			wantBallot: -1,
			wantID:     "1",
		},
		{
			name:       "duplicate candidate name",
			election:   newElection([]Candidate{{ID: "1", Name: "A"}, {ID: "2", Name: "A"}}),
			wantErr:    ErrDuplicateName,
			wantBallot: -1,
			wantID:     "2",
		},
		{
			name:       "empty candidate id",
			election:   newElection([]Candidate{{ID: "", Name: "A"}}),
			wantErr:    ErrEmptyCandidate,
			wantBallot: -1,
		},
		{
			name:       "unknown id in ranking",
			election:   newElection(abc("A", "B"), ballots("A>B", 1), ballots("A>Z", 1)),
			wantErr:    ErrUnknownCandidate,
			wantBallot: 1,
			wantID:     "Z",
		},
		{
			name:       "unknown id in approvals",
			election:   newElection(abc("A", "B"), ballots("A", 1, "Q")),
			wantErr:    ErrUnknownCandidate,
			wantBallot: 0,
			wantID:     "Q",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.election)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantBallot, verr.Ballot)
			assert.Equal(t, tt.wantID, verr.CandidateID)
			assert.NotEmpty(t, verr.Error())
		})
	}
}

func TestValidateBallot(t *testing.T) {
	known := newElection(abc("A", "B")).CandidateIDs()

	assert.NoError(t, ValidateBallot(known, Ballot{Ranking: []string{"B"}, Approved: []string{"A"}}))
	assert.NoError(t, ValidateBallot(known, Ballot{}))
	assert.ErrorIs(t, ValidateBallot(known, Ballot{Ranking: []string{"C"}}), ErrUnknownCandidate)
}
