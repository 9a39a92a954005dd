// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCandidate     = errors.New("candidate id and name are required")
	ErrDuplicateCandidate = errors.New("duplicate candidate id")
	ErrDuplicateName      = errors.New("duplicate candidate name")
	ErrUnknownCandidate   = errors.New("unknown candidate id")
)

// ValidationError describes malformed election input. Ballot is the index of
// the offending ballot, or -1 when the candidate list itself is at fault.
type ValidationError struct {
	Ballot      int
	CandidateID string
	Err         error
}

func (e *ValidationError) Error() string {
	if e.Ballot < 0 {
		return fmt.Sprintf("invalid candidate list: %v: %q", e.Err, e.CandidateID)
	}
	return fmt.Sprintf("invalid ballot %d: %v: %q", e.Ballot, e.Err, e.CandidateID)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the election before any tally runs. It returns the first
// problem found as a *ValidationError, or nil.
func Validate(e Election) error {
	ids := make(map[string]bool, len(e.Candidates))
	names := make(map[string]bool, len(e.Candidates))
	for _, c := range e.Candidates {
		if c.ID == "" || c.Name == "" {
			return &ValidationError{Ballot: -1, CandidateID: c.ID, Err: ErrEmptyCandidate}
		}
		if ids[c.ID] {
			return &ValidationError{Ballot: -1, CandidateID: c.ID, Err: ErrDuplicateCandidate}
		}
		if names[c.Name] {
			return &ValidationError{Ballot: -1, CandidateID: c.ID, Err: ErrDuplicateName}
		}
		ids[c.ID] = true
		names[c.Name] = true
	}

	for i, b := range e.Votes {
		if err := ValidateBallot(ids, b); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				verr.Ballot = i
			}
			return err
		}
	}
	return nil
}

// ValidateBallot checks a single ballot against a set of known candidate ids.
// The returned error has Ballot set to 0; Validate overwrites it.
func ValidateBallot(known map[string]bool, b Ballot) error {
	for _, id := range b.Ranking {
		if !known[id] {
			return &ValidationError{CandidateID: id, Err: ErrUnknownCandidate}
		}
	}
	for _, id := range b.Approved {
		if !known[id] {
			return &ValidationError{CandidateID: id, Err: ErrUnknownCandidate}
		}
	}
	return nil
}

// CandidateIDs returns the set of candidate ids, for use with ValidateBallot.
func (e Election) CandidateIDs() map[string]bool {
	ids := make(map[string]bool, len(e.Candidates))
	for _, c := range e.Candidates {
		ids[c.ID] = true
	}
	return ids
}
