// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const TypeElectionClosed = "election.closed"

// ElectionClosed is emitted once an admin closes an election.
type ElectionClosed struct {
	Type        string    `json:"type"`
	ElectionID  string    `json:"election_id"`
	Title       string    `json:"title"`
	ShareSlug   string    `json:"share_slug"`
	BallotCount int       `json:"ballot_count"`
	SmithSet    []string  `json:"smith_set"`
	Winner      *string   `json:"winner,omitempty"`
	ClosedAt    time.Time `json:"closed_at"`
}

// Publisher delivers election events to downstream consumers.
type Publisher interface {
	PublishElectionClosed(ctx context.Context, ev ElectionClosed) error
	Close() error
}

// encode returns the message key and value for ev.
func encode(ev ElectionClosed) ([]byte, []byte, error) {
	if ev.ElectionID == "" {
		return nil, nil, fmt.Errorf("event has no election id")
	}
	ev.Type = TypeElectionClosed
	if ev.SmithSet == nil {
		ev.SmithSet = []string{}
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return []byte(ev.ElectionID), value, nil
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishElectionClosed(context.Context, ElectionClosed) error { return nil }

func (NopPublisher) Close() error { return nil }
