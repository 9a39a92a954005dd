// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and stored types for the API.

# Request Types

  - CreateElectionRequest: title, candidates (names, display order)
  - SubmitBallotRequest: voter_name, ranking, approved

# Response Types

  - CreateElectionResponse: election_id, admin_key, share_slug, share_url, candidates
  - SubmitBallotResponse: ballot_id, message
  - CloseElectionResponse: closed_at, ballot_count, winner
  - BallotCountResponse: ballot_count
  - ResultsResponse: election, method, no_votes, weights and the tally result
  - ErrorResponse: error, message

# Stored Types

  - Election: metadata and lifecycle state
  - Candidate: immutable candidate with display position
  - Ballot: append-only ballot with ranking and approvals

# Constants

Status values:

	StatusOpen   = "open"
	StatusClosed = "closed"

Tally method:

	MethodSmithComposite = "smith-composite"
*/
package models
