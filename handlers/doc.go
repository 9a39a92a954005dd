// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Rank & Approve API.

# Handler Types

Each handler is a struct with database, config and metrics dependencies:

  - ElectionHandler: Election lifecycle (create, admin view, close)
  - BallotHandler: Ballot submission
  - ResultsHandler: Election info, ballot count and live results

Handlers are created via constructor functions:

	electionHandler := handlers.NewElectionHandler(db, cfg, publisher, m)
	ballotHandler := handlers.NewBallotHandler(db, cfg, m)
	resultsHandler := handlers.NewResultsHandler(db, cfg, m)

# Election Lifecycle

Elections open as soon as they are created and can be closed once:

	POST /elections             → CreateElection (returns admin_key, share_slug)
	GET  /elections/{id}/admin  → GetElectionAdmin
	POST /elections/{id}/close  → CloseElection (publishes election.closed)

Admin operations require the X-Admin-Key header. Candidates are fixed at
creation time.

# Voting Flow

Voters use the share slug. Every submission is a new ballot:

	POST /elections/{slug}/ballots → SubmitBallot

A ballot ranks any subset of the candidate ids and approves any subset.
Ids that do not belong to the election are rejected with 400.

# Results

	GET /elections/{slug}              → GetElection
	GET /elections/{slug}/ballot-count → GetBallotCount
	GET /elections/{slug}/results      → GetResults

Results are never stored. Each request loads the ballots and runs
election.Tally, so they are always consistent with the ballot table.
*/
package handlers
