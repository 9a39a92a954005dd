// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Rank & Approve API.

# Route Registration

NewRouter creates a chi router with all endpoints:

	reg := prometheus.NewRegistry()
	handler := router.NewRouter(db, cfg, publisher, reg)

Every request passes through chi's RequestID, RealIP and Recoverer
middleware plus middleware.WithLogging and middleware.CORS.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Election management (admin, requires X-Admin-Key):

	POST /elections              - Create election
	GET  /elections/{id}/admin   - Get election details
	POST /elections/{id}/close   - Stop accepting ballots

Voting and results (public, uses share slug):

	GET  /elections/{slug}              - Election info and candidates
	POST /elections/{slug}/ballots      - Submit ballot
	GET  /elections/{slug}/ballot-count - Vote count
	GET  /elections/{slug}/results      - Live Smith-set results

# Handler Initialization

The router creates handler instances with dependency injection:

	electionHandler := handlers.NewElectionHandler(db, cfg, publisher, m)
	ballotHandler := handlers.NewBallotHandler(db, cfg, m)
	resultsHandler := handlers.NewResultsHandler(db, cfg, m)

All handlers share one metrics.TallyMetrics registered on reg.
*/
package router
