// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Rank & Approve API server.

Rank & Approve runs elections where each voter ranks any subset of the
candidates and approves any subset. Results are ordered by the Smith set
of the pairwise defeat graph, with a composite score breaking ties inside it.

# Starting the Server

The server reads a .env file if present, then environment variables or CLI
flags:

	DATABASE_URL=file:rank.db ADMIN_KEY_SALT=... ELECTION_SLUG_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC
  - ELECTION_SLUG_SALT (-slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - BASE_URL (-base-url): Prefix for share links
  - KAFKA_BROKERS, KAFKA_TOPIC: Publish election.closed events
  - VICTORY_WEIGHT, MARGIN_WEIGHT, APPROVAL_WEIGHT: Ranking weights

Logs are text on a terminal and JSON otherwise.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - election: Pairwise tally, victory graph, Smith set and ranking
  - handlers: HTTP request handlers (elections, ballots, results)
  - router: chi route definitions and /metrics
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin keys, share slugs, IP hashing
  - db: Driver selection and schema creation
  - events: Kafka publisher for election events
  - metrics: Prometheus collectors
  - cliparse: Configuration parsing

The tally command in cmd/tally runs the same pipeline over a JSON file.

See package documentation for each component.
*/
package main
