// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminKeySalt: Secret for admin key HMAC (required)
  - ElectionSlugSalt: Secret for share slug generation (required)
  - BaseURL: Prefix for share links (default: http://localhost:<port>)
  - KafkaBrokers, KafkaTopic: Event publishing; empty brokers disables it
  - Weights: Composite score weights for the Smith-set ranker

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-admin-salt     Admin key salt
	-slug-salt      Election slug salt
	-base-url       Public base URL
	-kafka-brokers  Comma separated broker list
	-kafka-topic    Event topic (default: election-events)

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	ADMIN_KEY_SALT     → -admin-salt
	ELECTION_SLUG_SALT → -slug-salt
	BASE_URL           → -base-url
	KAFKA_BROKERS      → -kafka-brokers
	KAFKA_TOPIC        → -kafka-topic

Ranking weights are environment only:

	VICTORY_WEIGHT   (default 0.4)
	MARGIN_WEIGHT    (default 0.3)
	APPROVAL_WEIGHT  (default 0.3)

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL, ADMIN_KEY_SALT and ELECTION_SLUG_SALT must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - weights must parse as numbers, be non-negative and not all zero
*/
package cliparse
