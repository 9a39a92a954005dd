// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

Open accepts "sqlite" (modernc.org/sqlite, pure Go) or "postgres" (lib/pq):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - election: title, lifecycle state and share slug
  - candidate: candidates in display order
  - ballot: append-only ballots; ranking and approved are JSON arrays

No tally output is stored. Results are recomputed from the ballots on every
request.

# Relationships

	election 1──* candidate
	election 1──* ballot

All foreign keys use ON DELETE CASCADE.
*/
package db
