// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Backends

Two backends are supported, selected by DATABASE_TYPE:

  - sqlite (default): modernc.org/sqlite, DATABASE_URL is a file path or DSN
  - postgres: github.com/lib/pq, DATABASE_URL is a connection string

Open returns the connection together with its dialect:

	conn, dialect, err := db.Open(cfg)

Dialect hides the placeholder style ($1 vs ?) and the JSON field
extraction syntax from the document store.

# Schema Creation

CreateSchema initializes the single documents table:

	if err := db.CreateSchema(conn, dialect); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

	documents (collection, id) PRIMARY KEY
	    body        JSON document (JSONB on Postgres, TEXT on SQLite)
	    created_at  unix milliseconds
	    updated_at  unix milliseconds

Collections used by the application:

  - meeting_config: the singleton current meeting (id "current")
  - ballots: one ballot per (meeting, identity), deterministic id
  - attendance: one record per (meeting, identity), deterministic id
  - meeting_results: archived results keyed by meeting id
  - members, notices, teams
*/
package db
