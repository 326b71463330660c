// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Volunteer Portal API server.

The portal runs the committee's meeting poll: members (or anyone giving a
name) pick an agenda, date, time and place, an admin finalizes the winners
into a permanent archive, and members share notices, team rosters, plans
and upcoming meetings.

# Starting the Server

Configuration comes from the environment, an optional .env file, or flags:

	DATABASE_URL=portal.db SESSION_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --session-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - SESSION_SECRET (--session-secret): Signing key for session tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ADMIN_MOBILE, ADMIN_PASSWORD, ADMIN_NAME: Bootstrap admin account
  - RATE_LIMIT_RPS, RATE_LIMIT_BURST: Per-client submission limits
  - TRUST_PROXY: Take client IPs from proxy headers (only behind a proxy)

# Architecture

  - voting: Ballots, attendance, tally and finalization
  - members: Member directory and login
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, sessions, rate limiting, JSON helpers
  - docstore: JSON document collections over SQL
  - db: Connections and schema
  - identity, auth, metrics, models, cliparse: Supporting packages

See package documentation for each component.
*/
package main
