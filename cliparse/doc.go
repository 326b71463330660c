// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Environment variables are read first (with defaults), then CLI flags
override them. main loads a .env file before calling ParseFlags.

# Settings

	PORT             -p               Server port (default: 3318)
	DATABASE_URL     -d               Database URL or SQLite file (required)
	DATABASE_TYPE    -t               sqlite or postgres (default: sqlite)
	SESSION_SECRET   -session-secret  Signing key for session tokens (required)
	ADMIN_MOBILE     -admin-mobile    Bootstrap admin login
	ADMIN_PASSWORD   -admin-password  Bootstrap admin password
	ADMIN_NAME       -admin-name      Bootstrap admin display name
	RATE_LIMIT_RPS   -rate-rps        Per-client submission rate (default: 5)
	RATE_LIMIT_BURST -rate-burst      Per-client submission burst (default: 10)
	TRUST_PROXY      -trust-proxy     Read client IPs from X-Forwarded-For / X-Real-IP

# Validation

ParseFlags returns an error if DATABASE_URL or SESSION_SECRET is missing,
if the database type is unknown, or if a numeric value is out of range.
*/
package cliparse
