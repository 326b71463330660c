// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/volunteer-portal/cliparse"
)

// Dialect captures the SQL differences between the supported backends.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Placeholder returns the positional parameter marker for argument n (1-based).
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// JSONText returns an expression extracting a top-level JSON field as text.
// The field name is bound as parameter n.
func (d Dialect) JSONText(column string, n int) string {
	if d == Postgres {
		return column + " ->> " + d.Placeholder(n) + "::text"
	}
	return "json_extract(" + column + ", '$.' || " + d.Placeholder(n) + ")"
}

// Open connects to the configured database and verifies the connection.
func Open(cfg cliparse.Config) (*sql.DB, Dialect, error) {
	dialect := Dialect(cfg.DatabaseType)

	var dsn string
	switch dialect {
	case Postgres:
		dsn = cfg.DatabaseURL
	case SQLite:
		dsn = sqliteDSN(cfg.DatabaseURL)
	default:
		return nil, "", fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	conn, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; serialize access through one connection
	if dialect == SQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, dialect, nil
}

func sqliteDSN(url string) string {
	if strings.Contains(url, "?") {
		return url
	}
	return url + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect Dialect) error {
	bodyType := "TEXT"
	if dialect == Postgres {
		bodyType = "JSONB"
	}

	for _, stmt := range []string{
		fmt.Sprintf(documentsTable, bodyType),
		documentsIndex,
	} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Every collection shares one table. Timestamps are unix milliseconds.
const documentsTable = `
CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    body %s NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    PRIMARY KEY (collection, id)
)`

const documentsIndex = `
CREATE INDEX IF NOT EXISTS idx_documents_collection_created
    ON documents(collection, created_at)`
