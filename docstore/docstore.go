// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/danielhkuo/volunteer-portal/db"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
)

var fieldName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Document is one stored JSON document.
type Document struct {
	ID        string
	Body      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Decode unmarshals the document body into v.
func (d Document) Decode(v any) error {
	if err := json.Unmarshal(d.Body, v); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", d.ID, err)
	}
	return nil
}

// Filter matches documents whose top-level string field equals Value.
type Filter struct {
	Field string
	Value string
}

func Eq(field, value string) Filter {
	return Filter{Field: field, Value: value}
}

// Store keeps collections of JSON documents in the documents table.
type Store struct {
	db      *sql.DB
	dialect db.Dialect
	now     func() time.Time
}

func New(conn *sql.DB, dialect db.Dialect) *Store {
	return &Store{db: conn, dialect: dialect, now: time.Now}
}

// DB returns the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Add stores v under a generated id and returns the id.
func (s *Store) Add(ctx context.Context, collection string, v any) (string, error) {
	id := uuid.NewString()
	if err := s.Create(ctx, collection, id, v); err != nil {
		return "", err
	}
	return id, nil
}

// Create stores v under id. It fails with ErrAlreadyExists if the id is taken,
// which makes it usable as a conditional write.
func (s *Store) Create(ctx context.Context, collection, id string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	now := s.now().UTC().UnixMilli()

	_, err = s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO documents (collection, id, body, created_at, updated_at)
		VALUES (%s, %s, %s, %s, %s)
	`, s.ph(1), s.ph(2), s.ph(3), s.ph(4), s.ph(5)), collection, id, string(body), now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s/%s", ErrAlreadyExists, collection, id)
		}
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// Set creates or replaces the document stored under id.
func (s *Store) Set(ctx context.Context, collection, id string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	now := s.now().UTC().UnixMilli()

	_, err = s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO documents (collection, id, body, created_at, updated_at)
		VALUES (%s, %s, %s, %s, %s)
		ON CONFLICT (collection, id)
		DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, s.ph(1), s.ph(2), s.ph(3), s.ph(4), s.ph(5)), collection, id, string(body), now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// Get decodes the document stored under id into v.
func (s *Store) Get(ctx context.Context, collection, id string, v any) error {
	var body []byte
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT body FROM documents WHERE collection = %s AND id = %s
	`, s.ph(1), s.ph(2)), collection, id).Scan(&body)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	return nil
}

// Query returns every document in the collection matching all filters,
// oldest first.
func (s *Store) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	var docs []Document
	err := s.Stream(ctx, collection, func(d Document) error {
		docs = append(docs, d)
		return nil
	}, filters...)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Stream calls fn for each matching document, oldest first. The connection is
// held until fn returns for the last row, so fn must not call back into the store.
func (s *Store) Stream(ctx context.Context, collection string, fn func(Document) error, filters ...Filter) error {
	where, args, err := s.where(collection, filters)
	if err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, body, created_at, updated_at FROM documents WHERE `+where+` ORDER BY created_at, id`,
		args...)
	if err != nil {
		return fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			d                Document
			body             []byte
			created, updated int64
		)
		if err := rows.Scan(&d.ID, &body, &created, &updated); err != nil {
			return fmt.Errorf("failed to scan document: %w", err)
		}
		d.Body = json.RawMessage(body)
		d.CreatedAt = time.UnixMilli(created).UTC()
		d.UpdatedAt = time.UnixMilli(updated).UTC()
		if err := fn(d); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Count returns the number of documents matching all filters.
func (s *Store) Count(ctx context.Context, collection string, filters ...Filter) (int, error) {
	where, args, err := s.where(collection, filters)
	if err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

func (s *Store) where(collection string, filters []Filter) (string, []any, error) {
	clauses := []string{"collection = " + s.ph(1)}
	args := []any{collection}

	for _, f := range filters {
		if !fieldName.MatchString(f.Field) {
			return "", nil, fmt.Errorf("invalid filter field %q", f.Field)
		}
		n := len(args) + 1
		clauses = append(clauses, s.dialect.JSONText("body", n)+" = "+s.ph(n+1))
		args = append(args, f.Field, f.Value)
	}

	return strings.Join(clauses, " AND "), args, nil
}

func (s *Store) ph(n int) string {
	return s.dialect.Placeholder(n)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
