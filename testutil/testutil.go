// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/volunteer-portal/auth"
	"github.com/danielhkuo/volunteer-portal/cliparse"
	"github.com/danielhkuo/volunteer-portal/db"
	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/models"
)

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *docstore.Store {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// The in-memory database lives as long as this one connection
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return docstore.New(conn, db.SQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "file::memory:",
		DatabaseType:   cliparse.DatabaseSQLite,
		SessionSecret:  "test-session-secret",
		AdminName:      "Administrator",
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
}

// CreateTestMember stores an approved member and returns it
func CreateTestMember(t *testing.T, store *docstore.Store, name, role, password string) models.Member {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	m := models.Member{
		ID:           uuid.NewString(),
		Mobile:       "555" + uuid.NewString()[:7],
		Name:         name,
		Role:         role,
		PasswordHash: hash,
		IsApproved:   true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.Set(context.Background(), "members", m.ID, m); err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}
	return m
}

// MemberToken issues a session token for a member
func MemberToken(t *testing.T, cfg cliparse.Config, m models.Member) string {
	t.Helper()

	token, err := auth.MakeToken(m.ID, m.Name, m.Role, cfg.SessionSecret)
	if err != nil {
		t.Fatalf("Failed to make token: %v", err)
	}
	return token
}

// BearerHeader returns the Authorization header for a token
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// TestMeeting is the configuration used across handler tests
func TestMeeting(id string) models.ConfigureMeetingRequest {
	return models.ConfigureMeetingRequest{
		MeetingID: id,
		Agendas:   []string{"Budget", "Safety"},
		Dates:     []string{"Mon", "Tue"},
		Times:     []string{"10am"},
		Places:    []string{"Hall"},
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
