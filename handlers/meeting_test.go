// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/danielhkuo/volunteer-portal/models"
	"github.com/danielhkuo/volunteer-portal/testutil"
)

func TestGetMeeting(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewMeetingHandler(store, testutil.GetTestConfig())

	w := serve(handler.GetMeeting, testutil.MakeRequest("GET", "/meeting", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
	if !strings.Contains(w.Body.String(), "Meeting not configured") {
		t.Errorf("Expected 'Meeting not configured', got %s", w.Body.String())
	}

	setupMeeting(t, store, "M1")

	w = serve(handler.GetMeeting, testutil.MakeRequest("GET", "/meeting", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var cfg models.MeetingConfig
	testutil.AssertJSON(t, w, &cfg)
	if cfg.MeetingID != "M1" || cfg.Status != models.StatusActive {
		t.Errorf("unexpected meeting: %+v", cfg)
	}
}

func TestConfigure(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewMeetingHandler(store, testutil.GetTestConfig())

	noPlaces := testutil.TestMeeting("M1")
	noPlaces.Places = []string{" "}

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{"valid meeting", testutil.TestMeeting("M1"), http.StatusOK},
		{"reconfigure same meeting", testutil.TestMeeting("M1"), http.StatusOK},
		{"missing meeting id", testutil.TestMeeting(""), http.StatusBadRequest},
		{"blank option list", noPlaces, http.StatusBadRequest},
		{"invalid JSON", "not json", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asMember(testutil.MakeRequest("PUT", "/meeting", tt.body, nil), "admin-1", "Root", models.RoleAdmin)
			w := serve(handler.Configure, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestConfigureDropsVotedOption(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewMeetingHandler(store, testutil.GetTestConfig())

	setupMeeting(t, store, "M1")
	castBallot(t, store, "Alice", "Safety", "Mon")

	body := testutil.TestMeeting("M1")
	body.Agendas = []string{"Budget"}
	req := asMember(testutil.MakeRequest("PUT", "/meeting", body, nil), "admin-1", "Root", models.RoleAdmin)
	testutil.AssertStatus(t, serve(handler.Configure, req), http.StatusConflict)
}

func TestFinalize(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewMeetingHandler(store, testutil.GetTestConfig())

	finalize := func(body interface{}) (int, string) {
		w := serve(handler.Finalize, testutil.MakeRequest("POST", "/meeting/finalize", body, nil))
		return w.Code, w.Body.String()
	}

	if code, _ := finalize(models.FinalizeMeetingRequest{Confirm: true}); code != http.StatusNotFound {
		t.Errorf("not configured: expected 404, got %d", code)
	}

	setupMeeting(t, store, "M1")

	if code, body := finalize(models.FinalizeMeetingRequest{Confirm: true}); code != http.StatusConflict || !strings.Contains(body, "nothing to finalize") {
		t.Errorf("no ballots: expected 409 nothing to finalize, got %d %s", code, body)
	}

	castBallot(t, store, "Alice", "Budget", "Mon")

	if code, _ := finalize(models.FinalizeMeetingRequest{MeetingID: "M1"}); code != http.StatusBadRequest {
		t.Errorf("unconfirmed: expected 400, got %d", code)
	}
	if code, _ := finalize(models.FinalizeMeetingRequest{MeetingID: "M9", Confirm: true}); code != http.StatusConflict {
		t.Errorf("mismatch: expected 409, got %d", code)
	}

	w := serve(handler.Finalize, testutil.MakeRequest("POST", "/meeting/finalize",
		models.FinalizeMeetingRequest{MeetingID: "M1", Confirm: true}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.MeetingResult
	testutil.AssertJSON(t, w, &result)
	if result.TotalVotes != 1 || result.WinningAgenda != "Budget" || result.WinningDate != "Mon" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestTally(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewMeetingHandler(store, testutil.GetTestConfig())

	w := serve(handler.Tally, testutil.MakeRequest("GET", "/meeting/tally", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	setupMeeting(t, store, "M1")

	w = serve(handler.Tally, testutil.MakeRequest("GET", "/meeting/tally", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var empty models.Tally
	testutil.AssertJSON(t, w, &empty)
	if !empty.NoData {
		t.Errorf("expected no data before any ballots: %+v", empty)
	}

	castBallot(t, store, "Alice", "Budget", "Mon")
	castBallot(t, store, "Bob", "Budget", "Tue")
	castBallot(t, store, "Carol", "Safety", "Mon")

	w = serve(handler.Tally, testutil.MakeRequest("GET", "/meeting/tally", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var tally models.Tally
	testutil.AssertJSON(t, w, &tally)

	agenda := tally.Field(models.FieldAgenda)
	if agenda.Count("Budget") != 2 || agenda.Values[0].Percent != 66.67 || agenda.Values[1].Percent != 33.33 {
		t.Errorf("unexpected agenda tally: %+v", agenda)
	}

	// Explicit meeting id with no ballots
	w = serve(handler.Tally, testutil.MakeRequest("GET", "/meeting/tally?meeting_id=M0", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var other models.Tally
	testutil.AssertJSON(t, w, &other)
	if !other.NoData || other.MeetingID != "M0" {
		t.Errorf("unexpected tally for M0: %+v", other)
	}
}

func TestGetBallotCount(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewMeetingHandler(store, testutil.GetTestConfig())

	setupMeeting(t, store, "M1")
	castBallot(t, store, "Alice", "Budget", "Mon")
	castBallot(t, store, "Bob", "Safety", "Tue")

	w := serve(handler.GetBallotCount, testutil.MakeRequest("GET", "/meeting/ballot-count", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		MeetingID   string `json:"meeting_id"`
		BallotCount int    `json:"ballot_count"`
	}
	testutil.AssertJSON(t, w, &resp)
	if resp.MeetingID != "M1" || resp.BallotCount != 2 {
		t.Errorf("unexpected count: %+v", resp)
	}
}
