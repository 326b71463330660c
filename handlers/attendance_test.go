// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/volunteer-portal/models"
	"github.com/danielhkuo/volunteer-portal/testutil"
)

func TestSubmitAttendance(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewAttendanceHandler(store, testutil.GetTestConfig())
	setupMeeting(t, store, "M1")

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{"attending", models.SubmitAttendanceRequest{Name: "Alice", Attending: true}, http.StatusCreated},
		{"declining with reason", models.SubmitAttendanceRequest{Name: "Bob", Reason: "Out of town"}, http.StatusCreated},
		{"declining without reason", models.SubmitAttendanceRequest{Name: "Carol"}, http.StatusBadRequest},
		{"duplicate", models.SubmitAttendanceRequest{Name: "alice", Attending: true}, http.StatusConflict},
		{"missing name", models.SubmitAttendanceRequest{Attending: true}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(handler.Submit, testutil.MakeRequest("POST", "/meeting/attendance", tt.body, nil))
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	w := serve(handler.Summary, testutil.MakeRequest("GET", "/meeting/attendance", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var summary models.AttendanceSummary
	testutil.AssertJSON(t, w, &summary)
	if summary.Attending != 1 || summary.Declining != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if len(summary.Declines) != 1 || summary.Declines[0].Reason != "Out of town" {
		t.Errorf("unexpected declines: %+v", summary.Declines)
	}
}

func TestAttendanceNotConfigured(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewAttendanceHandler(store, testutil.GetTestConfig())

	w := serve(handler.Summary, testutil.MakeRequest("GET", "/meeting/attendance", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = serve(handler.Submit, testutil.MakeRequest("POST", "/meeting/attendance",
		models.SubmitAttendanceRequest{Name: "Alice", Attending: true}, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
