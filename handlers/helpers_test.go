// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/identity"
	"github.com/danielhkuo/volunteer-portal/models"
	"github.com/danielhkuo/volunteer-portal/testutil"
	"github.com/danielhkuo/volunteer-portal/voting"
)

// setupMeeting configures an active meeting with the standard test options
func setupMeeting(t *testing.T, store *docstore.Store, meetingID string) {
	t.Helper()
	if _, err := voting.NewService(store).Configure(context.Background(), testutil.TestMeeting(meetingID)); err != nil {
		t.Fatalf("Failed to configure meeting: %v", err)
	}
}

// castBallot submits a ballot for an anonymous participant
func castBallot(t *testing.T, store *docstore.Store, name, agenda, date string) {
	t.Helper()
	_, err := voting.NewService(store).SubmitBallot(context.Background(), identity.SelfDeclared(name),
		models.SubmitBallotRequest{Agenda: agenda, Date: date, Time: "10am", Place: "Hall"}, "")
	if err != nil {
		t.Fatalf("Failed to submit ballot for %s: %v", name, err)
	}
}

// asMember attaches a member identity the way the session middleware does
func asMember(req *http.Request, id, name, role string) *http.Request {
	return req.WithContext(identity.WithIdentity(req.Context(), identity.Member(id, name, role)))
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, req)
	return w
}
