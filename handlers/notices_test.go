// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/volunteer-portal/models"
	"github.com/danielhkuo/volunteer-portal/testutil"
)

func TestNoticeBoard(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewNoticeHandler(store, testutil.GetTestConfig())

	post := func(text string) string {
		t.Helper()
		req := asMember(testutil.MakeRequest("POST", "/notices", models.PostNoticeRequest{Text: text}, nil),
			"m-1", "Alice", models.RoleMember)
		w := serve(handler.Post, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
		var resp models.CreatedResponse
		testutil.AssertJSON(t, w, &resp)
		return resp.ID
	}

	first := post("Bring your own water")
	second := post("Meeting moved to the annex")

	// Empty notices are rejected
	req := asMember(testutil.MakeRequest("POST", "/notices", models.PostNoticeRequest{Text: "  "}, nil),
		"m-1", "Alice", models.RoleMember)
	testutil.AssertStatus(t, serve(handler.Post, req), http.StatusBadRequest)

	// Pin the second notice
	pin := testutil.MakeRequest("POST", "/notices/"+second+"/pin", nil, nil)
	pin.SetPathValue("id", second)
	w := serve(handler.TogglePin, pin)
	testutil.AssertStatus(t, w, http.StatusOK)
	var pinned models.Notice
	testutil.AssertJSON(t, w, &pinned)
	if !pinned.Pinned {
		t.Error("Expected notice to be pinned")
	}

	// Comment as an anonymous participant
	comment := testutil.MakeRequest("POST", "/notices/"+first+"/comments", models.CommentRequest{Name: "Bob", Text: "Thanks"}, nil)
	comment.SetPathValue("id", first)
	testutil.AssertStatus(t, serve(handler.Comment, comment), http.StatusCreated)

	nameless := testutil.MakeRequest("POST", "/notices/"+first+"/comments", models.CommentRequest{Text: "Hi"}, nil)
	nameless.SetPathValue("id", first)
	testutil.AssertStatus(t, serve(handler.Comment, nameless), http.StatusBadRequest)

	missing := testutil.MakeRequest("POST", "/notices/nope/comments", models.CommentRequest{Name: "Bob", Text: "Hi"}, nil)
	missing.SetPathValue("id", "nope")
	testutil.AssertStatus(t, serve(handler.Comment, missing), http.StatusNotFound)

	w = serve(handler.List, testutil.MakeRequest("GET", "/notices", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var notices []models.Notice
	testutil.AssertJSON(t, w, &notices)
	if len(notices) != 2 {
		t.Fatalf("Expected 2 notices, got %d", len(notices))
	}
	if notices[0].ID != second || !notices[0].Pinned {
		t.Errorf("Expected pinned notice first, got %+v", notices[0])
	}
	if notices[1].ID != first || len(notices[1].Comments) != 1 || notices[1].Comments[0].Author != "Bob" {
		t.Errorf("Expected comment on the first notice, got %+v", notices[1])
	}
	if notices[1].PostedBy != "Alice" {
		t.Errorf("Expected PostedBy Alice, got %q", notices[1].PostedBy)
	}

	// Toggling again unpins
	pin = testutil.MakeRequest("POST", "/notices/"+second+"/pin", nil, nil)
	pin.SetPathValue("id", second)
	w = serve(handler.TogglePin, pin)
	testutil.AssertJSON(t, w, &pinned)
	if pinned.Pinned {
		t.Error("Expected notice to be unpinned")
	}
}
