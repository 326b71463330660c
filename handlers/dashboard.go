// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/volunteer-portal/cliparse"
	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/middleware"
	"github.com/danielhkuo/volunteer-portal/models"
	"github.com/danielhkuo/volunteer-portal/voting"
)

type DashboardHandler struct {
	store *docstore.Store
	cfg   cliparse.Config
}

func NewDashboardHandler(store *docstore.Store, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{store: store, cfg: cfg}
}

// Dashboard handles GET /dashboard (member)
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var d models.Dashboard
	for _, c := range []struct {
		collection string
		dst        *int
	}{
		{collectionTeams, &d.TeamEntries},
		{voting.CollectionAttendance, &d.AttendanceRecords},
		{voting.CollectionResults, &d.MeetingsArchived},
		{collectionNextMeetings, &d.NextMeetings},
	} {
		n, err := h.store.Count(r.Context(), c.collection)
		if err != nil {
			slog.Error("failed to count documents", "collection", c.collection, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		*c.dst = n
	}

	middleware.JSONResponse(w, http.StatusOK, d)
}

// TeamReport handles GET /reports/teams (member)
// Every team is listed, including those with no entries
func (h *DashboardHandler) TeamReport(w http.ResponseWriter, r *http.Request) {
	report := models.TeamReport{Teams: make([]models.TeamCount, 0, len(models.Teams))}
	for _, team := range models.Teams {
		n, err := h.store.Count(r.Context(), collectionTeams, docstore.Eq("team", team))
		if err != nil {
			slog.Error("failed to count team entries", "team", team, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		report.Teams = append(report.Teams, models.TeamCount{Team: team, Entries: n})
		report.Total += n
	}

	middleware.JSONResponse(w, http.StatusOK, report)
}
