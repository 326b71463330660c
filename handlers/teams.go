// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/volunteer-portal/cliparse"
	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/identity"
	"github.com/danielhkuo/volunteer-portal/middleware"
	"github.com/danielhkuo/volunteer-portal/models"
)

const collectionTeams = "teams"

type TeamHandler struct {
	store *docstore.Store
	cfg   cliparse.Config
}

func NewTeamHandler(store *docstore.Store, cfg cliparse.Config) *TeamHandler {
	return &TeamHandler{store: store, cfg: cfg}
}

// Add handles POST /teams (member)
func (h *TeamHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.AddTeamEntryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !slices.Contains(models.Teams, req.Team) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team must be one of: "+strings.Join(models.Teams, ", "))
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	creator, _ := identity.FromContext(r.Context())
	entry := models.TeamEntry{
		ID:        uuid.NewString(),
		Team:      req.Team,
		Name:      name,
		Details:   strings.TrimSpace(req.Details),
		CreatedBy: creator.DisplayName,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.Create(r.Context(), collectionTeams, entry.ID, entry); err != nil {
		slog.Error("failed to save team entry", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add team entry")
		return
	}

	slog.Info("team entry added", "team", entry.Team, "entry_id", entry.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{ID: entry.ID})
}

// List handles GET /teams?team= (member)
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	var filters []docstore.Filter
	if team := r.URL.Query().Get("team"); team != "" {
		if !slices.Contains(models.Teams, team) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown team")
			return
		}
		filters = append(filters, docstore.Eq("team", team))
	}

	docs, err := h.store.Query(r.Context(), collectionTeams, filters...)
	if err != nil {
		slog.Error("failed to query teams", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	entries := make([]models.TeamEntry, 0, len(docs))
	for _, d := range docs {
		var e models.TeamEntry
		if err := d.Decode(&e); err != nil {
			slog.Error("failed to decode team entry", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		entries = append(entries, e)
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}
