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

const (
	collectionPlanning     = "planning"
	collectionNextMeetings = "next_meeting"
)

type PlanningHandler struct {
	store *docstore.Store
	cfg   cliparse.Config
}

func NewPlanningHandler(store *docstore.Store, cfg cliparse.Config) *PlanningHandler {
	return &PlanningHandler{store: store, cfg: cfg}
}

// AddPlan handles POST /planning (member)
func (h *PlanningHandler) AddPlan(w http.ResponseWriter, r *http.Request) {
	var req models.AddPlanRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	text := strings.TrimSpace(req.Plan)
	if text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "plan is required")
		return
	}
	if req.Progress < 0 || req.Progress > 100 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "progress must be between 0 and 100")
		return
	}

	creator, _ := identity.FromContext(r.Context())
	plan := models.Plan{
		ID:        uuid.NewString(),
		Plan:      text,
		Progress:  req.Progress,
		CreatedBy: creator.DisplayName,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.Create(r.Context(), collectionPlanning, plan.ID, plan); err != nil {
		slog.Error("failed to save plan", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save plan")
		return
	}

	slog.Info("plan saved", "plan_id", plan.ID, "progress", plan.Progress)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{ID: plan.ID})
}

// ListPlans handles GET /planning (member)
func (h *PlanningHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, ok := list[models.Plan](w, r, h.store, collectionPlanning)
	if !ok {
		return
	}
	slices.SortStableFunc(plans, func(a, b models.Plan) int { return a.CreatedAt.Compare(b.CreatedAt) })

	middleware.JSONResponse(w, http.StatusOK, plans)
}

// AddNextMeeting handles POST /next-meetings (member)
func (h *PlanningHandler) AddNextMeeting(w http.ResponseWriter, r *http.Request) {
	var req models.AddNextMeetingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	organizer := strings.TrimSpace(req.Organizer)
	agenda := strings.TrimSpace(req.Agenda)
	if organizer == "" || agenda == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "organizer and agenda are required")
		return
	}

	date, err := time.Parse(time.DateOnly, strings.TrimSpace(req.Date))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	clock := strings.TrimSpace(req.Time)
	if _, err := time.Parse("15:04", clock); err != nil {
		if _, err := time.Parse(time.TimeOnly, clock); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "time must be HH:MM or HH:MM:SS")
			return
		}
	}

	day := strings.TrimSpace(req.Day)
	if day == "" {
		day = date.Weekday().String()
	}
	if !slices.Contains(models.Weekdays, day) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "day must be one of: "+strings.Join(models.Weekdays, ", "))
		return
	}
	if day != date.Weekday().String() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "day does not match date")
		return
	}

	creator, _ := identity.FromContext(r.Context())
	m := models.NextMeeting{
		ID:        uuid.NewString(),
		Organizer: organizer,
		Date:      date.Format(time.DateOnly),
		Day:       day,
		Time:      clock,
		Agenda:    agenda,
		CreatedBy: creator.DisplayName,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.Create(r.Context(), collectionNextMeetings, m.ID, m); err != nil {
		slog.Error("failed to save next meeting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to schedule meeting")
		return
	}

	slog.Info("next meeting scheduled", "next_meeting_id", m.ID, "date", m.Date)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{ID: m.ID})
}

// ListNextMeetings handles GET /next-meetings (member)
// Returns planned meetings in the order they were scheduled
func (h *PlanningHandler) ListNextMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, ok := list[models.NextMeeting](w, r, h.store, collectionNextMeetings)
	if !ok {
		return
	}
	slices.SortStableFunc(meetings, func(a, b models.NextMeeting) int { return a.CreatedAt.Compare(b.CreatedAt) })

	middleware.JSONResponse(w, http.StatusOK, meetings)
}

// list decodes every document in a collection, writing a 500 on failure
func list[T any](w http.ResponseWriter, r *http.Request, store *docstore.Store, collection string) ([]T, bool) {
	docs, err := store.Query(r.Context(), collection)
	if err != nil {
		slog.Error("failed to query collection", "collection", collection, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}

	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := d.Decode(&v); err != nil {
			slog.Error("failed to decode document", "collection", collection, "id", d.ID, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}
