// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/volunteer-portal/cliparse"
	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/identity"
	"github.com/danielhkuo/volunteer-portal/metrics"
	"github.com/danielhkuo/volunteer-portal/middleware"
	"github.com/danielhkuo/volunteer-portal/models"
	"github.com/danielhkuo/volunteer-portal/voting"
)

type AttendanceHandler struct {
	svc *voting.Service
	cfg cliparse.Config
}

func NewAttendanceHandler(store *docstore.Store, cfg cliparse.Config) *AttendanceHandler {
	return &AttendanceHandler{svc: voting.NewService(store), cfg: cfg}
}

// Submit handles POST /meeting/attendance
func (h *AttendanceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitAttendanceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id := identity.Resolve(r.Context(), req.Name)

	rec, err := h.svc.SubmitAttendance(r.Context(), id, req)
	metrics.AttendanceTotal.WithLabelValues(
		metrics.Outcome(err, []error{voting.ErrAlreadyRecorded}, rejections),
	).Inc()
	if err != nil {
		writeVotingError(w, err, "record attendance", "identity", id.DisplayName)
		return
	}

	slog.Info("attendance recorded", "meeting_id", rec.MeetingID, "record_id", rec.ID,
		"attending", rec.Attending)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitAttendanceResponse{
		RecordID: rec.ID,
		Message:  "Attendance recorded",
	})
}

// Summary handles GET /meeting/attendance (member)
func (h *AttendanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.AttendanceSummary(r.Context())
	if err != nil {
		writeVotingError(w, err, "summarize attendance")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summary)
}
