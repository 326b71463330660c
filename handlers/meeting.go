// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/volunteer-portal/cliparse"
	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/identity"
	"github.com/danielhkuo/volunteer-portal/metrics"
	"github.com/danielhkuo/volunteer-portal/middleware"
	"github.com/danielhkuo/volunteer-portal/models"
	"github.com/danielhkuo/volunteer-portal/voting"
)

type MeetingHandler struct {
	store *docstore.Store
	svc   *voting.Service
	cfg   cliparse.Config
}

func NewMeetingHandler(store *docstore.Store, cfg cliparse.Config) *MeetingHandler {
	return &MeetingHandler{store: store, svc: voting.NewService(store), cfg: cfg}
}

// GetMeeting handles GET /meeting
func (h *MeetingHandler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.Current(r.Context())
	if err != nil {
		writeVotingError(w, err, "load meeting")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, cfg)
}

// Configure handles PUT /meeting (admin)
func (h *MeetingHandler) Configure(w http.ResponseWriter, r *http.Request) {
	var req models.ConfigureMeetingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cfg, err := h.svc.Configure(r.Context(), req)
	if err != nil {
		writeVotingError(w, err, "configure meeting", "meeting_id", req.MeetingID)
		return
	}

	admin, _ := identity.FromContext(r.Context())
	slog.Info("meeting configured by admin", "meeting_id", cfg.MeetingID, "admin", admin.DisplayName)

	middleware.JSONResponse(w, http.StatusOK, cfg)
}

// Finalize handles POST /meeting/finalize (admin)
//
// Without "confirm": true the request is rejected and nothing changes, so a
// client must send the acknowledgment explicitly.
func (h *MeetingHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req models.FinalizeMeetingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.svc.Finalize(r.Context(), req)
	metrics.FinalizationsTotal.WithLabelValues(metrics.Outcome(err, nil, rejections)).Inc()
	if err != nil {
		writeVotingError(w, err, "finalize meeting", "meeting_id", req.MeetingID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// Tally handles GET /meeting/tally
// Defaults to the current meeting; ?meeting_id= selects another one.
func (h *MeetingHandler) Tally(w http.ResponseWriter, r *http.Request) {
	meetingID, ok := h.meetingID(w, r)
	if !ok {
		return
	}

	tally, err := h.svc.Tally(r.Context(), meetingID)
	if err != nil {
		writeVotingError(w, err, "tally ballots", "meeting_id", meetingID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tally)
}

// GetBallotCount handles GET /meeting/ballot-count
// Returns the number of ballots submitted (visible while voting is open)
func (h *MeetingHandler) GetBallotCount(w http.ResponseWriter, r *http.Request) {
	meetingID, ok := h.meetingID(w, r)
	if !ok {
		return
	}

	count, err := h.store.Count(r.Context(), voting.CollectionBallots, docstore.Eq("meeting_id", meetingID))
	if err != nil {
		slog.Error("failed to count ballots", "error", err, "meeting_id", meetingID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"meeting_id":   meetingID,
		"ballot_count": count,
	})
}

// meetingID resolves ?meeting_id= or falls back to the current meeting.
func (h *MeetingHandler) meetingID(w http.ResponseWriter, r *http.Request) (string, bool) {
	if id := strings.TrimSpace(r.URL.Query().Get("meeting_id")); id != "" {
		return id, true
	}

	cfg, err := h.svc.Current(r.Context())
	if err != nil {
		writeVotingError(w, err, "load meeting")
		return "", false
	}
	return cfg.MeetingID, true
}
