// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/volunteer-portal/auth"
	"github.com/danielhkuo/volunteer-portal/cliparse"
	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/identity"
	"github.com/danielhkuo/volunteer-portal/metrics"
	"github.com/danielhkuo/volunteer-portal/middleware"
	"github.com/danielhkuo/volunteer-portal/models"
	"github.com/danielhkuo/volunteer-portal/voting"
)

type VotingHandler struct {
	svc *voting.Service
	cfg cliparse.Config
}

func NewVotingHandler(store *docstore.Store, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{svc: voting.NewService(store), cfg: cfg}
}

// SubmitBallot handles POST /meeting/ballots
// Members vote as themselves; anonymous participants must supply a name.
func (h *VotingHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id := identity.Resolve(r.Context(), req.Name)

	// Get IP hash for auditing
	ipHash := auth.HashIP(middleware.GetClientIP(r, h.cfg.TrustProxy), h.cfg.SessionSecret)

	ballot, err := h.svc.SubmitBallot(r.Context(), id, req, ipHash)
	metrics.BallotsTotal.WithLabelValues(
		metrics.Outcome(err, []error{voting.ErrAlreadyVoted}, rejections),
	).Inc()
	if err != nil {
		writeVotingError(w, err, "submit ballot", "identity", id.DisplayName)
		return
	}

	slog.Info("ballot submitted", "meeting_id", ballot.MeetingID, "ballot_id", ballot.ID,
		"authenticated", ballot.Authenticated)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitBallotResponse{
		BallotID: ballot.ID,
		Message:  "Vote recorded",
	})
}

// GetMyBallot handles GET /meeting/my-ballot
// Members see their own ballot; anonymous participants pass ?name=.
func (h *VotingHandler) GetMyBallot(w http.ResponseWriter, r *http.Request) {
	id := identity.Resolve(r.Context(), r.URL.Query().Get("name"))
	if !id.Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest, voting.ErrMissingIdentity.Error())
		return
	}

	cfg, err := h.svc.Current(r.Context())
	if err != nil {
		writeVotingError(w, err, "load meeting")
		return
	}

	ballot, err := h.svc.BallotFor(r.Context(), cfg.MeetingID, id)
	if errors.Is(err, docstore.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No ballot submitted yet")
		return
	}
	if err != nil {
		writeVotingError(w, err, "load ballot", "meeting_id", cfg.MeetingID)
		return
	}

	// The IP hash is for auditing only
	ballot.IPHash = ""
	middleware.JSONResponse(w, http.StatusOK, ballot)
}
