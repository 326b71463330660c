// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/volunteer-portal/cliparse"
	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/middleware"
	"github.com/danielhkuo/volunteer-portal/voting"
)

type ResultsHandler struct {
	svc *voting.Service
	cfg cliparse.Config
}

func NewResultsHandler(store *docstore.Store, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{svc: voting.NewService(store), cfg: cfg}
}

// ListResults handles GET /results (member)
// Returns every finalized meeting, oldest first
func (h *ResultsHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.Results(r.Context())
	if err != nil {
		writeVotingError(w, err, "list results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// GetResult handles GET /results/{id}
func (h *ResultsHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	meetingID := r.PathValue("id")
	if meetingID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "meeting_id is required")
		return
	}

	result, err := h.svc.Result(r.Context(), meetingID)
	if err != nil {
		writeVotingError(w, err, "load result", "meeting_id", meetingID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}
