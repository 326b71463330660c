// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/volunteer-portal/middleware"
	"github.com/danielhkuo/volunteer-portal/voting"
)

var validationErrors = []error{
	voting.ErrMissingIdentity,
	voting.ErrInvalidSelection,
	voting.ErrMissingReason,
	voting.ErrInvalidConfig,
	voting.ErrConfirmationRequired,
}

var policyErrors = []error{
	voting.ErrMeetingClosed,
	voting.ErrAlreadyVoted,
	voting.ErrAlreadyRecorded,
	voting.ErrNothingToFinalize,
	voting.ErrNoWinner,
	voting.ErrMeetingMismatch,
	voting.ErrMeetingFinalized,
	voting.ErrOptionInUse,
}

// rejections are the errors a caller can cause; anything else is a failure
var rejections = append(append([]error{}, validationErrors...), policyErrors...)

// writeVotingError maps a voting error to its HTTP status. Unexpected errors
// are logged with op and reported as a database error.
func writeVotingError(w http.ResponseWriter, err error, op string, attrs ...any) {
	switch {
	case errors.Is(err, voting.ErrNotConfigured):
		middleware.ErrorResponse(w, http.StatusNotFound, "Meeting not configured")
	case errors.Is(err, voting.ErrNoResult):
		middleware.ErrorResponse(w, http.StatusNotFound, "No data")
	case matchesAny(err, validationErrors):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case matchesAny(err, policyErrors):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error("failed to "+op, append(attrs, "error", err)...)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

func matchesAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
