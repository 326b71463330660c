// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import "errors"

// Validation failures: the submitter can fix the input and retry.
var (
	ErrMissingIdentity  = errors.New("name is required")
	ErrInvalidSelection = errors.New("selection is not one of the meeting options")
	ErrMissingReason    = errors.New("reason is required when not attending")
	ErrInvalidConfig    = errors.New("invalid meeting configuration")

	ErrConfirmationRequired = errors.New("finalization must be confirmed")
)

// Policy rejections: the request was well formed but is not allowed now.
var (
	ErrMeetingClosed     = errors.New("meeting is closed")
	ErrAlreadyVoted      = errors.New("already voted")
	ErrAlreadyRecorded   = errors.New("attendance already recorded")
	ErrNothingToFinalize = errors.New("nothing to finalize")
	ErrNoWinner          = errors.New("field has no votes")
	ErrMeetingMismatch   = errors.New("meeting id does not match the current meeting")
	ErrMeetingFinalized  = errors.New("meeting id has already been finalized")
	ErrOptionInUse       = errors.New("option has ballots and cannot be removed")
)

// Absent data.
var (
	ErrNotConfigured = errors.New("meeting not configured")
	ErrNoResult      = errors.New("no data")
)
