// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the meeting vote, attendance, and finalization
workflow on top of the document store.

# Meeting Lifecycle

There is exactly one current meeting, stored as a singleton document and
read only through Service.Current:

	unset ──Configure──▶ active ──Finalize──▶ closed
	                       ▲                    │
	                       └────Configure───────┘ (new meeting id only)

Configure replaces the current meeting. Reconfiguring the active meeting
may add options but cannot drop one a ballot already selected
(ErrOptionInUse), so every archived winner is a configured option.
Finalize requires Confirm, at least one ballot, and writes the
MeetingResult archive before closing the meeting.
A finalized meeting id is never reopened.

# Ballots

	ballot, err := svc.SubmitBallot(ctx, ident, req, ipHash)

ValidateBallot rejects closed meetings, missing identities, and selections
outside the configured options. The duplicate guard then allows at most one
ballot per (meeting id, identity key); ballots are never updated.

# Tally

	tally, err := svc.Tally(ctx, meetingID)

Counts per field in first-seen order, percentages rounded to 2 decimals.
With no ballots the tally reports NoData. The winner of a field is the
highest count, ties going to the value seen first.

# Attendance

SubmitAttendance uses the same gate and guard as ballots in its own
collection. A reason is required when declining.

# Errors

Errors are sentinels, wrapped with detail where useful; compare with
errors.Is. They fall into validation failures (ErrInvalidSelection,
ErrMissingIdentity, ErrMissingReason, ErrInvalidConfig,
ErrConfirmationRequired), policy rejections (ErrMeetingClosed,
ErrAlreadyVoted, ErrAlreadyRecorded, ErrNothingToFinalize, ErrNoWinner,
ErrMeetingMismatch, ErrMeetingFinalized, ErrOptionInUse), and absent data
(ErrNotConfigured, ErrNoResult).
*/
package voting
