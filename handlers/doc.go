// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Volunteer Portal API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - MeetingHandler: Current meeting, configuration, finalization, live tally
  - VotingHandler: Ballot submission and lookup
  - AttendanceHandler: Attendance answers and summary
  - ResultsHandler: Finalized meeting archives
  - AuthHandler: Member login
  - NoticeHandler: Notice board with pinning and comments
  - TeamHandler: Team rosters
  - PlanningHandler: Plans with progress and upcoming meeting announcements
  - DashboardHandler: Collection counts and per-team report

Handlers are created via constructor functions that accept the document
store and Config:

	meetingHandler := handlers.NewMeetingHandler(store, cfg)

# Meeting Lifecycle

	PUT  /meeting          → Configure (admin)
	POST /meeting/finalize → Finalize (admin, requires "confirm": true)

Finalize archives the per-field winners and closes voting. A finalized
meeting id cannot be configured again. Reconfiguring the active meeting
cannot drop an option that already has ballots (409).

# Voting Flow

	POST /meeting/ballots    → SubmitBallot
	POST /meeting/attendance → Submit
	GET  /meeting/tally      → Tally

Logged-in members vote as themselves. Anonymous participants send a name,
which is a weak identity: two people with the same name share one ballot.

# Errors

Domain errors from package voting map to statuses in one place
(writeVotingError): validation failures are 400, policy rejections 409, a
missing meeting or archive 404, anything else 500 "Database error".
*/
package handlers
