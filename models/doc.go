// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - ConfigureMeetingRequest: meeting_id and the four option lists
  - FinalizeMeetingRequest: meeting_id, confirm
  - SubmitBallotRequest: agenda, date, time, place (+ name when anonymous)
  - SubmitAttendanceRequest: attending, reason (+ name when anonymous)
  - LoginRequest, PostNoticeRequest, CommentRequest, AddTeamEntryRequest

# Domain Types

Documents stored by the docstore package:

  - MeetingConfig: the singleton current meeting
  - Ballot: one participant's vote, never mutated
  - AttendanceRecord: one participant's yes/no answer
  - MeetingResult: archived winners, keyed by meeting id
  - Member, Notice, TeamEntry

Tally and FieldTally are computed on read and never stored.

# Constants

Status values:

	StatusActive = "active"
	StatusClosed = "closed"

A meeting that has never been configured has no status at all.

Roles:

	RoleAdmin  = "admin"
	RoleMember = "member"
*/
package models
