// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Volunteer Portal API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints and wraps it
with the session middleware:

	handler := router.NewRouter(store, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Sessions (rate limited):

	POST /auth/login - Mobile and password for a 24h session token

Meeting lifecycle (admin):

	GET  /meeting          - Current configuration (public)
	PUT  /meeting          - Configure the current meeting
	POST /meeting/finalize - Archive winners and close voting

Voting (members, or anonymous with a name; writes are rate limited):

	POST /meeting/ballots      - Submit ballot
	GET  /meeting/my-ballot    - Own ballot for the current meeting
	GET  /meeting/tally        - Live tally
	GET  /meeting/ballot-count - Ballot count
	POST /meeting/attendance   - Attendance answer
	GET  /meeting/attendance   - Attendance summary (member)

Archives:

	GET /results      - All finalized meetings (member)
	GET /results/{id} - One finalized meeting

Notice board and team rosters:

	GET  /notices               - Pinned first
	POST /notices               - Post (member)
	POST /notices/{id}/pin      - Toggle pin (admin)
	POST /notices/{id}/comments - Comment
	GET  /teams?team=           - Roster (member)
	POST /teams                 - Add entry (member)

Planning, dashboard and reports (member):

	GET  /planning       - Plans with progress
	POST /planning       - Save a plan (progress 0-100)
	GET  /next-meetings  - Planned meetings, oldest first
	POST /next-meetings  - Schedule a meeting
	GET  /dashboard      - Collection counts
	GET  /reports/teams  - Roster entries per team

Sessions travel as "Authorization: Bearer <token>".
*/
package router
