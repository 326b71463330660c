// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/volunteer-portal/cliparse"
	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/handlers"
	"github.com/danielhkuo/volunteer-portal/metrics"
	"github.com/danielhkuo/volunteer-portal/middleware"
)

// NewRouter registers every route and wraps the mux with session handling.
func NewRouter(store *docstore.Store, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	meetingHandler := handlers.NewMeetingHandler(store, cfg)
	votingHandler := handlers.NewVotingHandler(store, cfg)
	attendanceHandler := handlers.NewAttendanceHandler(store, cfg)
	resultsHandler := handlers.NewResultsHandler(store, cfg)
	authHandler := handlers.NewAuthHandler(store, cfg)
	noticeHandler := handlers.NewNoticeHandler(store, cfg)
	teamHandler := handlers.NewTeamHandler(store, cfg)
	planningHandler := handlers.NewPlanningHandler(store, cfg)
	dashboardHandler := handlers.NewDashboardHandler(store, cfg)

	// Public writes share one per-IP limiter
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxy)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Sessions
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(limiter.Limit(authHandler.Login)))

	// Meeting lifecycle (admin)
	mux.HandleFunc("GET /meeting", middleware.WithLogging(meetingHandler.GetMeeting))
	mux.HandleFunc("PUT /meeting", middleware.WithLogging(middleware.RequireAdmin(meetingHandler.Configure)))
	mux.HandleFunc("POST /meeting/finalize", middleware.WithLogging(middleware.RequireAdmin(meetingHandler.Finalize)))

	// Voting and attendance (members or self-declared names)
	mux.HandleFunc("POST /meeting/ballots", middleware.WithLogging(limiter.Limit(votingHandler.SubmitBallot)))
	mux.HandleFunc("GET /meeting/my-ballot", middleware.WithLogging(votingHandler.GetMyBallot))
	mux.HandleFunc("GET /meeting/tally", middleware.WithLogging(meetingHandler.Tally))
	mux.HandleFunc("GET /meeting/ballot-count", middleware.WithLogging(meetingHandler.GetBallotCount))
	mux.HandleFunc("POST /meeting/attendance", middleware.WithLogging(limiter.Limit(attendanceHandler.Submit)))
	mux.HandleFunc("GET /meeting/attendance", middleware.WithLogging(middleware.RequireMember(attendanceHandler.Summary)))

	// Archives
	mux.HandleFunc("GET /results", middleware.WithLogging(middleware.RequireMember(resultsHandler.ListResults)))
	mux.HandleFunc("GET /results/{id}", middleware.WithLogging(resultsHandler.GetResult))

	// Notice board
	mux.HandleFunc("GET /notices", middleware.WithLogging(noticeHandler.List))
	mux.HandleFunc("POST /notices", middleware.WithLogging(middleware.RequireMember(noticeHandler.Post)))
	mux.HandleFunc("POST /notices/{id}/pin", middleware.WithLogging(middleware.RequireAdmin(noticeHandler.TogglePin)))
	mux.HandleFunc("POST /notices/{id}/comments", middleware.WithLogging(limiter.Limit(noticeHandler.Comment)))

	// Team rosters
	mux.HandleFunc("GET /teams", middleware.WithLogging(middleware.RequireMember(teamHandler.List)))
	mux.HandleFunc("POST /teams", middleware.WithLogging(middleware.RequireMember(teamHandler.Add)))

	// Planning
	mux.HandleFunc("GET /planning", middleware.WithLogging(middleware.RequireMember(planningHandler.ListPlans)))
	mux.HandleFunc("POST /planning", middleware.WithLogging(middleware.RequireMember(planningHandler.AddPlan)))
	mux.HandleFunc("GET /next-meetings", middleware.WithLogging(middleware.RequireMember(planningHandler.ListNextMeetings)))
	mux.HandleFunc("POST /next-meetings", middleware.WithLogging(middleware.RequireMember(planningHandler.AddNextMeeting)))

	// Dashboard and reports
	mux.HandleFunc("GET /dashboard", middleware.WithLogging(middleware.RequireMember(dashboardHandler.Dashboard)))
	mux.HandleFunc("GET /reports/teams", middleware.WithLogging(middleware.RequireMember(dashboardHandler.TeamReport)))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("volunteer-portal API v1"))
	})

	return middleware.WithIdentity(cfg.SessionSecret, mux)
}
