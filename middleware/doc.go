// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms), and
records the latency in the portal_http_request_duration_seconds histogram
under the matched route pattern.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and Authorization.

# Sessions

WithIdentity verifies an "Authorization: Bearer <jwt>" session token and
attaches the member to the request context. Requests without a token pass
through anonymously:

	handler := middleware.WithIdentity(cfg.SessionSecret, mux)

Gate individual routes on the attached identity:

	mux.HandleFunc("PUT /meeting", middleware.RequireAdmin(h.Configure))
	mux.HandleFunc("POST /notices", middleware.RequireMember(h.Post))

# Rate Limiting

RateLimiter keeps a token bucket per client IP (golang.org/x/time/rate):

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxy)
	mux.HandleFunc("POST /auth/login", limiter.Limit(h.Login))

Rejected requests get 429 with Retry-After.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the client IP. X-Forwarded-For and X-Real-IP are only read when the
server sits behind a trusted proxy (TRUST_PROXY); otherwise RemoteAddr is used:

	ip := middleware.GetClientIP(r, cfg.TrustProxy)

Used for rate limiting and for the salted IP hash stored with each ballot.
*/
package middleware
