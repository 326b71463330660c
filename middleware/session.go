// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/volunteer-portal/auth"
	"github.com/danielhkuo/volunteer-portal/identity"
)

// WithIdentity attaches the member carried by an "Authorization: Bearer"
// session token to the request context. Requests without a token continue
// anonymously; a token that fails to verify is rejected.
func WithIdentity(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			slog.Warn("rejected session token", "path", r.URL.Path, "error", err)
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		ctx := identity.WithIdentity(r.Context(), identity.Member(claims.UserID, claims.Name, claims.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireMember rejects anonymous requests
func RequireMember(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identity.FromContext(r.Context()); !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Login required")
			return
		}
		next(w, r)
	}
}

// RequireAdmin rejects requests from anyone but an authenticated admin
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.FromContext(r.Context())
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Login required")
			return
		}
		if !id.IsAdmin() {
			ErrorResponse(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
