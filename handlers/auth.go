// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/volunteer-portal/auth"
	"github.com/danielhkuo/volunteer-portal/cliparse"
	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/members"
	"github.com/danielhkuo/volunteer-portal/metrics"
	"github.com/danielhkuo/volunteer-portal/middleware"
	"github.com/danielhkuo/volunteer-portal/models"
)

type AuthHandler struct {
	dir *members.Directory
	cfg cliparse.Config
}

func NewAuthHandler(store *docstore.Store, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{dir: members.NewDirectory(store), cfg: cfg}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Mobile) == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "mobile and password are required")
		return
	}

	m, err := h.dir.Authenticate(r.Context(), req.Mobile, req.Password)
	metrics.LoginsTotal.WithLabelValues(metrics.Outcome(err, nil, []error{
		members.ErrInvalidCredentials, members.ErrNotApproved, members.ErrBlocked,
	})).Inc()
	switch {
	case errors.Is(err, members.ErrInvalidCredentials):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid mobile number or password")
		return
	case errors.Is(err, members.ErrNotApproved):
		middleware.ErrorResponse(w, http.StatusForbidden, "Account not approved")
		return
	case errors.Is(err, members.ErrBlocked):
		middleware.ErrorResponse(w, http.StatusForbidden, "Account blocked")
		return
	case err != nil:
		slog.Error("failed to authenticate member", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := auth.MakeToken(m.ID, m.Name, m.Role, h.cfg.SessionSecret)
	if err != nil {
		slog.Error("failed to issue session token", "error", err, "member_id", m.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("member logged in", "member_id", m.ID, "role", m.Role)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:  token,
		UserID: m.ID,
		Name:   m.Name,
		Role:   m.Role,
	})
}
