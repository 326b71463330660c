// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/volunteer-portal/cliparse"
	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/identity"
	"github.com/danielhkuo/volunteer-portal/middleware"
	"github.com/danielhkuo/volunteer-portal/models"
)

const (
	collectionNotices  = "notices"
	collectionComments = "notice_comments"
)

// Comments are stored one document each so concurrent comments never
// overwrite one another.
type storedComment struct {
	NoticeID string `json:"notice_id"`
	models.Comment
}

type NoticeHandler struct {
	store *docstore.Store
	cfg   cliparse.Config
}

func NewNoticeHandler(store *docstore.Store, cfg cliparse.Config) *NoticeHandler {
	return &NoticeHandler{store: store, cfg: cfg}
}

// List handles GET /notices
// Pinned notices come first; otherwise oldest first.
func (h *NoticeHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.store.Query(r.Context(), collectionNotices)
	if err != nil {
		slog.Error("failed to query notices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	notices := make([]models.Notice, 0, len(docs))
	index := make(map[string]int, len(docs))
	for _, d := range docs {
		var n models.Notice
		if err := d.Decode(&n); err != nil {
			slog.Error("failed to decode notice", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		n.Comments = []models.Comment{}
		index[n.ID] = len(notices)
		notices = append(notices, n)
	}

	commentDocs, err := h.store.Query(r.Context(), collectionComments)
	if err != nil {
		slog.Error("failed to query comments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	for _, d := range commentDocs {
		var c storedComment
		if err := d.Decode(&c); err != nil {
			slog.Error("failed to decode comment", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if i, ok := index[c.NoticeID]; ok {
			notices[i].Comments = append(notices[i].Comments, c.Comment)
		}
	}

	slices.SortStableFunc(notices, func(a, b models.Notice) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		return a.PostedAt.Compare(b.PostedAt)
	})

	middleware.JSONResponse(w, http.StatusOK, notices)
}

// Post handles POST /notices (member)
func (h *NoticeHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req models.PostNoticeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	author, _ := identity.FromContext(r.Context())
	n := models.Notice{
		ID:       uuid.NewString(),
		Text:     text,
		PostedBy: author.DisplayName,
		Comments: []models.Comment{},
		PostedAt: time.Now().UTC(),
	}

	if err := h.store.Create(r.Context(), collectionNotices, n.ID, n); err != nil {
		slog.Error("failed to save notice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to post notice")
		return
	}

	slog.Info("notice posted", "notice_id", n.ID, "posted_by", n.PostedBy)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{ID: n.ID})
}

// TogglePin handles POST /notices/{id}/pin (admin)
func (h *NoticeHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	n, ok := h.load(w, r)
	if !ok {
		return
	}

	n.Pinned = !n.Pinned
	if err := h.store.Set(r.Context(), collectionNotices, n.ID, n); err != nil {
		slog.Error("failed to update notice", "error", err, "notice_id", n.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("notice pin toggled", "notice_id", n.ID, "pinned", n.Pinned)

	middleware.JSONResponse(w, http.StatusOK, n)
}

// Comment handles POST /notices/{id}/comments
func (h *NoticeHandler) Comment(w http.ResponseWriter, r *http.Request) {
	var req models.CommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	author := identity.Resolve(r.Context(), req.Name)
	if !author.Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	n, ok := h.load(w, r)
	if !ok {
		return
	}

	id, err := h.store.Add(r.Context(), collectionComments, storedComment{
		NoticeID: n.ID,
		Comment: models.Comment{
			Author:   author.DisplayName,
			Text:     text,
			PostedAt: time.Now().UTC(),
		},
	})
	if err != nil {
		slog.Error("failed to save comment", "error", err, "notice_id", n.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{ID: id})
}

func (h *NoticeHandler) load(w http.ResponseWriter, r *http.Request) (models.Notice, bool) {
	noticeID := r.PathValue("id")
	if noticeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "notice_id is required")
		return models.Notice{}, false
	}

	var n models.Notice
	err := h.store.Get(r.Context(), collectionNotices, noticeID, &n)
	if errors.Is(err, docstore.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Notice not found")
		return models.Notice{}, false
	}
	if err != nil {
		slog.Error("failed to load notice", "error", err, "notice_id", noticeID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Notice{}, false
	}
	return n, true
}
