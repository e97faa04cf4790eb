// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers of the mail relay and the admin
// dashboard.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/azaya-go/internal/apiclient"
	"github.com/olegiv/azaya-go/internal/middleware"
	"github.com/olegiv/azaya-go/internal/model"
	"github.com/olegiv/azaya-go/internal/panel"
	"github.com/olegiv/azaya-go/internal/render"
	"github.com/olegiv/azaya-go/internal/session"
	"github.com/olegiv/azaya-go/internal/view"
)

// API is the remote blog, comment and user service as the dashboard uses it.
type API interface {
	Login(ctx context.Context, creds apiclient.Credentials) (string, error)

	ListBlogs(ctx context.Context, token string) ([]model.Blog, error)
	GetBlog(ctx context.Context, token, id string) (model.Blog, error)
	CreateBlog(ctx context.Context, token string, blog model.Blog) error
	UpdateBlog(ctx context.Context, token, id string, blog model.Blog) error
	DeleteBlog(ctx context.Context, token, id string) error

	ListComments(ctx context.Context, token, blogID string) ([]model.Comment, error)
	CommentStats(ctx context.Context, token string) (model.CommentStats, error)
	DeleteComment(ctx context.Context, token, userID, commentID string) error

	ListUsers(ctx context.Context, token string) ([]model.User, error)
	GetUser(ctx context.Context, token, id string) (model.User, error)
	UpdateSubmissionStatus(ctx context.Context, token, userID, submissionID, status string) error
	DeleteSubmission(ctx context.Context, token, userID, submissionID string) error
}

// StatsPoller runs the per-session comment stats refresh.
type StatsPoller interface {
	Start(ctx context.Context, token string, until time.Time) (string, error)
	Stop(ctx context.Context, id string)
	Refresh(ctx context.Context, id string)
	Store(ctx context.Context, id string, stats model.CommentStats)
	Latest(ctx context.Context, id string) (model.CommentStats, bool)
}

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	api               API
	renderer          *render.Renderer
	sessionManager    *scs.SessionManager
	stats             StatsPoller
	logger            *slog.Logger
	thumbnailMaxWidth int
}

// AdminConfig holds the dependencies of an AdminHandler.
type AdminConfig struct {
	API               API
	Renderer          *render.Renderer
	SessionManager    *scs.SessionManager
	Stats             StatsPoller
	Logger            *slog.Logger
	ThumbnailMaxWidth int
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(cfg AdminConfig) *AdminHandler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		api:               cfg.API,
		renderer:          cfg.Renderer,
		sessionManager:    cfg.SessionManager,
		stats:             cfg.Stats,
		logger:            logger,
		thumbnailMaxWidth: cfg.ThumbnailMaxWidth,
	}
}

// EndSession stops the stats poller of a session. It is the session guard's
// cleanup hook.
func (h *AdminHandler) EndSession(ctx context.Context, pollerID string) {
	if h.stats != nil {
		h.stats.Stop(ctx, pollerID)
	}
}

// logout ends the session: stops its poller and removes the login record,
// the panel state and the poller ID.
func (h *AdminHandler) logout(ctx context.Context) {
	h.EndSession(ctx, h.sessionManager.GetString(ctx, session.KeyPoller))
	session.Clear(ctx, h.sessionManager)
}

// token returns the API token of the current request.
func token(r *http.Request) string {
	rec, _ := middleware.GetRecord(r)
	return rec.Token
}

// unauthorized handles a rejected token the same way on every route: the
// session ends and the admin is sent to the login page. It reports whether
// err was a rejection, in which case the response is already written.
func (h *AdminHandler) unauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		return false
	}
	h.logger.InfoContext(r.Context(), "API rejected token, ending session")
	h.logout(r.Context())
	h.renderer.SetFlash(r, middleware.MsgSessionExpired, session.FlashWarning)
	http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
	return true
}

// state returns the panel state of the current session.
func (h *AdminHandler) state(r *http.Request) panel.State {
	return panel.DecodeState(h.sessionManager.GetString(r.Context(), session.KeyPanel))
}

// saveState stores st in the session.
func (h *AdminHandler) saveState(r *http.Request, st panel.State) {
	raw, err := st.Encode()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode panel state", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), session.KeyPanel, raw)
}

// pageData builds the layout data shared by every dashboard page.
func (h *AdminHandler) pageData(r *http.Request, st panel.State, title string, data any) render.TemplateData {
	rec, _ := middleware.GetRecord(r)

	var stats *model.CommentStats
	if h.stats != nil {
		if s, ok := h.stats.Latest(r.Context(), h.sessionManager.GetString(r.Context(), session.KeyPoller)); ok {
			stats = &s
		}
	}

	return render.TemplateData{
		Title: title,
		Nav:   view.BuildNav(st.Panel, rec.Email, stats),
		Data:  data,
	}
}

// render writes a dashboard page, logging template failures.
func (h *AdminHandler) render(w http.ResponseWriter, r *http.Request, name string, data render.TemplateData) {
	if err := h.renderer.Render(w, r, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// flashAndRedirect sets a flash message and redirects with 303.
func (h *AdminHandler) flashAndRedirect(w http.ResponseWriter, r *http.Request, url, message, kind string) {
	h.renderer.SetFlash(r, message, kind)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func (h *AdminHandler) flashError(w http.ResponseWriter, r *http.Request, url, message string) {
	h.flashAndRedirect(w, r, url, message, session.FlashError)
}

func (h *AdminHandler) flashSuccess(w http.ResponseWriter, r *http.Request, url, message string) {
	h.flashAndRedirect(w, r, url, message, session.FlashSuccess)
}

// refreshStats updates the navigation badge after a comment changed.
func (h *AdminHandler) refreshStats(r *http.Request) {
	if h.stats != nil {
		h.stats.Refresh(r.Context(), h.sessionManager.GetString(r.Context(), session.KeyPoller))
	}
}

// storeStats hands freshly fetched stats to the session's poller.
func (h *AdminHandler) storeStats(r *http.Request, stats model.CommentStats) {
	if h.stats != nil {
		h.stats.Store(r.Context(), h.sessionManager.GetString(r.Context(), session.KeyPoller), stats)
	}
}

// Home handles GET /admin by returning to the active panel.
func (h *AdminHandler) Home(w http.ResponseWriter, r *http.Request) {
	st := h.state(r)
	target := redirectBlogs
	switch st.Panel {
	case panel.PanelAdd:
		target = redirectEditor
	case panel.PanelUsers:
		target = redirectUsers
	case panel.PanelComments:
		target = view.CommentsURL(st.CommentBlogID)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Stats handles GET /admin/stats with the latest comment total as JSON.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	pollerID := h.sessionManager.GetString(r.Context(), session.KeyPoller)
	if h.stats != nil {
		if s, ok := h.stats.Latest(r.Context(), pollerID); ok {
			writeJSONSuccess(w, map[string]any{"total": s.Total})
			return
		}
	}

	s, err := h.api.CommentStats(r.Context(), token(r))
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			h.logout(r.Context())
			writeJSONError(w, http.StatusUnauthorized, "Session expired")
			return
		}
		h.logger.WarnContext(r.Context(), "failed to load comment stats", "error", err)
		writeJSONError(w, http.StatusBadGateway, "Failed to load stats")
		return
	}
	writeJSONSuccess(w, map[string]any{"total": s.Total})
}
