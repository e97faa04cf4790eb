// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/azaya-go/internal/apiclient"
	"github.com/olegiv/azaya-go/internal/model"
	"github.com/olegiv/azaya-go/internal/panel"
	"github.com/olegiv/azaya-go/internal/view"
)

// ListUsers handles GET /admin/users. The filter query selects the
// membership filter; without it the session's last filter applies.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	st := h.state(r).Switch(panel.PanelUsers)
	if q := r.URL.Query(); q.Has("filter") {
		st = st.SetUserFilter(q.Get("filter"))
	}
	h.saveState(r, st)

	users, err := h.api.ListUsers(r.Context(), token(r))
	if h.unauthorized(w, r, err) {
		return
	}

	var list view.UserList
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load users", "error", err)
		list = view.UserListError(st.UserFilter, err)
	} else {
		list = view.NewUserList(users, st.UserFilter)
	}

	h.render(w, r, "admin/users", h.pageData(r, st, "Users", list))
}

// ShowUser handles GET /admin/users/{id}. The profile is always fetched
// fresh.
func (h *AdminHandler) ShowUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st := h.state(r).Switch(panel.PanelUsers)
	h.saveState(r, st)

	user, err := h.api.GetUser(r.Context(), token(r), id)
	if h.unauthorized(w, r, err) {
		return
	}
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			h.flashError(w, r, redirectUsers, msgUserNotFound)
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to load user", "user_id", id, "error", err)
		h.flashError(w, r, redirectUsers, msgUserLoadFail)
		return
	}

	h.render(w, r, "admin/user", h.pageData(r, st, user.FullName(), view.NewUserProfile(user)))
}

// userAction runs a profile mutation and returns to the users list, which
// reloads the aggregates.
func (h *AdminHandler) userAction(w http.ResponseWriter, r *http.Request, logMsg, okMsg, failMsg string, fn func(tok, userID, itemID string) error, itemParam string) {
	userID := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, itemParam)

	err := fn(token(r), userID, itemID)
	if h.unauthorized(w, r, err) {
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to "+logMsg, "user_id", userID, "item_id", itemID, "error", err)
		h.flashError(w, r, redirectUsers, failMsg)
		return
	}

	h.logger.InfoContext(r.Context(), logMsg, "user_id", userID, "item_id", itemID)
	h.flashSuccess(w, r, redirectUsers, okMsg)
}

// MarkSubmissionRead handles POST /admin/users/{id}/submissions/{submissionID}/read.
func (h *AdminHandler) MarkSubmissionRead(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, "mark submission read", panel.MsgStatusUpdated, panel.MsgStatusFailed,
		func(tok, userID, submissionID string) error {
			return h.api.UpdateSubmissionStatus(r.Context(), tok, userID, submissionID, model.SubmissionRead)
		}, "submissionID")
}

// DeleteSubmission handles POST /admin/users/{id}/submissions/{submissionID}/delete.
func (h *AdminHandler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, "delete submission", panel.MsgSubmissionGone, panel.MsgSubmissionFail,
		func(tok, userID, submissionID string) error {
			return h.api.DeleteSubmission(r.Context(), tok, userID, submissionID)
		}, "submissionID")
}

// DeleteUserComment handles POST /admin/users/{id}/comments/{commentID}/delete.
func (h *AdminHandler) DeleteUserComment(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, "delete comment", panel.MsgCommentDeleted, panel.MsgCommentDelFail,
		func(tok, userID, commentID string) error {
			if err := h.api.DeleteComment(r.Context(), tok, userID, commentID); err != nil {
				return err
			}
			h.refreshStats(r)
			return nil
		}, "commentID")
}
