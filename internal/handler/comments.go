// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/azaya-go/internal/panel"
	"github.com/olegiv/azaya-go/internal/view"
)

// CommentsData is the comments panel model.
type CommentsData struct {
	List       view.CommentList
	TotalLabel string
}

// ListComments handles GET /admin/comments. The blogId query narrows the
// list to one post; an empty value shows all comments.
func (h *AdminHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	st := h.state(r).Switch(panel.PanelComments)
	if q := r.URL.Query(); q.Has("blogId") {
		st.CommentBlogID = q.Get("blogId")
	}
	h.saveState(r, st)

	ctx := r.Context()
	tok := token(r)

	comments, err := h.api.ListComments(ctx, tok, st.CommentBlogID)
	if h.unauthorized(w, r, err) {
		return
	}

	data := CommentsData{}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load comments", "blog_id", st.CommentBlogID, "error", err)
		data.List = view.CommentListError(st.CommentBlogID, err)
	} else {
		// The post selector is optional; a failed lookup leaves it empty.
		blogs, berr := h.api.ListBlogs(ctx, tok)
		if h.unauthorized(w, r, berr) {
			return
		}
		data.List = view.NewCommentList(comments, blogs, st.CommentBlogID)
	}

	stats, err := h.api.CommentStats(ctx, tok)
	if h.unauthorized(w, r, err) {
		return
	}
	if err != nil {
		h.logger.WarnContext(ctx, "failed to load comment stats", "error", err)
	} else {
		data.TotalLabel = "Total Comments: " + strconv.Itoa(stats.Total)
		h.storeStats(r, stats)
	}

	h.render(w, r, "admin/comments", h.pageData(r, st, "Comments", data))
}

// DeleteComment handles POST /admin/comments/{userID}/{commentID}/delete and
// returns to the comments panel, which re-fetches the list and stats.
func (h *AdminHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	commentID := chi.URLParam(r, "commentID")
	back := view.CommentsURL(h.state(r).CommentBlogID)

	err := h.api.DeleteComment(r.Context(), token(r), userID, commentID)
	if h.unauthorized(w, r, err) {
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to delete comment",
			"user_id", userID, "comment_id", commentID, "error", err)
		h.flashError(w, r, back, panel.MsgCommentDelFail)
		return
	}

	h.logger.InfoContext(r.Context(), "comment deleted", "user_id", userID, "comment_id", commentID)
	h.flashSuccess(w, r, back, panel.MsgCommentDeleted)
}
