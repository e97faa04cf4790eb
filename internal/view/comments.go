// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"github.com/olegiv/azaya-go/internal/model"
)

// CommentCard describes one comment in the moderation panel.
type CommentCard struct {
	ID        string
	Name      string
	Email     string
	BlogTitle string
	Comment   string
	DateLabel string
	IPAddress string
	Delete    Action
}

// CommentList describes the comments panel.
type CommentList struct {
	BlogID string
	// Posts lists the posts a moderator can narrow the list to.
	Posts []FilterButton
	Cards []CommentCard
	Empty *EmptyState
	Error *ErrorState
}

// NewCommentCard maps a comment to its card.
func NewCommentCard(c model.Comment) CommentCard {
	return CommentCard{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		BlogTitle: c.BlogTitle,
		Comment:   c.Comment,
		DateLabel: "Submitted: " + formatDateTime(c.SubmittedAt, "Unknown date"),
		IPAddress: c.IPAddress,
		Delete: Action{
			Label:   "Delete",
			Icon:    "bi-trash",
			URL:     CommentDeleteURL(c.UserID, c.ID),
			Method:  "POST",
			Style:   "outline-danger",
			Confirm: "Are you sure you want to delete this comment?",
		},
	}
}

func postFilters(blogs []model.Blog, blogID string) []FilterButton {
	out := make([]FilterButton, 0, len(blogs)+1)
	out = append(out, FilterButton{Label: "All posts", URL: CommentsURL(""), Active: blogID == ""})
	for _, b := range blogs {
		if b.ID == "" {
			continue
		}
		out = append(out, FilterButton{Label: b.Title, URL: CommentsURL(b.ID), Active: b.ID == blogID})
	}
	return out
}

// NewCommentList maps comments to the moderation panel. blogs feeds the
// per-post selector and may be nil.
func NewCommentList(comments []model.Comment, blogs []model.Blog, blogID string) CommentList {
	list := CommentList{BlogID: blogID, Posts: postFilters(blogs, blogID)}
	if len(comments) == 0 {
		list.Empty = &EmptyState{
			Icon:    "bi-chat-square",
			Title:   "No comments found",
			Message: "New comments will appear here.",
		}
		return list
	}
	list.Cards = make([]CommentCard, 0, len(comments))
	for _, c := range comments {
		list.Cards = append(list.Cards, NewCommentCard(c))
	}
	return list
}

// CommentListError describes a failed comments load.
func CommentListError(blogID string, err error) CommentList {
	return CommentList{
		BlogID: blogID,
		Error: &ErrorState{
			Title:   "Error loading comments",
			Message: errorText(err),
			Retry: Action{
				Label:  "Retry",
				Icon:   "bi-arrow-clockwise",
				URL:    CommentsURL(blogID),
				Method: "GET",
				Style:  "primary",
			},
		},
	}
}
