// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"net/url"
	"path"
)

// Admin URLs used by view actions.
const (
	URLLogin     = "/admin/login"
	URLLogout    = "/admin/logout"
	URLBlogs     = "/admin/blogs"
	URLBlogNew   = "/admin/blogs/new"
	URLEditor    = "/admin/blogs/editor"
	URLCancel    = "/admin/blogs/cancel"
	URLComments  = "/admin/comments"
	URLUsers     = "/admin/users"
	URLStatsJSON = "/admin/stats"
)

func esc(s string) string {
	return url.PathEscape(s)
}

// BlogsURL returns the post list URL with a filter.
func BlogsURL(filter string) string {
	return URLBlogs + "?" + url.Values{"filter": {filter}}.Encode()
}

// BlogEditURL opens the editor for one post.
func BlogEditURL(id string) string {
	return path.Join(URLBlogs, esc(id), "edit")
}

// BlogDeleteURL deletes one post.
func BlogDeleteURL(id string) string {
	return path.Join(URLBlogs, esc(id), "delete")
}

// CommentsURL returns the comments panel URL, optionally for one post.
func CommentsURL(blogID string) string {
	if blogID == "" {
		return URLComments
	}
	return URLComments + "?" + url.Values{"blogId": {blogID}}.Encode()
}

// CommentDeleteURL deletes one comment.
func CommentDeleteURL(userID, commentID string) string {
	return path.Join(URLComments, esc(userID), esc(commentID), "delete")
}

// UsersURL returns the users panel URL with a filter.
func UsersURL(filter string) string {
	return URLUsers + "?" + url.Values{"filter": {filter}}.Encode()
}

// UserURL opens a user profile.
func UserURL(id string) string {
	return path.Join(URLUsers, esc(id))
}

// SubmissionReadURL marks a contact submission as read.
func SubmissionReadURL(userID, submissionID string) string {
	return path.Join(URLUsers, esc(userID), "submissions", esc(submissionID), "read")
}

// SubmissionDeleteURL deletes a contact submission.
func SubmissionDeleteURL(userID, submissionID string) string {
	return path.Join(URLUsers, esc(userID), "submissions", esc(submissionID), "delete")
}

// UserCommentDeleteURL deletes a comment from a user profile.
func UserCommentDeleteURL(userID, commentID string) string {
	return path.Join(URLUsers, esc(userID), "comments", esc(commentID), "delete")
}
