// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/olegiv/azaya-go/internal/model"
)

// ListComments returns all comments, or only those of blogID when set.
func (c *Client) ListComments(ctx context.Context, token, blogID string) ([]model.Comment, error) {
	path := "/api/comments/admin/all"
	if blogID != "" {
		path += "?" + url.Values{"blogId": {blogID}}.Encode()
	}

	var resp struct {
		Comments []model.Comment `json:"comments"`
	}
	if err := c.do(ctx, token, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Comments == nil {
		resp.Comments = []model.Comment{}
	}
	return resp.Comments, nil
}

// CommentStats returns comment totals.
func (c *Client) CommentStats(ctx context.Context, token string) (model.CommentStats, error) {
	var resp struct {
		Stats model.CommentStats `json:"stats"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/api/comments/admin/stats", nil, &resp); err != nil {
		return model.CommentStats{}, err
	}
	return resp.Stats, nil
}

// DeleteComment removes a comment owned by userID.
func (c *Client) DeleteComment(ctx context.Context, token, userID, commentID string) error {
	path := "/api/comments/admin/" + url.PathEscape(userID) + "/" + url.PathEscape(commentID)
	return c.do(ctx, token, http.MethodDelete, path, nil, nil)
}
