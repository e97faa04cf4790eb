// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/olegiv/azaya-go/internal/model"
)

func submissionPath(userID, submissionID string) string {
	return "/api/contact/" + url.PathEscape(userID) + "/" + url.PathEscape(submissionID)
}

// ListUsers returns the aggregate contact user list.
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	var resp struct {
		Users []model.User `json:"users"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/api/contact/users/all", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Users == nil {
		resp.Users = []model.User{}
	}
	return resp.Users, nil
}

// GetUser fetches one user profile with nested submissions and comments.
func (c *Client) GetUser(ctx context.Context, token, id string) (model.User, error) {
	var resp struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/api/contact/users/"+url.PathEscape(id), nil, &resp); err != nil {
		return model.User{}, err
	}
	return resp.User, nil
}

// UpdateSubmissionStatus sets the status of one contact submission.
func (c *Client) UpdateSubmissionStatus(ctx context.Context, token, userID, submissionID, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, token, http.MethodPatch, submissionPath(userID, submissionID)+"/status", body, nil)
}

// DeleteSubmission removes one contact submission.
func (c *Client) DeleteSubmission(ctx context.Context, token, userID, submissionID string) error {
	return c.do(ctx, token, http.MethodDelete, submissionPath(userID, submissionID), nil, nil)
}
