// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/olegiv/azaya-go/internal/model"
)

func blogPath(id string) string {
	return "/api/blogs/" + url.PathEscape(id)
}

// ListBlogs returns every post; filtering happens locally.
func (c *Client) ListBlogs(ctx context.Context, token string) ([]model.Blog, error) {
	var blogs []model.Blog
	if err := c.do(ctx, token, http.MethodGet, "/api/blogs", nil, &blogs); err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []model.Blog{}
	}
	return blogs, nil
}

// GetBlog fetches one post by id.
func (c *Client) GetBlog(ctx context.Context, token, id string) (model.Blog, error) {
	var blog model.Blog
	if err := c.do(ctx, token, http.MethodGet, blogPath(id), nil, &blog); err != nil {
		return model.Blog{}, err
	}
	if blog.ID == "" {
		blog.ID = id
	}
	return blog, nil
}

// CreateBlog stores a new post.
func (c *Client) CreateBlog(ctx context.Context, token string, blog model.Blog) error {
	return c.do(ctx, token, http.MethodPost, "/api/blogs", blog, nil)
}

// UpdateBlog replaces the post with the given id with the full object.
func (c *Client) UpdateBlog(ctx context.Context, token, id string, blog model.Blog) error {
	return c.do(ctx, token, http.MethodPut, blogPath(id), blog, nil)
}

// DeleteBlog removes a post.
func (c *Client) DeleteBlog(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, blogPath(id), nil, nil)
}
