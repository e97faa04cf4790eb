// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"github.com/olegiv/azaya-go/internal/model"
	"github.com/olegiv/azaya-go/internal/panel"
)

// BlogCard describes one post in the list.
type BlogCard struct {
	ID          string
	Title       string
	StatusClass string
	StatusLabel string
	Featured    bool
	Thumbnail   string
	Category    string
	DateLabel   string
	Excerpt     string
	Edit        Action
	Delete      Action
}

// BlogList describes the post list panel.
type BlogList struct {
	Filters []FilterButton
	Cards   []BlogCard
	Empty   *EmptyState
	Error   *ErrorState
}

// NewBlogCard maps a post to its card.
func NewBlogCard(b model.Blog) BlogCard {
	return BlogCard{
		ID:          b.ID,
		Title:       b.Title,
		StatusClass: "status-" + b.Status,
		StatusLabel: StatusLabel(b.Status),
		Featured:    b.Featured,
		Thumbnail:   b.Thumbnail,
		Category:    b.Category(),
		DateLabel:   formatDate(b.PublishedAt(), "No date"),
		Excerpt:     Excerpt(b.Content, 120),
		Edit: Action{
			Label:  "Edit",
			Icon:   "bi-pencil",
			URL:    BlogEditURL(b.ID),
			Method: "GET",
			Style:  "outline-primary",
		},
		Delete: Action{
			Label:   "Delete",
			Icon:    "bi-trash",
			URL:     BlogDeleteURL(b.ID),
			Method:  "POST",
			Style:   "outline-danger",
			Confirm: `Are you sure you want to delete "` + b.Title + `"?`,
		},
	}
}

func blogFilters(active string) []FilterButton {
	labels := map[string]string{
		panel.FilterAll:       "All",
		model.StatusPublished: "Published",
		model.StatusDraft:     "Drafts",
		panel.FilterFeatured:  "Featured",
	}
	out := make([]FilterButton, 0, len(panel.BlogFilters))
	for _, f := range panel.BlogFilters {
		out = append(out, FilterButton{Label: labels[f], URL: BlogsURL(f), Active: f == active})
	}
	return out
}

// NewBlogList filters blogs and maps them to the list description. An empty
// result gets a call to action instead of a blank area.
func NewBlogList(blogs []model.Blog, filter string) BlogList {
	if filter == "" {
		filter = panel.FilterAll
	}
	list := BlogList{Filters: blogFilters(filter)}

	filtered := panel.FilterBlogs(blogs, filter)
	if len(filtered) == 0 {
		what := "blogs"
		if filter != panel.FilterAll {
			what = filter + " blogs"
		}
		list.Empty = &EmptyState{
			Icon:    "bi-inbox",
			Title:   "No " + what + " yet",
			Message: "Start by adding your first blog post!",
			Action: &Action{
				Label:  "Add New Blog",
				Icon:   "bi-plus-circle",
				URL:    URLBlogNew,
				Method: "GET",
				Style:  "primary",
			},
		}
		return list
	}

	list.Cards = make([]BlogCard, 0, len(filtered))
	for _, b := range filtered {
		list.Cards = append(list.Cards, NewBlogCard(b))
	}
	return list
}

// BlogListError describes a failed list load with a retry action.
func BlogListError(filter string, err error) BlogList {
	if filter == "" {
		filter = panel.FilterAll
	}
	return BlogList{
		Filters: blogFilters(filter),
		Error: &ErrorState{
			Title:   "Error loading blogs",
			Message: errorText(err),
			Retry: Action{
				Label:  "Retry",
				Icon:   "bi-arrow-clockwise",
				URL:    BlogsURL(filter),
				Method: "GET",
				Style:  "primary",
			},
		},
	}
}

func errorText(err error) string {
	if err == nil {
		return "Unknown error"
	}
	return err.Error()
}
