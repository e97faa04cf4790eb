// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package view maps dashboard records to view descriptions. Every function
// here is pure: the same records always yield the same description, and
// templates only render what a description holds.
package view

import (
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/olegiv/azaya-go/internal/model"
	"github.com/olegiv/azaya-go/internal/panel"
)

// Action is a button or link. POST actions render as a small form.
type Action struct {
	Label   string
	Icon    string
	URL     string
	Method  string // "GET" or "POST"
	Style   string // bootstrap button variant
	Confirm string // confirmation prompt, if any
}

// IsPost reports whether the action submits a form.
func (a Action) IsPost() bool {
	return a.Method == "POST"
}

// FilterButton is one entry of a filter bar.
type FilterButton struct {
	Label  string
	URL    string
	Active bool
}

// EmptyState is shown instead of an empty list.
type EmptyState struct {
	Icon    string
	Title   string
	Message string
	Action  *Action
}

// ErrorState is shown when a list could not be loaded.
type ErrorState struct {
	Title   string
	Message string
	Retry   Action
}

var titleCase = cases.Title(language.English)

// StatusLabel returns the display label of a post status.
func StatusLabel(status string) string {
	return titleCase.String(status)
}

func formatDate(t time.Time, fallback string) string {
	if t.IsZero() {
		return fallback
	}
	return t.Format("Jan 2, 2006")
}

func formatDateTime(t time.Time, fallback string) string {
	if t.IsZero() {
		return fallback
	}
	return t.Format("Jan 2, 2006, 03:04 PM")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}

// Nav is the dashboard navigation with its active entry.
type Nav struct {
	Items      []FilterButton
	AdminEmail string
	// CommentBadge is the latest comment total, empty until known.
	CommentBadge string
}

// BuildNav builds the navigation for the active panel.
func BuildNav(active panel.Panel, email string, stats *model.CommentStats) Nav {
	items := []struct {
		p     panel.Panel
		label string
		url   string
	}{
		{panel.PanelList, "All Blogs", URLBlogs},
		{panel.PanelAdd, "Add New", URLBlogNew},
		{panel.PanelUsers, "Users", URLUsers},
		{panel.PanelComments, "Comments", URLComments},
	}
	nav := Nav{AdminEmail: email}
	for _, it := range items {
		nav.Items = append(nav.Items, FilterButton{Label: it.label, URL: it.url, Active: it.p == active})
	}
	if stats != nil {
		nav.CommentBadge = strconv.Itoa(stats.Total)
	}
	return nav
}
