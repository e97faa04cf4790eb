// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package panel

import (
	"github.com/olegiv/azaya-go/internal/model"
)

// Post list filters. Any other value is matched against the post status.
const (
	FilterAll      = "all"
	FilterFeatured = "featured"
)

// BlogFilters lists the filter buttons in display order.
var BlogFilters = []string{FilterAll, model.StatusPublished, model.StatusDraft, FilterFeatured}

// User list filters.
const (
	UserFilterAll      = "all"
	UserFilterContacts = "contacts"
	UserFilterComments = "comments"
	UserFilterBoth     = "both"
)

// UserFilters lists the user filter buttons in display order.
var UserFilters = []string{UserFilterAll, UserFilterContacts, UserFilterComments, UserFilterBoth}

func validUserFilter(f string) bool {
	switch f {
	case UserFilterAll, UserFilterContacts, UserFilterComments, UserFilterBoth:
		return true
	}
	return false
}

// FilterBlogs applies a post list filter. "featured" keeps featured posts of
// any status; any other value except "all" keeps exact status matches.
func FilterBlogs(blogs []model.Blog, filter string) []model.Blog {
	if filter == "" || filter == FilterAll {
		return blogs
	}
	out := make([]model.Blog, 0, len(blogs))
	for _, b := range blogs {
		var keep bool
		if filter == FilterFeatured {
			keep = b.Featured
		} else {
			keep = b.Status == filter
		}
		if keep {
			out = append(out, b)
		}
	}
	return out
}

// FilterUsers applies a membership filter to the user list.
func FilterUsers(users []model.User, filter string) []model.User {
	if !validUserFilter(filter) || filter == UserFilterAll {
		return users
	}
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		hasContacts := u.TotalContacts > 0
		hasComments := u.TotalComments > 0
		var keep bool
		switch filter {
		case UserFilterContacts:
			keep = hasContacts
		case UserFilterComments:
			keep = hasComments
		case UserFilterBoth:
			keep = hasContacts && hasComments
		}
		if keep {
			out = append(out, u)
		}
	}
	return out
}
