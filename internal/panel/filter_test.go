// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olegiv/azaya-go/internal/model"
)

func sampleBlogs() []model.Blog {
	return []model.Blog{
		{ID: "1", Status: model.StatusPublished, Featured: true},
		{ID: "2", Status: model.StatusPublished},
		{ID: "3", Status: model.StatusDraft, Featured: true},
		{ID: "4", Status: model.StatusArchived},
	}
}

func ids(blogs []model.Blog) []string {
	out := []string{}
	for _, b := range blogs {
		out = append(out, b.ID)
	}
	return out
}

func TestFilterBlogs(t *testing.T) {
	tests := []struct {
		filter string
		want   []string
	}{
		{FilterAll, []string{"1", "2", "3", "4"}},
		{"", []string{"1", "2", "3", "4"}},
		{FilterFeatured, []string{"1", "3"}},
		{model.StatusPublished, []string{"1", "2"}},
		{model.StatusDraft, []string{"3"}},
		{"scheduled", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterBlogs(sampleBlogs(), tt.filter)))
		})
	}
}

func TestFilterBlogs_FeaturedIgnoresStatus(t *testing.T) {
	for _, b := range FilterBlogs(sampleBlogs(), FilterFeatured) {
		assert.True(t, b.Featured)
	}
}

func TestFilterUsers(t *testing.T) {
	users := []model.User{
		{ID: "none"},
		{ID: "contact", TotalContacts: 2},
		{ID: "comment", TotalComments: 1},
		{ID: "both", TotalContacts: 1, TotalComments: 3},
	}
	uid := func(us []model.User) []string {
		out := []string{}
		for _, u := range us {
			out = append(out, u.ID)
		}
		return out
	}

	assert.Equal(t, []string{"none", "contact", "comment", "both"}, uid(FilterUsers(users, UserFilterAll)))
	assert.Equal(t, []string{"contact", "both"}, uid(FilterUsers(users, UserFilterContacts)))
	assert.Equal(t, []string{"comment", "both"}, uid(FilterUsers(users, UserFilterComments)))
	assert.Equal(t, []string{"both"}, uid(FilterUsers(users, UserFilterBoth)))
	assert.Len(t, FilterUsers(users, "unknown"), 4)
}
