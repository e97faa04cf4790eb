// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package panel holds the admin dashboard UI state and its transitions.
// State is a plain value: every transition returns a new State, and handlers
// persist it in the session between requests.
package panel

import (
	"encoding/json"

	"github.com/olegiv/azaya-go/internal/model"
)

// Panel identifies one top-level admin view. Exactly one is active.
type Panel string

// Panels.
const (
	PanelList     Panel = "list"
	PanelAdd      Panel = "add"
	PanelUsers    Panel = "users"
	PanelComments Panel = "comments"
)

// Panels lists every panel in navigation order.
var Panels = []Panel{PanelList, PanelAdd, PanelUsers, PanelComments}

// ParsePanel returns the panel named s.
func ParsePanel(s string) (Panel, bool) {
	for _, p := range Panels {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// State is the dashboard UI state of one admin session.
type State struct {
	Panel      Panel  `json:"panel"`
	Filter     string `json:"filter"`
	UserFilter string `json:"userFilter"`
	// CommentBlogID limits the comments panel to one post when set.
	CommentBlogID string `json:"commentBlogId,omitempty"`
	// EditID is set only while the add panel shows a loaded post.
	EditID       string `json:"editId,omitempty"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	ContentImage string `json:"contentImage,omitempty"`
	Form         Form   `json:"form"`
}

// NewState returns the state of a fresh login: the post list, unfiltered.
func NewState() State {
	return State{
		Panel:      PanelList,
		Filter:     FilterAll,
		UserFilter: UserFilterAll,
		Form:       NewForm(),
	}
}

// Editing reports whether the add panel holds a loaded post.
func (s State) Editing() bool {
	return s.EditID != ""
}

// ResetForm clears the form, the edit session and both image buffers.
func (s State) ResetForm() State {
	s.EditID = ""
	s.Thumbnail = ""
	s.ContentImage = ""
	s.Form = NewForm()
	return s
}

// Switch activates p. Entering the add panel always starts from an empty
// form; leaving it drops any edit session so EditID never outlives the form.
func (s State) Switch(p Panel) State {
	if _, ok := ParsePanel(string(p)); !ok {
		p = PanelList
	}
	if p == PanelAdd || s.Panel == PanelAdd {
		s = s.ResetForm()
	}
	s.Panel = p
	return s
}

// SetFilter selects the post list filter. Empty means all; any other value is
// kept as is and matched against the post status by FilterBlogs.
func (s State) SetFilter(f string) State {
	if f == "" {
		f = FilterAll
	}
	s.Filter = f
	return s
}

// SetUserFilter selects the user list filter; unknown values select all.
func (s State) SetUserFilter(f string) State {
	if !validUserFilter(f) {
		f = UserFilterAll
	}
	s.UserFilter = f
	return s
}

// BeginEdit opens blog in the add panel. known lists the category options
// the editor offers; a category outside it is carried in NewCategory.
func (s State) BeginEdit(blog model.Blog, known []string) State {
	s = s.Switch(PanelAdd)
	s.EditID = blog.ID
	s.Thumbnail = blog.Thumbnail
	s.Form = FormFromBlog(blog, known)
	return s
}

// Encode serializes the state for the session.
func (s State) Encode() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeState restores a state from the session. Missing or unreadable data
// yields NewState.
func DecodeState(raw string) State {
	if raw == "" {
		return NewState()
	}
	s := NewState()
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return NewState()
	}
	if _, ok := ParsePanel(string(s.Panel)); !ok {
		s.Panel = PanelList
	}
	if s.Panel != PanelAdd {
		s.EditID = ""
	}
	return s
}
