// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"strconv"

	"github.com/olegiv/azaya-go/internal/model"
	"github.com/olegiv/azaya-go/internal/panel"
)

// UserRow describes one user in the list.
type UserRow struct {
	ID            string
	FullName      string
	Email         string
	Company       string
	Phone         string
	ContactsLabel string
	CommentsLabel string
	LastActive    string
	URL           string
}

// UserList describes the users panel.
type UserList struct {
	Filters    []FilterButton
	TotalLabel string
	Rows       []UserRow
	Empty      *EmptyState
	Error      *ErrorState
}

// NewUserRow maps a user to its row.
func NewUserRow(u model.User) UserRow {
	return UserRow{
		ID:            u.ID,
		FullName:      u.FullName(),
		Email:         u.Email,
		Company:       u.Company,
		Phone:         u.Phone,
		ContactsLabel: plural(u.TotalContacts, "Contact", "Contacts"),
		CommentsLabel: plural(u.TotalComments, "Comment", "Comments"),
		LastActive:    "Last active: " + formatDate(u.LastInteraction, "Never"),
		URL:           UserURL(u.ID),
	}
}

func userFilters(active string) []FilterButton {
	labels := map[string]string{
		panel.UserFilterAll:      "All Users",
		panel.UserFilterContacts: "With Contacts",
		panel.UserFilterComments: "With Comments",
		panel.UserFilterBoth:     "Both",
	}
	out := make([]FilterButton, 0, len(panel.UserFilters))
	for _, f := range panel.UserFilters {
		out = append(out, FilterButton{Label: labels[f], URL: UsersURL(f), Active: f == active})
	}
	return out
}

// NewUserList filters users and maps them to rows. The total counts the
// filtered list.
func NewUserList(users []model.User, filter string) UserList {
	if filter == "" {
		filter = panel.UserFilterAll
	}
	filtered := panel.FilterUsers(users, filter)
	list := UserList{
		Filters:    userFilters(filter),
		TotalLabel: "Total Users: " + strconv.Itoa(len(filtered)),
	}
	if len(filtered) == 0 {
		msg := "Users appear here after they contact you or comment."
		if filter != panel.UserFilterAll {
			msg = "No users match this filter."
		}
		list.Empty = &EmptyState{Icon: "bi-people", Title: "No users found", Message: msg}
		return list
	}
	list.Rows = make([]UserRow, 0, len(filtered))
	for _, u := range filtered {
		list.Rows = append(list.Rows, NewUserRow(u))
	}
	return list
}

// UserListError describes a failed users load.
func UserListError(filter string, err error) UserList {
	if filter == "" {
		filter = panel.UserFilterAll
	}
	return UserList{
		Filters: userFilters(filter),
		Error: &ErrorState{
			Title:   "Error loading users",
			Message: errorText(err),
			Retry: Action{
				Label:  "Retry",
				Icon:   "bi-arrow-clockwise",
				URL:    UsersURL(filter),
				Method: "GET",
				Style:  "primary",
			},
		},
	}
}

// SubmissionItem is one contact message on a profile.
type SubmissionItem struct {
	ID          string
	Subject     string
	Message     string
	DateLabel   string
	Status      string
	StatusLabel string
	MarkRead    *Action
	Delete      Action
}

// ProfileComment is one comment on a profile.
type ProfileComment struct {
	ID        string
	BlogTitle string
	Comment   string
	DateLabel string
	Delete    Action
}

// UserProfile describes a user's detail view.
type UserProfile struct {
	ID               string
	FullName         string
	Email            string
	Phone            string
	Company          string
	TotalContacts    int
	TotalComments    int
	SubmissionsTitle string
	Submissions      []SubmissionItem
	CommentsTitle    string
	Comments         []ProfileComment
	Back             Action
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// NewUserProfile maps a user to the profile view. Read submissions get no
// mark-as-read action.
func NewUserProfile(u model.User) UserProfile {
	p := UserProfile{
		ID:               u.ID,
		FullName:         u.FullName(),
		Email:            u.Email,
		Phone:            orDash(u.Phone),
		Company:          orDash(u.Company),
		TotalContacts:    u.TotalContacts,
		TotalComments:    u.TotalComments,
		SubmissionsTitle: "Contact Submissions (" + strconv.Itoa(len(u.ContactSubmissions)) + ")",
		CommentsTitle:    "Blog Comments (" + strconv.Itoa(len(u.Comments)) + ")",
		Back: Action{
			Label:  "Back to users",
			Icon:   "bi-arrow-left",
			URL:    URLUsers,
			Method: "GET",
			Style:  "outline-secondary",
		},
	}

	for _, s := range u.ContactSubmissions {
		item := SubmissionItem{
			ID:          s.ID,
			Subject:     s.Subject,
			Message:     s.Message,
			DateLabel:   formatDateTime(s.SubmittedAt, "Unknown date"),
			Status:      s.Status,
			StatusLabel: StatusLabel(s.Status),
			Delete: Action{
				Label:   "Delete",
				Icon:    "bi-trash",
				URL:     SubmissionDeleteURL(u.ID, s.ID),
				Method:  "POST",
				Style:   "outline-danger",
				Confirm: "Are you sure you want to delete this submission?",
			},
		}
		if s.Status != model.SubmissionRead {
			item.MarkRead = &Action{
				Label:  "Mark as read",
				Icon:   "bi-check2",
				URL:    SubmissionReadURL(u.ID, s.ID),
				Method: "POST",
				Style:  "outline-success",
			}
		}
		p.Submissions = append(p.Submissions, item)
	}

	for _, c := range u.Comments {
		title := c.BlogTitle
		if title == "" {
			title = model.DefaultBlogTitle
		}
		p.Comments = append(p.Comments, ProfileComment{
			ID:        c.ID,
			BlogTitle: title,
			Comment:   c.Comment,
			DateLabel: formatDateTime(c.SubmittedAt, "Unknown date"),
			Delete: Action{
				Label:   "Delete",
				Icon:    "bi-trash",
				URL:     UserCommentDeleteURL(u.ID, c.ID),
				Method:  "POST",
				Style:   "outline-danger",
				Confirm: "Are you sure you want to delete this comment?",
			},
		})
	}
	return p
}
