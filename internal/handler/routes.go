// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mount registers the dashboard on r, which is mounted at /admin. guard
// protects every route except the login page; loginLimit, if not nil, wraps
// the login POST.
func (h *AdminHandler) Mount(r chi.Router, guard, loginLimit func(http.Handler) http.Handler) {
	r.Get(RouteLogin, h.LoginForm)
	if loginLimit != nil {
		r.With(loginLimit).Post(RouteLogin, h.Login)
	} else {
		r.Post(RouteLogin, h.Login)
	}

	r.Group(func(r chi.Router) {
		r.Use(guard)

		r.Get("/", h.Home)
		r.Post(RouteLogout, h.Logout)
		r.Get("/stats", h.Stats)

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", h.ListBlogs)
			r.Get("/new", h.NewBlog)
			r.Get("/editor", h.Editor)
			r.Post("/editor", h.SubmitEditor)
			r.Post("/cancel", h.CancelEdit)
			r.Get("/{id}/edit", h.EditBlog)
			r.Post("/{id}/delete", h.DeleteBlog)
		})

		r.Get("/comments", h.ListComments)
		r.Post("/comments/{userID}/{commentID}/delete", h.DeleteComment)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Get("/{id}", h.ShowUser)
			r.Post("/{id}/submissions/{submissionID}/read", h.MarkSubmissionRead)
			r.Post("/{id}/submissions/{submissionID}/delete", h.DeleteSubmission)
			r.Post("/{id}/comments/{commentID}/delete", h.DeleteUserComment)
		})
	})
}
