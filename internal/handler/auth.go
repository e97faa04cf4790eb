// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mileusna/useragent"

	"github.com/olegiv/azaya-go/internal/apiclient"
	"github.com/olegiv/azaya-go/internal/middleware"
	"github.com/olegiv/azaya-go/internal/panel"
	"github.com/olegiv/azaya-go/internal/render"
	"github.com/olegiv/azaya-go/internal/session"
)

// LoginData is the login page model.
type LoginData struct {
	Email string
}

// LoginForm renders the login page. A valid session goes straight to the
// dashboard.
func (h *AdminHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	raw := h.sessionManager.GetString(r.Context(), session.KeyRecord)
	if _, err := session.Check(raw, time.Now()); err == nil {
		http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
		return
	}

	data := render.TemplateData{
		Title: "Admin Login",
		Data:  LoginData{Email: h.sessionManager.PopString(r.Context(), "login_email")},
	}
	if err := h.renderer.Render(w, r, "auth/login", data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render login page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// clientAttrs describes the browser of a login attempt for the audit log.
func clientAttrs(r *http.Request) []any {
	ua := useragent.Parse(r.UserAgent())
	device := "desktop"
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}
	return []any{
		"ip", middleware.ClientIP(r),
		"browser", ua.Name,
		"os", ua.OS,
		"device", device,
	}
}

// Login handles the login form. The remote API checks the credentials and
// returns the token kept in the session record.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flashError(w, r, redirectLogin, msgInvalidForm)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.sessionManager.Put(r.Context(), "login_email", email)
		h.flashError(w, r, redirectLogin, msgLoginRequired)
		return
	}

	tok, err := h.api.Login(r.Context(), apiclient.Credentials{Email: email, Password: password})
	if err != nil {
		attrs := append([]any{"email", email, "error", err}, clientAttrs(r)...)
		h.sessionManager.Put(r.Context(), "login_email", email)

		var se *apiclient.StatusError
		if errors.Is(err, apiclient.ErrUnauthorized) || (errors.As(err, &se) && se.StatusCode < 500) {
			h.logger.WarnContext(r.Context(), "admin login rejected", attrs...)
			h.flashError(w, r, redirectLogin, msgLoginInvalid)
			return
		}
		h.logger.ErrorContext(r.Context(), "admin login failed", attrs...)
		h.flashError(w, r, redirectLogin, msgLoginFailed)
		return
	}

	ctx := r.Context()
	// A previous login in the same browser may still own a poller.
	h.EndSession(ctx, h.sessionManager.GetString(ctx, session.KeyPoller))

	rec := session.NewRecord(email, tok, time.Now())
	if err := session.Save(ctx, h.sessionManager, rec); err != nil {
		h.logger.ErrorContext(ctx, "failed to save session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.saveState(r, panel.NewState())

	if h.stats != nil {
		pollerID, err := h.stats.Start(ctx, tok, rec.ExpiresAt())
		if err != nil {
			h.logger.WarnContext(ctx, "failed to start stats poller", "error", err)
		} else {
			h.sessionManager.Put(ctx, session.KeyPoller, pollerID)
		}
	}

	h.logger.InfoContext(ctx, "admin logged in", append([]any{"email", email}, clientAttrs(r)...)...)
	http.Redirect(w, r, redirectBlogs, http.StatusSeeOther)
}

// Logout handles POST /admin/logout.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	rec, _ := middleware.GetRecord(r)
	h.logout(r.Context())
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "failed to renew session token on logout", "error", err)
	}
	h.logger.InfoContext(r.Context(), "admin logged out", "email", rec.Email)
	h.flashAndRedirect(w, r, redirectLogin, msgLoggedOut, session.FlashInfo)
}
