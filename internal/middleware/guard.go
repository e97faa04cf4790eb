// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/azaya-go/internal/session"
)

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/admin/login"

// MsgSessionExpired is flashed when a record outlives its lifetime.
const MsgSessionExpired = "Session expired. Please login again."

// SessionEndFunc releases per-session resources such as the stats poller.
type SessionEndFunc func(ctx context.Context, pollerID string)

// RequireSession checks the login record on every request. A missing,
// malformed or expired record ends the session and redirects to the login
// page; an expired one also leaves a flash message. Requests that accept
// JSON get a 401 instead of the redirect. A valid record is put in the
// request context.
func RequireSession(sm *scs.SessionManager, onEnd SessionEndFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			pollerID := sm.GetString(ctx, session.KeyPoller)

			rec, err := session.Load(ctx, sm, time.Now())
			if err != nil {
				if onEnd != nil {
					onEnd(ctx, pollerID)
				}
				if errors.Is(err, session.ErrExpired) {
					session.PutFlash(ctx, sm, MsgSessionExpired, session.FlashWarning)
				}
				if errors.Is(err, session.ErrMalformed) {
					slog.WarnContext(ctx, "discarding malformed session record", "error", err)
				}
				if wantsJSON(r) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"error":   "Session expired",
					})
					return
				}
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			ctx = context.WithValue(ctx, ContextKeyRecord, rec)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// wantsJSON reports whether the client asked for a JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// GetRecord returns the login record placed by RequireSession.
func GetRecord(r *http.Request) (session.Record, bool) {
	rec, ok := r.Context().Value(ContextKeyRecord).(session.Record)
	return rec, ok
}

// WithRecord returns ctx carrying rec. Handler tests use it to skip the guard.
func WithRecord(ctx context.Context, rec session.Record) context.Context {
	return context.WithValue(ctx, ContextKeyRecord, rec)
}
