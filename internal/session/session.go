// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session holds the admin session manager and the login record
// stored inside it.
package session

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys.
const (
	KeyRecord = "admin_session"
	KeyPanel  = "panel_state"
	KeyPoller = "stats_poller"
)

// New creates a session manager backed by the SQLite sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Store = sqlite3store.New(db)

	// The record's own timestamp is the only expiry; no idle timeout.
	sm.Lifetime = MaxAge
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev
	if !isDev {
		// __Host- prefix requires Secure, Path=/ and no Domain.
		sm.Cookie.Name = "__Host-azaya_session"
	}

	return sm
}
