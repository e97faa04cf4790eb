// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/azaya-go/internal/config"
	"github.com/olegiv/azaya-go/internal/handler"
	"github.com/olegiv/azaya-go/internal/middleware"
)

type routerConfig struct {
	Config         *config.Config
	SessionManager *scs.SessionManager
	Relay          *handler.RelayHandler
	Health         *handler.HealthHandler
	Admin          *handler.AdminHandler
	Static         fs.FS
}

func newRouter(rc routerConfig) chi.Router {
	cfg := rc.Config
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.RequestPath)

	r.Get("/health/live", rc.Health.Liveness)
	r.Get("/health/ready", rc.Health.Readiness)

	// Contact relay, called cross-origin by the marketing site.
	relayLimiter := middleware.NewRateLimiter(1, 5)
	r.Group(func(r chi.Router) {
		r.Use(middleware.CORS(cfg.CORSOrigins))
		r.Get(handler.RouteRoot, rc.Relay.Root)
		r.With(relayLimiter.JSONMiddleware(), middleware.MaxBody(handler.MaxRelayBody)).
			Post(handler.RouteSend, rc.Relay.Send)
		r.Options(handler.RouteSend, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})

	if rc.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(rc.Static)))
	}

	loginLimiter := middleware.NewRateLimiter(0.5, 5)
	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))
	guard := middleware.RequireSession(rc.SessionManager, rc.Admin.EndSession)

	r.Route(handler.RouteAdmin, func(r chi.Router) {
		r.Use(rc.SessionManager.LoadAndSave)
		r.Use(middleware.NoStore)
		r.Use(csrfMiddleware)
		rc.Admin.Mount(r, guard, loginLimiter.HTMLMiddleware())
	})

	return r
}
