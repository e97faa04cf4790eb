// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/azaya-go/internal/apiclient"
	"github.com/olegiv/azaya-go/internal/cache"
	"github.com/olegiv/azaya-go/internal/config"
	"github.com/olegiv/azaya-go/internal/handler"
	"github.com/olegiv/azaya-go/internal/logging"
	"github.com/olegiv/azaya-go/internal/mailer"
	"github.com/olegiv/azaya-go/internal/render"
	"github.com/olegiv/azaya-go/internal/scheduler"
	"github.com/olegiv/azaya-go/internal/session"
	"github.com/olegiv/azaya-go/internal/store"
	"github.com/olegiv/azaya-go/internal/version"
	"github.com/olegiv/azaya-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Azaya - contact mail relay and blog admin dashboard\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AZAYA_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORT                   Server port (default: 5000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EMAIL_USER             SMTP account and sender address\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EMAIL_PASS             SMTP password\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RECEIVER_EMAIL         Contact form recipient (default: EMAIL_USER)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AZAYA_API_BASE_URL     Blog API base URL (default: http://localhost:5000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AZAYA_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AZAYA_REDIS_URL        Redis URL for the shared stats cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	sessionManager := session.New(db, cfg.IsDevelopment())

	cacheManager := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
	})
	defer func() {
		if err := cacheManager.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	sender, err := newSender(cfg, logger)
	if err != nil {
		return err
	}
	relay := mailer.NewRelay(sender, cfg.MailFromName, cfg.EmailUser, cfg.Receiver(), logger)

	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, logger)
	slog.Info("blog api client initialized", "base_url", api.BaseURL())

	sched := scheduler.New(db, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	poller := scheduler.NewStatsPoller(api, cacheManager, cfg.StatsInterval, logger)
	poller.Run()
	defer poller.StopAll()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("loading static assets: %w", err)
	}

	r := newRouter(routerConfig{
		Config:         cfg,
		SessionManager: sessionManager,
		Relay:          handler.NewRelayHandler(relay, logger),
		Health:         handler.NewHealthHandler(db, cacheManager, info.Version),
		Admin: handler.NewAdminHandler(handler.AdminConfig{
			API:               api,
			Renderer:          renderer,
			SessionManager:    sessionManager,
			Stats:             poller,
			Logger:            logger,
			ThumbnailMaxWidth: cfg.ThumbnailMaxWidth,
		}),
		Static: staticFS,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // thumbnail uploads
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// newSender picks the SMTP transport. Without credentials, development logs
// messages instead and production refuses to start.
func newSender(cfg *config.Config, logger *slog.Logger) (mailer.Sender, error) {
	if cfg.MailEnabled() {
		return mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPass,
		}), nil
	}
	if cfg.IsDevelopment() {
		slog.Warn("EMAIL_USER/EMAIL_PASS not set, contact emails will only be logged")
		return mailer.LogSender{Logger: logger}, nil
	}
	return nil, errors.New("EMAIL_USER and EMAIL_PASS are required in production")
}
