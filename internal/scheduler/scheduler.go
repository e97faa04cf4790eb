// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"database/sql"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/azaya-go/internal/store"
)

// PurgeSchedule is the cron spec for expired session cleanup.
const PurgeSchedule = "@every 1h"

// Scheduler runs application housekeeping jobs.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the housekeeping jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(PurgeSchedule, s.purgeSessions)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) purgeSessions() {
	if s.db == nil {
		return
	}
	n, err := store.PurgeExpiredSessions(s.db)
	if err != nil {
		s.logger.Error("failed to purge expired sessions", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("purged expired sessions", "count", n)
	}
}
