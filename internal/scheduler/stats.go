// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/olegiv/azaya-go/internal/apiclient"
	"github.com/olegiv/azaya-go/internal/cache"
	"github.com/olegiv/azaya-go/internal/model"
)

// StatsSource fetches comment statistics with a bearer token.
type StatsSource interface {
	CommentStats(ctx context.Context, token string) (model.CommentStats, error)
}

// fetchTimeout bounds a single stats request.
const fetchTimeout = 10 * time.Second

type poller struct {
	entryID cron.EntryID
	token   string
	until   time.Time
}

// StatsPoller refreshes comment statistics for every logged-in dashboard
// session. Each session owns at most one poller, identified by an opaque ID
// kept in the session. Results are cached so the navigation badge never waits
// on the remote API.
type StatsPoller struct {
	source   StatsSource
	cache    *cache.TypedCache[model.CommentStats]
	interval time.Duration
	logger   *slog.Logger

	cron    *cron.Cron
	mu      sync.Mutex
	pollers map[string]poller
	now     func() time.Time
}

// NewStatsPoller creates a poller that refreshes every interval.
func NewStatsPoller(source StatsSource, c cache.Cacher, interval time.Duration, logger *slog.Logger) *StatsPoller {
	return &StatsPoller{
		source: source,
		// Entries outlive a few missed ticks, then expire on their own.
		cache:    cache.NewTypedCache[model.CommentStats](c, 3*interval),
		interval: interval,
		logger:   logger,
		cron:     cron.New(),
		pollers:  make(map[string]poller),
		now:      time.Now,
	}
}

func statsKey(id string) string {
	return "stats:" + id
}

// Run starts the cron loop.
func (p *StatsPoller) Run() {
	p.cron.Start()
}

// Start begins polling for token and returns the poller ID. The first fetch
// happens before Start returns, so the badge is filled on the first page.
// The poller stops itself at until, the expiry of the login record, even if
// the session is never seen again.
func (p *StatsPoller) Start(ctx context.Context, token string, until time.Time) (string, error) {
	id := uuid.NewString()

	entryID, err := p.cron.AddFunc(fmt.Sprintf("@every %s", p.interval), func() {
		p.poll(context.Background(), id)
	})
	if err != nil {
		return "", fmt.Errorf("scheduling stats poller: %w", err)
	}

	p.mu.Lock()
	p.pollers[id] = poller{entryID: entryID, token: token, until: until}
	p.mu.Unlock()

	p.poll(ctx, id)
	return id, nil
}

// Stop cancels a poller and drops its cached stats. Unknown IDs are ignored.
func (p *StatsPoller) Stop(ctx context.Context, id string) {
	if id == "" {
		return
	}
	p.mu.Lock()
	pl, ok := p.pollers[id]
	delete(p.pollers, id)
	p.mu.Unlock()

	if ok {
		p.cron.Remove(pl.entryID)
	}
	_ = p.cache.Delete(ctx, statsKey(id))
}

// StopAll cancels every poller and stops the cron loop.
func (p *StatsPoller) StopAll() {
	p.mu.Lock()
	ids := make([]string, 0, len(p.pollers))
	for id := range p.pollers {
		ids = append(ids, id)
	}
	p.mu.Unlock()

	for _, id := range ids {
		p.Stop(context.Background(), id)
	}
	<-p.cron.Stop().Done()
}

// Active reports whether a poller with this ID is running.
func (p *StatsPoller) Active(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.pollers[id]
	return ok
}

// Count returns the number of running pollers.
func (p *StatsPoller) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pollers)
}

// Latest returns the most recent stats for a poller.
func (p *StatsPoller) Latest(ctx context.Context, id string) (model.CommentStats, bool) {
	if id == "" {
		return model.CommentStats{}, false
	}
	return p.cache.Get(ctx, statsKey(id))
}

// Refresh fetches stats for a running poller right away, outside its tick.
func (p *StatsPoller) Refresh(ctx context.Context, id string) {
	p.poll(ctx, id)
}

// Store caches stats fetched elsewhere for a running poller, saving it a
// request of its own. Unknown pollers are ignored.
func (p *StatsPoller) Store(ctx context.Context, id string, stats model.CommentStats) {
	if !p.Active(id) {
		return
	}
	if err := p.cache.Set(ctx, statsKey(id), stats); err != nil {
		p.logger.Warn("failed to cache comment stats", "poller_id", id, "error", err)
	}
}

// poll fetches stats once. A poller past its deadline or with a rejected
// token is stopped. Other failures keep the last value.
func (p *StatsPoller) poll(ctx context.Context, id string) {
	p.mu.Lock()
	pl, ok := p.pollers[id]
	p.mu.Unlock()
	if !ok {
		return
	}
	if !pl.until.IsZero() && p.now().After(pl.until) {
		p.logger.Info("stats poller stopped: session expired", "poller_id", id)
		p.Stop(ctx, id)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	stats, err := p.source.CommentStats(ctx, pl.token)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			p.logger.Info("stats poller stopped: token rejected", "poller_id", id)
			p.Stop(ctx, id)
			return
		}
		p.logger.Warn("failed to refresh comment stats", "poller_id", id, "error", err)
		return
	}

	if err := p.cache.Set(ctx, statsKey(id), stats); err != nil {
		p.logger.Warn("failed to cache comment stats", "poller_id", id, "error", err)
	}
}
