// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type badge struct {
	Total int `json:"total"`
}

func TestTypedCache_SetGet(t *testing.T) {
	mc := NewMemoryCache(time.Minute, 0)
	defer func() { _ = mc.Close() }()
	tc := NewTypedCache[badge](mc, time.Minute)
	ctx := context.Background()

	if err := tc.Set(ctx, "s", badge{Total: 7}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := tc.Get(ctx, "s")
	if !ok || got.Total != 7 {
		t.Errorf("Get = %+v, %v", got, ok)
	}
}

func TestTypedCache_UndecodableIsMiss(t *testing.T) {
	mc := NewMemoryCache(time.Minute, 0)
	defer func() { _ = mc.Close() }()
	tc := NewTypedCache[badge](mc, time.Minute)
	ctx := context.Background()

	_ = mc.Set(ctx, "s", []byte("not json"), 0)
	if _, ok := tc.Get(ctx, "s"); ok {
		t.Error("Get of undecodable value reported a hit")
	}
}

func TestTypedCache_GetOrSet(t *testing.T) {
	mc := NewMemoryCache(time.Minute, 0)
	defer func() { _ = mc.Close() }()
	tc := NewTypedCache[badge](mc, time.Minute)
	ctx := context.Background()

	calls := 0
	fn := func() (badge, error) {
		calls++
		return badge{Total: 2}, nil
	}

	for range 2 {
		v, err := tc.GetOrSet(ctx, "s", fn)
		if err != nil || v.Total != 2 {
			t.Fatalf("GetOrSet = %+v, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}

	_ = tc.Delete(ctx, "s")
	boom := errors.New("boom")
	if _, err := tc.GetOrSet(ctx, "s", func() (badge, error) { return badge{}, boom }); !errors.Is(err, boom) {
		t.Errorf("GetOrSet error = %v, want boom", err)
	}
}
