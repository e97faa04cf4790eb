// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/scs/v2"
)

// MaxAge is how long a login record stays valid after it was issued.
const MaxAge = 24 * time.Hour

// Errors returned by Check. All of them mean "not logged in".
var (
	ErrNoSession = errors.New("session: no record")
	ErrMalformed = errors.New("session: malformed record")
	ErrExpired   = errors.New("session: record expired")
)

// Record is the proof of login kept for the admin: the email used to log in,
// the opaque API token and the issue time in Unix milliseconds.
type Record struct {
	Email     string `json:"email"`
	Token     string `json:"token"`
	Timestamp int64  `json:"timestamp"`
}

// NewRecord returns a record issued at now.
func NewRecord(email, token string, now time.Time) Record {
	return Record{Email: email, Token: token, Timestamp: now.UnixMilli()}
}

// IssuedAt returns the record timestamp as a time.
func (r Record) IssuedAt() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// ExpiresAt returns the moment the record stops being accepted.
func (r Record) ExpiresAt() time.Time {
	return r.IssuedAt().Add(MaxAge)
}

// Encode serializes the record to the text form kept in the session.
func (r Record) Encode() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encoding session record: %w", err)
	}
	return string(b), nil
}

// Check parses raw and verifies it is no older than MaxAge at now.
func Check(raw string, now time.Time) (Record, error) {
	if raw == "" {
		return Record{}, ErrNoSession
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if rec.Timestamp <= 0 {
		return Record{}, ErrMalformed
	}

	if now.Sub(rec.IssuedAt()) > MaxAge {
		return Record{}, ErrExpired
	}
	return rec, nil
}

// Load reads and checks the record held in sm for ctx. Any failure removes
// the stored record so the next request starts from a clean slate.
func Load(ctx context.Context, sm *scs.SessionManager, now time.Time) (Record, error) {
	rec, err := Check(sm.GetString(ctx, KeyRecord), now)
	if err != nil {
		Clear(ctx, sm)
		return Record{}, err
	}
	return rec, nil
}

// Save stores rec in sm, renewing the session token first.
func Save(ctx context.Context, sm *scs.SessionManager, rec Record) error {
	raw, err := rec.Encode()
	if err != nil {
		return err
	}
	if err := sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	sm.Put(ctx, KeyRecord, raw)
	return nil
}

// Clear removes the login record and everything tied to it.
func Clear(ctx context.Context, sm *scs.SessionManager) {
	sm.Remove(ctx, KeyRecord)
	sm.Remove(ctx, KeyPanel)
	sm.Remove(ctx, KeyPoller)
}
