// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

// Flash keys and kinds. Kinds map to Bootstrap alert variants.
const (
	KeyFlash     = "flash"
	KeyFlashType = "flash_type"

	FlashSuccess = "success"
	FlashError   = "danger"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// PutFlash stores a one-shot message shown on the next rendered page.
func PutFlash(ctx context.Context, sm *scs.SessionManager, message, kind string) {
	sm.Put(ctx, KeyFlash, message)
	sm.Put(ctx, KeyFlashType, kind)
}

// PopFlash returns and removes the pending message. kind defaults to info.
func PopFlash(ctx context.Context, sm *scs.SessionManager) (message, kind string) {
	message = sm.PopString(ctx, KeyFlash)
	kind = sm.PopString(ctx, KeyFlashType)
	if message != "" && kind == "" {
		kind = FlashInfo
	}
	return message, kind
}
