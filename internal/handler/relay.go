// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/azaya-go/internal/mailer"
)

// MaxRelayBody bounds the contact form payload.
const MaxRelayBody = 64 << 10

// RelayHandler serves the public contact form relay.
type RelayHandler struct {
	relay  *mailer.Relay
	logger *slog.Logger
}

// NewRelayHandler creates a new RelayHandler.
func NewRelayHandler(relay *mailer.Relay, logger *slog.Logger) *RelayHandler {
	return &RelayHandler{relay: relay, logger: logger}
}

// Root handles GET / with a plain liveness text.
func (h *RelayHandler) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(msgServerUp))
}

// Send handles POST /send. An unreadable body counts as missing fields.
func (h *RelayHandler) Send(w http.ResponseWriter, r *http.Request) {
	var sub mailer.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.logger.DebugContext(r.Context(), "unreadable contact payload", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": msgMissingField})
		return
	}

	if err := h.relay.Deliver(r.Context(), sub); err != nil {
		if errors.Is(err, mailer.ErrMissingFields) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": msgMissingField})
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to send contact email", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgSendFailed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": msgSent})
}
