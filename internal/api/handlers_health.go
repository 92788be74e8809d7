// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package api

import (
	"net/http"
	"time"
)

// HealthLive is the liveness probe.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady is the readiness probe. The service is not ready while the
// CMS circuit breaker is open, since every page would fail.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	breaker := "closed"
	if h.ready != nil {
		breaker = h.ready.State()
	}
	ready := breaker != "open"

	data := map[string]interface{}{
		"ready_to_serve": ready,
		"cms_breaker":    breaker,
		"active_feeds":   h.feeds.Len(),
		"uptime":         time.Since(h.startTime).Seconds(),
	}
	if !ready {
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "CMS unavailable", data)
		return
	}
	WriteSuccess(w, r, data)
}
