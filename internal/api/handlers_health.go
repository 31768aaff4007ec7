// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/popquiz/internal/models"
)

// healthPingTimeout bounds the store ping of health checks.
const healthPingTimeout = 2 * time.Second

func (h *Handler) storeConnected(ctx context.Context) bool {
	if h.store == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return h.store.Ping(ctx) == nil
}

// Health reports store connectivity. It answers 200 even when degraded so
// dashboards can read the body.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	connected := h.storeConnected(r.Context())

	status := "healthy"
	if !connected {
		status = "degraded"
	}

	respondOK(w, models.HealthStatus{
		Status:         status,
		Version:        h.version,
		Backend:        h.backend,
		StoreConnected: connected,
		Uptime:         time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthLive answers as long as the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondOK(w, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthReady fails with 503 while the store is unreachable.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.storeConnected(r.Context()) {
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeUnavailable,
			"Store is not reachable", errors.New("store ping failed"))
		return
	}
	respondOK(w, map[string]interface{}{"ready": true}, models.Metadata{})
}
