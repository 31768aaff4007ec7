// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/popquiz/internal/cache"
	"github.com/tomtom215/popquiz/internal/middleware"
	"github.com/tomtom215/popquiz/internal/models"
)

// recentRequests is how many raw samples /performance returns.
const recentRequests = 20

// PerformanceReport is the body of GET /api/v1/performance.
type PerformanceReport struct {
	Endpoints     []middleware.EndpointStats  `json:"endpoints"`
	Recent        []middleware.RequestMetrics `json:"recent"`
	SnapshotCache *cache.Stats                `json:"snapshot_cache,omitempty"`
	CacheHitRate  *float64                    `json:"snapshot_cache_hit_rate,omitempty"`
}

// Performance reports per-route latency from the in-process monitor.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	if h.monitor == nil {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "Performance monitoring is disabled",
			errors.New("no performance monitor configured"))
		return
	}

	report := PerformanceReport{
		Endpoints: h.monitor.Stats(),
		Recent:    h.monitor.Recent(recentRequests),
	}
	if h.snapshots != nil {
		stats := h.snapshots.Stats()
		rate := h.snapshots.HitRate()
		report.SnapshotCache = &stats
		report.CacheHitRate = &rate
	}
	respondOK(w, report, models.Metadata{Count: intPtr(len(report.Endpoints))})
}
