// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/popquiz/internal/analytics"
	"github.com/tomtom215/popquiz/internal/store"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "popquiz_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "popquiz_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "popquiz_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "popquiz_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Analytics Engine Metrics
	AnalyticsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "popquiz_analytics_computation_duration_seconds",
			Help: "Duration of analytics computations in seconds",
			// Dendrograms over a few hundred users land in the tens of milliseconds.
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	AnalyticsErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "popquiz_analytics_computation_errors_total",
			Help: "Total number of rejected analytics computations",
		},
		[]string{"operation", "error_type"},
	)

	// Store Metrics
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "popquiz_store_query_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "popquiz_store_query_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Snapshot Metrics
	SnapshotRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "popquiz_snapshot_records",
			Help: "Rating records in the last snapshot loaded for a category",
		},
		[]string{"category"},
	)

	SnapshotItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "popquiz_snapshot_items",
			Help: "Items in the last snapshot loaded for a category",
		},
		[]string{"category"},
	)

	SnapshotUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "popquiz_snapshot_users",
			Help: "Users in the last snapshot loaded",
		},
	)

	SnapshotLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "popquiz_snapshot_load_duration_seconds",
			Help:    "Time to read and index a snapshot from the store",
			Buckets: prometheus.DefBuckets,
		},
	)

	SnapshotCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "popquiz_snapshot_cache_lookups_total",
			Help: "Snapshot cache lookups by result",
		},
		[]string{"result"}, // result: "hit", "miss"
	)

	// Rating Metrics
	RatingUpserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "popquiz_ratings_upserts_total",
			Help: "Rating submissions by level and outcome",
		},
		[]string{"level", "result"}, // result: "stored", "rejected"
	)

	// Badger Maintenance Metrics
	BadgerGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "popquiz_badger_gc_runs_total",
			Help: "Value log garbage collection passes",
		},
		[]string{"result"}, // result: "ok", "error"
	)

	BadgerGCDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "popquiz_badger_gc_duration_seconds",
			Help:    "Duration of value log garbage collection passes",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)
)

// ErrorType maps an error to a bounded label value.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, analytics.ErrUnknownUser),
		errors.Is(err, analytics.ErrUnknownItem):
		return "not_found"
	case errors.Is(err, store.ErrConflict):
		return "conflict"
	case errors.Is(err, store.ErrInvalid),
		errors.Is(err, analytics.ErrInvalidOption),
		errors.Is(err, analytics.ErrUnknownLevel),
		errors.Is(err, analytics.ErrDuplicateUser),
		errors.Is(err, analytics.ErrDuplicateItem),
		errors.Is(err, analytics.ErrMixedScheme):
		return "invalid"
	default:
		return "internal"
	}
}

// RecordStoreQuery records a store operation. Its signature matches
// store.QueryRecorder.
func RecordStoreQuery(operation, table string, duration time.Duration, err error) {
	StoreQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		StoreQueryErrors.WithLabelValues(operation, table, ErrorType(err)).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordSnapshot updates the snapshot gauges for category.
func RecordSnapshot(category string, s *analytics.Snapshot, duration time.Duration) {
	SnapshotLoadDuration.Observe(duration.Seconds())
	if s == nil {
		return
	}
	SnapshotRecords.WithLabelValues(category).Set(float64(s.Len()))
	SnapshotItems.WithLabelValues(category).Set(float64(len(s.Items())))
	SnapshotUsers.Set(float64(len(s.Users())))
}

// RecordSnapshotCache counts a snapshot cache lookup.
func RecordSnapshotCache(hit bool) {
	if hit {
		SnapshotCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	SnapshotCacheLookups.WithLabelValues("miss").Inc()
}

// RecordRatingUpsert counts a rating submission.
func RecordRatingUpsert(level string, err error) {
	result := "stored"
	if err != nil {
		result = "rejected"
	}
	if _, perr := analytics.ParseLevel(level); perr != nil {
		level = "invalid"
	}
	RatingUpserts.WithLabelValues(level, result).Inc()
}

// RecordBadgerGC records one garbage collection pass.
func RecordBadgerGC(duration time.Duration, err error) {
	BadgerGCDuration.Observe(duration.Seconds())
	result := "ok"
	if err != nil {
		result = "error"
	}
	BadgerGCRuns.WithLabelValues(result).Inc()
}

// AnalyticsObserver reports engine computations to Prometheus.
type AnalyticsObserver struct{}

var _ analytics.Observer = AnalyticsObserver{}

// ObserveComputation implements analytics.Observer.
func (AnalyticsObserver) ObserveComputation(operation string, duration time.Duration, err error) {
	AnalyticsDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		AnalyticsErrors.WithLabelValues(operation, ErrorType(err)).Inc()
	}
}
