// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

/*
Package middleware provides the HTTP middleware the API router installs
around every handler.

Key Components:

  - RequestID: accepts or generates an X-Request-ID and stores it in the
    request context for logging.Ctx
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by
    chi route pattern
  - PerformanceMonitor: sliding window of request latencies with per-route
    percentiles, served at /api/v1/performance, and a warning for slow requests

Middleware Stack:

The API router composes them with chi and the go-chi helpers:

	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(monitor.Middleware)
	r.Use(cors.Handler(corsOptions))
	r.Use(httprate.Limit(...))
	r.Use(chimw.Compress(5))

All components are safe for concurrent use.
*/
package middleware
