// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

/*
Package metrics declares the Prometheus collectors exported on /metrics.

All collectors are registered with the default registry through promauto at
package init, so importing the package is enough to expose them.

Families:

  - popquiz_api_*: request count, latency, in-flight gauge, rate limit rejections
  - popquiz_analytics_*: engine computation latency and rejected computations
  - popquiz_store_*: store query latency and errors per operation and table
  - popquiz_snapshot_*: size of the last snapshot loaded per category
  - popquiz_ratings_*: rating submissions by level and outcome
  - popquiz_badger_gc_*: value log garbage collection passes

Label values are bounded. Endpoints are recorded by chi route pattern, never
by raw path, and errors are reduced to a small set of types by ErrorType.

The Recorder helpers match the callback signatures the other packages accept,
so wiring is a one-liner:

	st = store.Instrument(st, metrics.RecordStoreQuery)
	engine, _ := analytics.NewEngine(cfg, logger, analytics.WithObserver(metrics.AnalyticsObserver{}))
*/
package metrics
