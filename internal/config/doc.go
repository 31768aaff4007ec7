// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

/*
Package config loads and validates PopQuiz configuration.

# Configuration Sources

LoadWithKoanf layers three sources, later ones winning:

 1. Defaults from defaultConfig()
 2. An optional YAML file (CONFIG_PATH, else config.yaml or
    /etc/popquiz/config.yaml)
 3. Environment variables, mapped by envTransformFunc

Only mapped environment variables are read, so unrelated variables never
leak into the configuration.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - SLOW_REQUEST_THRESHOLD: log requests slower than this (default 1s)

Store:
  - STORE_BACKEND: duckdb (default), badger or memory
  - STORE_SEED_PATH: JSON catalog loaded at startup
  - SNAPSHOT_TTL: how long analytics snapshots are cached (default 30s, 0 disables)
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - BADGER_PATH, BADGER_IN_MEMORY, BADGER_SYNC_WRITES, BADGER_GC_INTERVAL

Security:
  - CORS_ORIGINS: comma-separated origins
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - SHOW_FULL_NAMES: render full last names in API responses

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error
  - LOG_FORMAT: json or console
  - LOG_CALLER

Analytics:
  - SCORING_MODE: simple, bayes_three_level, bayes_five_level
  - SCORING_CONFIDENCE, SCORING_MIN_VOTES
  - DIVISIVE_METRIC: stddev or min_count
  - DIVISIVE_MIN_VOTES
  - COMPAT_POLICY: exact, category or love_hate
  - COMPAT_EXCLUDE_NEUTRAL
  - VENN_MEMBERSHIP: positive (default) or rated
  - ECLECTIC_MIN_CONSENSUS, ECLECTIC_MIN_COMPARISONS, ECLECTIC_MAX_PICKS
  - CLUSTER_NO_OVERLAP_SIMILARITY, CLUSTER_TOP_PAIRS, CLUSTER_PALETTE

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal(err)
	}
	engineCfg := cfg.ToAnalyticsConfig()
*/
package config
