// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

/*
Package main is the entry point for the PopQuiz server.

PopQuiz answers questions about a small group's shared taste: which movies
and artists the group likes most, which ones split it, who agrees with whom
and how the group clusters. Ratings come from a seed catalog or from
POST /api/v1/ratings.

# Application Architecture

	RootSupervisor ("popquiz")
	├── DataSupervisor ("data-layer")
	│   └── Badger value log GC (badger backend only)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Store: DuckDB, BadgerDB or in-memory, wrapped with query metrics
 4. Seed: optional JSON catalog replayed into the store
 5. Analytics engine
 6. HTTP: chi router, middleware stack, /metrics
 7. Supervisor tree: Suture v4

# Configuration

	HTTP_PORT=8080            # HTTP port
	STORE_BACKEND=duckdb      # duckdb, badger or memory
	STORE_SEED_PATH=seed.json # optional catalog
	LOG_LEVEL=info
	LOG_FORMAT=json

See internal/config for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests within SHUTDOWN_TIMEOUT, the supervisor reports services that did
not stop, then the store is closed.
*/
package main
