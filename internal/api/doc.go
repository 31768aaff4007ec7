// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

/*
Package api exposes the taste analytics engine over HTTP.

Every endpoint returns the models.APIResponse envelope. Reads load an
analytics snapshot for the requested category (cached for
store.snapshot_ttl) and hand it to the engine; the rating endpoint writes
through the store and invalidates the cached snapshots it affects.

# Routes

	GET  /api/v1/health                                 store connectivity and uptime
	GET  /api/v1/health/live                            liveness
	GET  /api/v1/health/ready                           503 while the store is unreachable
	GET  /api/v1/categories                             category list
	GET  /api/v1/categories/{slug}/ranking?mode=        items ordered by score
	GET  /api/v1/categories/{slug}/decades?mode=        rankings grouped by decade
	GET  /api/v1/categories/{slug}/divisive?metric=     most polarizing items
	GET  /api/v1/categories/{slug}/eclectic             distance from the group consensus
	GET  /api/v1/categories/{slug}/clusters             taste dendrogram
	GET  /api/v1/categories/{slug}/compare?user1=&user2=&policy=
	GET  /api/v1/categories/{slug}/compare3?user1=&user2=&user3=&membership=
	GET  /api/v1/categories/{slug}/compatibility/{username}?policy=
	GET  /api/v1/categories/{slug}/items/{itemID}?mode=
	GET  /api/v1/categories/{slug}/queue/{username}
	GET  /api/v1/users/{username}/profile?sort=
	POST /api/v1/ratings
	GET  /api/v1/performance                            per-route latency statistics
	GET  /metrics                                       Prometheus

# Middleware

Global: request ID, real IP, panic recovery, CORS, Prometheus metrics, the
performance monitor and gzip compression. The API routes share an IP rate
limit; POST /ratings carries a stricter one. Rejected requests get a JSON
RATE_LIMITED error and are counted in popquiz_api_rate_limit_hits_total.

# Errors

Engine and store errors map onto HTTP codes:

  - analytics.ErrInvalidOption, ErrUnknownLevel, ErrDuplicateUser and
    store.ErrInvalid: 400 VALIDATION_ERROR
  - store.ErrNotFound, analytics.ErrUnknownUser, ErrUnknownItem: 404 NOT_FOUND
  - store.ErrConflict: 409 CONFLICT
  - everything else: 500 INTERNAL_ERROR
*/
package api
