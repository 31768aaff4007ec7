// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

/*
Package models defines the JSON shapes the HTTP API returns.

Every response is wrapped in APIResponse. Analytics results are passed
through view types that replace each analytics.User with a UserView, so the
rendered name follows the server's privacy setting:

	{
	  "status": "success",
	  "data": {"user": {"id": 1, "username": "ann", "display_name": "Ann A"}, ...},
	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 3, "category": "movies"}
	}

The view constructors copy. They never modify the analytics value they are
given.
*/
package models
