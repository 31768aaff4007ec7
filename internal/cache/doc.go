// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

/*
Package cache provides a small thread-safe TTL cache.

The API layer uses it to keep one analytics snapshot per category between
requests. Building a snapshot means reading every rating in the category, so
repeated dashboard reads are served from memory until the entry expires or a
rating write invalidates it.

# Usage

	c := cache.New[int64, *analytics.Snapshot](30 * time.Second)
	defer c.Close()

	if snap, ok := c.Get(categoryID); ok {
	    return snap
	}
	c.Set(categoryID, snap)

	// after a rating is stored
	c.Delete(categoryID)
	c.Delete(0) // the all-categories snapshot

Expiry is checked lazily on Get and by a background sweep. Close stops the
sweep goroutine.
*/
package cache
