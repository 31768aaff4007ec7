// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

/*
Package database implements store.Store on an embedded DuckDB file.

# Schema

New creates four tables, all with IF NOT EXISTS so it is safe to run on
every startup:

  - categories: id, slug, name, description
  - users: id, username, first_name, last_name, is_staff
  - items: id, category_id, title, year, director, genre
  - ratings: (user_id, item_id) primary key, level, updated_at

Relationships:

	categories 1──* items
	users      1──* ratings
	items      1──* ratings

Relationships are checked in Go before each write rather than with foreign
keys, because DuckDB rejects ON CONFLICT updates of rows that a foreign key
references.

# Concurrency

Writes go through a single mutex so the parent checks and the upsert see
the same state. Transaction conflicts reported by DuckDB are retried with a
short exponential backoff. Reads run on the connection pool in parallel.

# Usage

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	snap, err := store.LoadSnapshot(ctx, db, categoryID)
*/
package database
