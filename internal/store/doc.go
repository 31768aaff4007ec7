// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

/*
Package store defines the persistence boundary for categories, users, items
and ratings, and turns stored rows into analytics snapshots.

# Backends

Three implementations satisfy Store:

  - Memory (this package): map-backed, used by tests and development runs
  - database.DB: embedded DuckDB, the default production backend
  - kvstore.Store: Badger key-value store for single-node deployments

Every backend follows the same rules. IDs are supplied by the caller, so a
seed catalog can be replayed into any backend without remapping. Upserts
replace rows by ID. A rating upsert keeps the stored row when it is newer
than the incoming one, which mirrors the snapshot rule that the latest
UpdatedAt wins.

# Snapshots

LoadSnapshot reads everything a category needs and hands it to
analytics.NewSnapshot:

	snap, err := store.LoadSnapshot(ctx, st, category.ID)
	if err != nil {
	    return err
	}
	ranking, err := engine.Ranking(ctx, snap, analytics.ScoringBayesFiveLevel)

Passing category ID 0 loads every category, which user profiles need.

# Seeding

A JSON catalog (see Catalog) can be loaded at startup:

	cat, err := store.LoadCatalog("/data/seed.json")
	if err != nil {
	    return err
	}
	stats, err := store.Seed(ctx, st, cat)
*/
package store
