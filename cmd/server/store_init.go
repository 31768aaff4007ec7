// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/popquiz/internal/config"
	"github.com/tomtom215/popquiz/internal/database"
	"github.com/tomtom215/popquiz/internal/kvstore"
	"github.com/tomtom215/popquiz/internal/logging"
	"github.com/tomtom215/popquiz/internal/metrics"
	"github.com/tomtom215/popquiz/internal/store"
)

// openedStore is the instrumented store plus the raw Badger handle, which
// the GC service needs.
type openedStore struct {
	store store.Store
	kv    *kvstore.Store
}

func openStore(cfg *config.Config) (openedStore, error) {
	var (
		raw store.Store
		kv  *kvstore.Store
	)
	switch cfg.Store.Backend {
	case config.BackendDuckDB:
		db, err := database.New(&cfg.Database)
		if err != nil {
			return openedStore{}, fmt.Errorf("open duckdb: %w", err)
		}
		raw = db
		logging.Info().Str("path", db.Path()).Msg("DuckDB store initialized")
	case config.BackendBadger:
		s, err := kvstore.Open(&cfg.Badger)
		if err != nil {
			return openedStore{}, fmt.Errorf("open badger: %w", err)
		}
		raw, kv = s, s
		logging.Info().
			Str("path", cfg.Badger.Path).
			Bool("in_memory", cfg.Badger.InMemory).
			Msg("Badger store initialized")
	case config.BackendMemory:
		raw = store.NewMemory()
		logging.Warn().Msg("Using the in-memory store; ratings are lost on restart")
	default:
		return openedStore{}, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	return openedStore{store: store.Instrument(raw, metrics.RecordStoreQuery), kv: kv}, nil
}

func seedStore(ctx context.Context, st store.Store, path string) error {
	if path == "" {
		return nil
	}
	catalog, err := store.LoadCatalog(path)
	if err != nil {
		return err
	}
	stats, err := store.Seed(ctx, st, catalog)
	if err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	logging.Info().
		Str("path", path).
		Int("categories", stats.Categories).
		Int("users", stats.Users).
		Int("items", stats.Items).
		Int("ratings", stats.Ratings).
		Msg("Seed catalog loaded")
	return nil
}
