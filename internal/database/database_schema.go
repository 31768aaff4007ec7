// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// tableCreationQueries has no secondary indexes: DuckDB turns an indexed
// ON CONFLICT update into delete+insert, which trips its constraint checks.
func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGINT PRIMARY KEY,
			slug TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			username TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			is_staff BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id BIGINT PRIMARY KEY,
			category_id BIGINT NOT NULL,
			title TEXT NOT NULL,
			year INTEGER NOT NULL DEFAULT 0,
			director TEXT NOT NULL DEFAULT '',
			genre TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			user_id BIGINT NOT NULL,
			item_id BIGINT NOT NULL,
			level TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, item_id)
		)`,
	}
}
