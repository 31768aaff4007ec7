// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomtom215/popquiz/internal/analytics"
	"github.com/tomtom215/popquiz/internal/store"
)

// exists reports whether a row with the given id is in table. table is
// always a constant from this file.
func (db *DB) exists(ctx context.Context, table string, id int64) (bool, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check %s %d: %w", table, id, err)
	}
	return n > 0, nil
}

// takenBy returns the id of another row holding value in column, or 0.
func (db *DB) takenBy(ctx context.Context, table, column, value string, id int64) (int64, error) {
	var other int64
	err := db.conn.QueryRowContext(ctx,
		"SELECT id FROM "+table+" WHERE lower("+column+") = lower(?) AND id <> ? LIMIT 1", value, id).Scan(&other)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("check %s.%s: %w", table, column, err)
	}
	return other, nil
}

// UpsertCategory inserts or replaces a category.
func (db *DB) UpsertCategory(ctx context.Context, c analytics.Category) error {
	if err := store.CheckCategory(c); err != nil {
		return err
	}
	return db.withWrite(ctx, func(ctx context.Context) error {
		other, err := db.takenBy(ctx, "categories", "slug", c.Slug, c.ID)
		if err != nil {
			return err
		}
		if other != 0 {
			return fmt.Errorf("%w: slug %q belongs to category %d", store.ErrConflict, c.Slug, other)
		}
		_, err = db.conn.ExecContext(ctx, `INSERT INTO categories (id, slug, name, description)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				slug = EXCLUDED.slug,
				name = EXCLUDED.name,
				description = EXCLUDED.description`,
			c.ID, c.Slug, c.Name, c.Description)
		return err
	})
}

// UpsertUser inserts or replaces a user.
func (db *DB) UpsertUser(ctx context.Context, u analytics.User) error {
	if err := store.CheckUser(u); err != nil {
		return err
	}
	return db.withWrite(ctx, func(ctx context.Context) error {
		other, err := db.takenBy(ctx, "users", "username", u.Username, u.ID)
		if err != nil {
			return err
		}
		if other != 0 {
			return fmt.Errorf("%w: username %q belongs to user %d", store.ErrConflict, u.Username, other)
		}
		_, err = db.conn.ExecContext(ctx, `INSERT INTO users (id, username, first_name, last_name, is_staff)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				username = EXCLUDED.username,
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name,
				is_staff = EXCLUDED.is_staff`,
			u.ID, u.Username, u.FirstName, u.LastName, u.IsStaff)
		return err
	})
}

// UpsertItem inserts or replaces an item. Its category must exist.
func (db *DB) UpsertItem(ctx context.Context, it analytics.Item) error {
	if err := store.CheckItem(it); err != nil {
		return err
	}
	return db.withWrite(ctx, func(ctx context.Context) error {
		ok, err := db.exists(ctx, "categories", it.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: category %d", store.ErrNotFound, it.CategoryID)
		}
		_, err = db.conn.ExecContext(ctx, `INSERT INTO items (id, category_id, title, year, director, genre)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				category_id = EXCLUDED.category_id,
				title = EXCLUDED.title,
				year = EXCLUDED.year,
				director = EXCLUDED.director,
				genre = EXCLUDED.genre`,
			it.ID, it.CategoryID, it.Title, it.Year, it.Director, it.Genre)
		return err
	})
}

// UpsertRating stores a rating unless the stored one is newer.
func (db *DB) UpsertRating(ctx context.Context, r analytics.RatingRecord) error {
	if err := store.CheckRating(r); err != nil {
		return err
	}
	return db.withWrite(ctx, func(ctx context.Context) error {
		if ok, err := db.exists(ctx, "users", r.UserID); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: user %d", store.ErrNotFound, r.UserID)
		}
		if ok, err := db.exists(ctx, "items", r.ItemID); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: item %d", store.ErrNotFound, r.ItemID)
		}
		_, err := db.conn.ExecContext(ctx, `INSERT INTO ratings (user_id, item_id, level, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (user_id, item_id) DO UPDATE SET
				level = EXCLUDED.level,
				updated_at = EXCLUDED.updated_at
			WHERE EXCLUDED.updated_at >= ratings.updated_at`,
			r.UserID, r.ItemID, string(r.Level), r.UpdatedAt.UTC())
		return err
	})
}
