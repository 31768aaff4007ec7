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

const (
	categoryColumns = "id, slug, name, description"
	userColumns     = "id, username, first_name, last_name, is_staff"
	itemColumns     = "id, category_id, title, year, director, genre"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (analytics.Category, error) {
	var c analytics.Category
	err := row.Scan(&c.ID, &c.Slug, &c.Name, &c.Description)
	return c, err
}

func scanUser(row rowScanner) (analytics.User, error) {
	var u analytics.User
	err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.IsStaff)
	return u, err
}

func scanItem(row rowScanner) (analytics.Item, error) {
	var it analytics.Item
	err := row.Scan(&it.ID, &it.CategoryID, &it.Title, &it.Year, &it.Director, &it.Genre)
	return it, err
}

// queryAll runs a query and scans every row with scan.
func queryAll[T any](ctx context.Context, db *DB, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// queryOne scans a single row, mapping no rows to store.ErrNotFound.
func queryOne[T any](ctx context.Context, db *DB, scan func(rowScanner) (T, error), what string, query string, args ...any) (T, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	v, err := scan(db.conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return v, fmt.Errorf("%w: %s", store.ErrNotFound, what)
	}
	return v, err
}

// Categories lists categories ordered by ID.
func (db *DB) Categories(ctx context.Context) ([]analytics.Category, error) {
	return queryAll(ctx, db, scanCategory, "SELECT "+categoryColumns+" FROM categories ORDER BY id")
}

// CategoryBySlug finds a category by slug, ignoring case.
func (db *DB) CategoryBySlug(ctx context.Context, slug string) (analytics.Category, error) {
	return queryOne(ctx, db, scanCategory, fmt.Sprintf("category %q", slug),
		"SELECT "+categoryColumns+" FROM categories WHERE lower(slug) = lower(?) LIMIT 1", slug)
}

// Users lists users ordered by ID.
func (db *DB) Users(ctx context.Context) ([]analytics.User, error) {
	return queryAll(ctx, db, scanUser, "SELECT "+userColumns+" FROM users ORDER BY id")
}

// UserByUsername finds a user by username, ignoring case.
func (db *DB) UserByUsername(ctx context.Context, username string) (analytics.User, error) {
	return queryOne(ctx, db, scanUser, fmt.Sprintf("user %q", username),
		"SELECT "+userColumns+" FROM users WHERE lower(username) = lower(?) LIMIT 1", username)
}

// Items lists items ordered by ID.
func (db *DB) Items(ctx context.Context, categoryID int64) ([]analytics.Item, error) {
	if categoryID == 0 {
		return queryAll(ctx, db, scanItem, "SELECT "+itemColumns+" FROM items ORDER BY id")
	}
	return queryAll(ctx, db, scanItem,
		"SELECT "+itemColumns+" FROM items WHERE category_id = ? ORDER BY id", categoryID)
}

// Item finds an item by ID.
func (db *DB) Item(ctx context.Context, id int64) (analytics.Item, error) {
	return queryOne(ctx, db, scanItem, fmt.Sprintf("item %d", id),
		"SELECT "+itemColumns+" FROM items WHERE id = ?", id)
}

// Ratings lists ratings ordered by item then user.
func (db *DB) Ratings(ctx context.Context, categoryID int64) ([]analytics.RatingRecord, error) {
	scan := func(row rowScanner) (analytics.RatingRecord, error) {
		var r analytics.RatingRecord
		var level string
		if err := row.Scan(&r.UserID, &r.ItemID, &level, &r.UpdatedAt); err != nil {
			return r, err
		}
		r.Level = analytics.Level(level)
		r.UpdatedAt = r.UpdatedAt.UTC()
		return r, nil
	}
	if categoryID == 0 {
		return queryAll(ctx, db, scan,
			"SELECT user_id, item_id, level, updated_at FROM ratings ORDER BY item_id, user_id")
	}
	return queryAll(ctx, db, scan, `SELECT r.user_id, r.item_id, r.level, r.updated_at
		FROM ratings r JOIN items i ON i.id = r.item_id
		WHERE i.category_id = ?
		ORDER BY r.item_id, r.user_id`, categoryID)
}
