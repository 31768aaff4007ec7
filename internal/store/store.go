// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/popquiz/internal/analytics"
)

var (
	// ErrNotFound is returned when a looked-up row does not exist, or when an
	// upsert references a parent row that does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrConflict is returned when an upsert would give a slug or username
	// to a second ID.
	ErrConflict = errors.New("store: conflict")

	// ErrInvalid is returned for rows that fail basic shape checks.
	ErrInvalid = errors.New("store: invalid row")
)

// Store persists the rating relation.
type Store interface {
	UpsertCategory(ctx context.Context, c analytics.Category) error
	UpsertUser(ctx context.Context, u analytics.User) error
	UpsertItem(ctx context.Context, it analytics.Item) error
	UpsertRating(ctx context.Context, r analytics.RatingRecord) error

	Categories(ctx context.Context) ([]analytics.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (analytics.Category, error)
	Users(ctx context.Context) ([]analytics.User, error)
	UserByUsername(ctx context.Context, username string) (analytics.User, error)
	// Items lists a category's items; categoryID 0 lists every item.
	Items(ctx context.Context, categoryID int64) ([]analytics.Item, error)
	Item(ctx context.Context, id int64) (analytics.Item, error)
	// Ratings lists ratings on a category's items; categoryID 0 lists all.
	Ratings(ctx context.Context, categoryID int64) ([]analytics.RatingRecord, error)

	Ping(ctx context.Context) error
	Close() error
}

// CheckCategory validates a category before it is written.
func CheckCategory(c analytics.Category) error {
	if c.ID <= 0 {
		return fmt.Errorf("%w: category id %d", ErrInvalid, c.ID)
	}
	if strings.TrimSpace(c.Slug) == "" || strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category %d needs a slug and a name", ErrInvalid, c.ID)
	}
	return nil
}

// CheckUser validates a user before it is written.
func CheckUser(u analytics.User) error {
	if u.ID <= 0 {
		return fmt.Errorf("%w: user id %d", ErrInvalid, u.ID)
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("%w: user %d has no username", ErrInvalid, u.ID)
	}
	return nil
}

// CheckItem validates an item before it is written.
func CheckItem(it analytics.Item) error {
	if it.ID <= 0 {
		return fmt.Errorf("%w: item id %d", ErrInvalid, it.ID)
	}
	if strings.TrimSpace(it.Title) == "" {
		return fmt.Errorf("%w: item %d has no title", ErrInvalid, it.ID)
	}
	if it.Year < 0 {
		return fmt.Errorf("%w: item %d year %d", ErrInvalid, it.ID, it.Year)
	}
	return nil
}

// CheckRating validates a rating's level and timestamp.
func CheckRating(r analytics.RatingRecord) error {
	if _, err := analytics.ParseLevel(string(r.Level)); err != nil {
		return err
	}
	if r.UpdatedAt.IsZero() {
		return fmt.Errorf("%w: rating %d/%d has no timestamp", ErrInvalid, r.UserID, r.ItemID)
	}
	return nil
}
