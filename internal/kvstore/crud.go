// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package kvstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/popquiz/internal/analytics"
	"github.com/tomtom215/popquiz/internal/store"
)

// UpsertCategory inserts or replaces a category and its slug index.
func (s *Store) UpsertCategory(ctx context.Context, c analytics.Category) error {
	if err := store.CheckCategory(c); err != nil {
		return err
	}
	return s.update(ctx, func(txn *badger.Txn) error {
		owner, err := indexOwner(txn, indexKey(prefixSlug, c.Slug))
		if err != nil {
			return err
		}
		if owner != 0 && owner != c.ID {
			return fmt.Errorf("%w: slug %q belongs to category %d", store.ErrConflict, c.Slug, owner)
		}
		var prev analytics.Category
		found, err := getJSON(txn, idKey(prefixCategory, c.ID), &prev)
		if err != nil {
			return err
		}
		if found && !strings.EqualFold(prev.Slug, c.Slug) {
			if err := txn.Delete(indexKey(prefixSlug, prev.Slug)); err != nil {
				return err
			}
		}
		if err := txn.Set(indexKey(prefixSlug, c.Slug), encodeID(c.ID)); err != nil {
			return err
		}
		return setJSON(txn, idKey(prefixCategory, c.ID), c)
	})
}

// UpsertUser inserts or replaces a user and its username index.
func (s *Store) UpsertUser(ctx context.Context, u analytics.User) error {
	if err := store.CheckUser(u); err != nil {
		return err
	}
	return s.update(ctx, func(txn *badger.Txn) error {
		owner, err := indexOwner(txn, indexKey(prefixUsername, u.Username))
		if err != nil {
			return err
		}
		if owner != 0 && owner != u.ID {
			return fmt.Errorf("%w: username %q belongs to user %d", store.ErrConflict, u.Username, owner)
		}
		var prev analytics.User
		found, err := getJSON(txn, idKey(prefixUser, u.ID), &prev)
		if err != nil {
			return err
		}
		if found && !strings.EqualFold(prev.Username, u.Username) {
			if err := txn.Delete(indexKey(prefixUsername, prev.Username)); err != nil {
				return err
			}
		}
		if err := txn.Set(indexKey(prefixUsername, u.Username), encodeID(u.ID)); err != nil {
			return err
		}
		return setJSON(txn, idKey(prefixUser, u.ID), u)
	})
}

// UpsertItem inserts or replaces an item. Its category must exist.
func (s *Store) UpsertItem(ctx context.Context, it analytics.Item) error {
	if err := store.CheckItem(it); err != nil {
		return err
	}
	return s.update(ctx, func(txn *badger.Txn) error {
		ok, err := exists(txn, idKey(prefixCategory, it.CategoryID))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: category %d", store.ErrNotFound, it.CategoryID)
		}
		return setJSON(txn, idKey(prefixItem, it.ID), it)
	})
}

// UpsertRating stores a rating unless the stored one is newer.
func (s *Store) UpsertRating(ctx context.Context, r analytics.RatingRecord) error {
	if err := store.CheckRating(r); err != nil {
		return err
	}
	r.UpdatedAt = r.UpdatedAt.UTC()
	return s.update(ctx, func(txn *badger.Txn) error {
		if ok, err := exists(txn, idKey(prefixUser, r.UserID)); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: user %d", store.ErrNotFound, r.UserID)
		}
		if ok, err := exists(txn, idKey(prefixItem, r.ItemID)); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: item %d", store.ErrNotFound, r.ItemID)
		}

		key := ratingKey(r.ItemID, r.UserID)
		var prev analytics.RatingRecord
		found, err := getJSON(txn, key, &prev)
		if err != nil {
			return err
		}
		if found && prev.UpdatedAt.After(r.UpdatedAt) {
			return nil
		}
		return setJSON(txn, key, r)
	})
}

// Categories lists categories ordered by ID.
func (s *Store) Categories(ctx context.Context) ([]analytics.Category, error) {
	var out []analytics.Category
	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		out, err = scanPrefix[analytics.Category](ctx, txn, []byte(prefixCategory), nil)
		return err
	})
	return out, err
}

// CategoryBySlug resolves a slug through the slug index.
func (s *Store) CategoryBySlug(ctx context.Context, slug string) (analytics.Category, error) {
	var c analytics.Category
	err := s.view(ctx, func(txn *badger.Txn) error {
		id, err := indexOwner(txn, indexKey(prefixSlug, slug))
		if err != nil {
			return err
		}
		found := false
		if id != 0 {
			if found, err = getJSON(txn, idKey(prefixCategory, id), &c); err != nil {
				return err
			}
		}
		if !found {
			return fmt.Errorf("%w: category %q", store.ErrNotFound, slug)
		}
		return nil
	})
	return c, err
}

// Users lists users ordered by ID.
func (s *Store) Users(ctx context.Context) ([]analytics.User, error) {
	var out []analytics.User
	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		out, err = scanPrefix[analytics.User](ctx, txn, []byte(prefixUser), nil)
		return err
	})
	return out, err
}

// UserByUsername resolves a username through the username index.
func (s *Store) UserByUsername(ctx context.Context, username string) (analytics.User, error) {
	var u analytics.User
	err := s.view(ctx, func(txn *badger.Txn) error {
		id, err := indexOwner(txn, indexKey(prefixUsername, username))
		if err != nil {
			return err
		}
		found := false
		if id != 0 {
			if found, err = getJSON(txn, idKey(prefixUser, id), &u); err != nil {
				return err
			}
		}
		if !found {
			return fmt.Errorf("%w: user %q", store.ErrNotFound, username)
		}
		return nil
	})
	return u, err
}

// Items lists items ordered by ID.
func (s *Store) Items(ctx context.Context, categoryID int64) ([]analytics.Item, error) {
	var out []analytics.Item
	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		out, err = scanPrefix(ctx, txn, []byte(prefixItem), func(it analytics.Item) bool {
			return categoryID == 0 || it.CategoryID == categoryID
		})
		return err
	})
	return out, err
}

// Item finds an item by ID.
func (s *Store) Item(ctx context.Context, id int64) (analytics.Item, error) {
	var it analytics.Item
	err := s.view(ctx, func(txn *badger.Txn) error {
		found, err := getJSON(txn, idKey(prefixItem, id), &it)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: item %d", store.ErrNotFound, id)
		}
		return nil
	})
	return it, err
}

// Ratings lists ratings ordered by item then user. A category filter scans
// the rating range of each item in the category.
func (s *Store) Ratings(ctx context.Context, categoryID int64) ([]analytics.RatingRecord, error) {
	var out []analytics.RatingRecord
	err := s.view(ctx, func(txn *badger.Txn) error {
		if categoryID == 0 {
			var err error
			out, err = scanPrefix[analytics.RatingRecord](ctx, txn, []byte(prefixRating), nil)
			return err
		}
		items, err := scanPrefix(ctx, txn, []byte(prefixItem), func(it analytics.Item) bool {
			return it.CategoryID == categoryID
		})
		if err != nil {
			return err
		}
		out = make([]analytics.RatingRecord, 0)
		for _, it := range items {
			rs, err := scanPrefix[analytics.RatingRecord](ctx, txn, ratingItemPrefix(it.ID), nil)
			if err != nil {
				return err
			}
			out = append(out, rs...)
		}
		return nil
	})
	return out, err
}
