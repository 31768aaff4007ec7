// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/tomtom215/popquiz/internal/analytics"
)

type ratingKey struct{ user, item int64 }

// Memory is a map-backed Store. It is safe for concurrent use.
type Memory struct {
	mu         sync.RWMutex
	categories map[int64]analytics.Category
	users      map[int64]analytics.User
	items      map[int64]analytics.Item
	ratings    map[ratingKey]analytics.RatingRecord
	closed     bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		categories: make(map[int64]analytics.Category),
		users:      make(map[int64]analytics.User),
		items:      make(map[int64]analytics.Item),
		ratings:    make(map[ratingKey]analytics.RatingRecord),
	}
}

var _ Store = (*Memory)(nil)

// UpsertCategory inserts or replaces a category.
func (m *Memory) UpsertCategory(_ context.Context, c analytics.Category) error {
	if err := CheckCategory(c); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, other := range m.categories {
		if id != c.ID && strings.EqualFold(other.Slug, c.Slug) {
			return fmt.Errorf("%w: slug %q belongs to category %d", ErrConflict, c.Slug, id)
		}
	}
	m.categories[c.ID] = c
	return nil
}

// UpsertUser inserts or replaces a user.
func (m *Memory) UpsertUser(_ context.Context, u analytics.User) error {
	if err := CheckUser(u); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, other := range m.users {
		if id != u.ID && strings.EqualFold(other.Username, u.Username) {
			return fmt.Errorf("%w: username %q belongs to user %d", ErrConflict, u.Username, id)
		}
	}
	m.users[u.ID] = u
	return nil
}

// UpsertItem inserts or replaces an item. Its category must exist.
func (m *Memory) UpsertItem(_ context.Context, it analytics.Item) error {
	if err := CheckItem(it); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[it.CategoryID]; !ok {
		return fmt.Errorf("%w: category %d", ErrNotFound, it.CategoryID)
	}
	m.items[it.ID] = it
	return nil
}

// UpsertRating stores a rating unless a newer one is already stored.
func (m *Memory) UpsertRating(_ context.Context, r analytics.RatingRecord) error {
	if err := CheckRating(r); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[r.UserID]; !ok {
		return fmt.Errorf("%w: user %d", ErrNotFound, r.UserID)
	}
	if _, ok := m.items[r.ItemID]; !ok {
		return fmt.Errorf("%w: item %d", ErrNotFound, r.ItemID)
	}
	k := ratingKey{r.UserID, r.ItemID}
	if prev, ok := m.ratings[k]; ok && prev.UpdatedAt.After(r.UpdatedAt) {
		return nil
	}
	m.ratings[k] = r
	return nil
}

// Categories lists categories ordered by ID.
func (m *Memory) Categories(_ context.Context) ([]analytics.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]analytics.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b analytics.Category) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// CategoryBySlug finds a category by slug, ignoring case.
func (m *Memory) CategoryBySlug(_ context.Context, slug string) (analytics.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		if strings.EqualFold(c.Slug, slug) {
			return c, nil
		}
	}
	return analytics.Category{}, fmt.Errorf("%w: category %q", ErrNotFound, slug)
}

// Users lists users ordered by ID.
func (m *Memory) Users(_ context.Context) ([]analytics.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]analytics.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b analytics.User) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// UserByUsername finds a user by username, ignoring case.
func (m *Memory) UserByUsername(_ context.Context, username string) (analytics.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return analytics.User{}, fmt.Errorf("%w: user %q", ErrNotFound, username)
}

// Items lists items ordered by ID.
func (m *Memory) Items(_ context.Context, categoryID int64) ([]analytics.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]analytics.Item, 0, len(m.items))
	for _, it := range m.items {
		if categoryID == 0 || it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b analytics.Item) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// Item finds an item by ID.
func (m *Memory) Item(_ context.Context, id int64) (analytics.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[id]
	if !ok {
		return analytics.Item{}, fmt.Errorf("%w: item %d", ErrNotFound, id)
	}
	return it, nil
}

// Ratings lists ratings ordered by item then user.
func (m *Memory) Ratings(_ context.Context, categoryID int64) ([]analytics.RatingRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]analytics.RatingRecord, 0, len(m.ratings))
	for _, r := range m.ratings {
		if categoryID != 0 && m.items[r.ItemID].CategoryID != categoryID {
			continue
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b analytics.RatingRecord) int {
		if c := cmp.Compare(a.ItemID, b.ItemID); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return out, nil
}

// Ping reports whether the store is open.
func (m *Memory) Ping(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return fmt.Errorf("memory store closed")
	}
	return nil
}

// Close marks the store closed. Data stays readable.
func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
