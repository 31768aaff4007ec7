// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/popquiz/internal/analytics"
)

// Catalog is the JSON seed format.
//
//	{
//	  "categories": [{"id": 1, "slug": "movies", "name": "Movies"}],
//	  "users":      [{"id": 1, "username": "ann", "first_name": "Ann", "last_name": "Adams"}],
//	  "items":      [{"id": 10, "category_id": 1, "title": "Heat", "year": 1995}],
//	  "ratings":    [{"user_id": 1, "item_id": 10, "level": "loved"}]
//	}
//
// Ratings without updated_at are stamped with the seed time.
type Catalog struct {
	Categories []analytics.Category     `json:"categories"`
	Users      []analytics.User         `json:"users"`
	Items      []analytics.Item         `json:"items"`
	Ratings    []analytics.RatingRecord `json:"ratings"`
}

// SeedStats counts the rows written by Seed.
type SeedStats struct {
	Categories int `json:"categories"`
	Users      int `json:"users"`
	Items      int `json:"items"`
	Ratings    int `json:"ratings"`
}

// DecodeCatalog parses a catalog and rejects unknown rating levels.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var cat Catalog
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, rec := range cat.Ratings {
		if _, err := analytics.ParseLevel(string(rec.Level)); err != nil {
			return nil, fmt.Errorf("catalog rating %d: %w", i, err)
		}
	}
	return &cat, nil
}

// LoadCatalog reads a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return DecodeCatalog(f)
}

// Seed writes a catalog parents first, so items find their categories and
// ratings find their users and items.
func Seed(ctx context.Context, st Store, cat *Catalog) (SeedStats, error) {
	var stats SeedStats
	if cat == nil {
		return stats, nil
	}
	now := time.Now().UTC()

	for _, c := range cat.Categories {
		if err := st.UpsertCategory(ctx, c); err != nil {
			return stats, fmt.Errorf("seed category %d: %w", c.ID, err)
		}
		stats.Categories++
	}
	for _, u := range cat.Users {
		if err := st.UpsertUser(ctx, u); err != nil {
			return stats, fmt.Errorf("seed user %d: %w", u.ID, err)
		}
		stats.Users++
	}
	for _, it := range cat.Items {
		if err := st.UpsertItem(ctx, it); err != nil {
			return stats, fmt.Errorf("seed item %d: %w", it.ID, err)
		}
		stats.Items++
	}
	for _, r := range cat.Ratings {
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = now
		}
		if err := st.UpsertRating(ctx, r); err != nil {
			return stats, fmt.Errorf("seed rating %d/%d: %w", r.UserID, r.ItemID, err)
		}
		stats.Ratings++
	}
	return stats, nil
}
