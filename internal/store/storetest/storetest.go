// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

// Package storetest holds a behavior suite that every store.Store backend
// must pass.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/popquiz/internal/analytics"
	"github.com/tomtom215/popquiz/internal/store"
)

// Factory returns a fresh, empty store. The suite closes it.
type Factory func(t *testing.T) store.Store

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// Fixture is the catalog loaded by Seeded.
func Fixture() *store.Catalog {
	return &store.Catalog{
		Categories: []analytics.Category{
			{ID: 1, Slug: "movies", Name: "Movies"},
			{ID: 2, Slug: "artists", Name: "Artists", Description: "Musicians"},
		},
		Users: []analytics.User{
			{ID: 1, Username: "ann", FirstName: "Ann", LastName: "Adams"},
			{ID: 2, Username: "bob", FirstName: "Bob", LastName: "Baker"},
			{ID: 3, Username: "cat", FirstName: "Cat", LastName: "Cole", IsStaff: true},
		},
		Items: []analytics.Item{
			{ID: 10, CategoryID: 1, Title: "Heat", Year: 1995, Director: "Michael Mann", Genre: "Crime"},
			{ID: 11, CategoryID: 1, Title: "Alien", Year: 1979},
			{ID: 20, CategoryID: 2, Title: "Bowie"},
		},
		Ratings: []analytics.RatingRecord{
			{UserID: 1, ItemID: 10, Level: analytics.LevelLoved, UpdatedAt: baseTime},
			{UserID: 2, ItemID: 10, Level: analytics.LevelLiked, UpdatedAt: baseTime},
			{UserID: 1, ItemID: 11, Level: analytics.LevelHated, UpdatedAt: baseTime},
			{UserID: 3, ItemID: 20, Level: analytics.LevelOkay, UpdatedAt: baseTime},
		},
	}
}

// Seeded returns a store loaded with Fixture.
func Seeded(t *testing.T, factory Factory) store.Store {
	t.Helper()
	st := factory(t)
	t.Cleanup(func() { _ = st.Close() })
	if _, err := store.Seed(context.Background(), st, Fixture()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return st
}

// Run exercises every Store operation against stores made by factory.
func Run(t *testing.T, factory Factory) {
	t.Helper()

	t.Run("Lookups", func(t *testing.T) { testLookups(t, factory) })
	t.Run("Listing", func(t *testing.T) { testListing(t, factory) })
	t.Run("UpsertReplaces", func(t *testing.T) { testUpsertReplaces(t, factory) })
	t.Run("RatingTimestamps", func(t *testing.T) { testRatingTimestamps(t, factory) })
	t.Run("Integrity", func(t *testing.T) { testIntegrity(t, factory) })
	t.Run("Snapshot", func(t *testing.T) { testSnapshot(t, factory) })
	t.Run("Ping", func(t *testing.T) { testPing(t, factory) })
}

func testLookups(t *testing.T, factory Factory) {
	st := Seeded(t, factory)
	ctx := context.Background()

	c, err := st.CategoryBySlug(ctx, "Movies")
	if err != nil || c.ID != 1 {
		t.Errorf("CategoryBySlug(Movies) = %+v, %v", c, err)
	}
	if _, err := st.CategoryBySlug(ctx, "books"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("CategoryBySlug(books) error = %v, want ErrNotFound", err)
	}

	u, err := st.UserByUsername(ctx, "ANN")
	if err != nil || u.ID != 1 || u.LastName != "Adams" {
		t.Errorf("UserByUsername(ANN) = %+v, %v", u, err)
	}
	if _, err := st.UserByUsername(ctx, "zed"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UserByUsername(zed) error = %v, want ErrNotFound", err)
	}

	it, err := st.Item(ctx, 10)
	if err != nil || it.Title != "Heat" || it.Year != 1995 || it.Director != "Michael Mann" {
		t.Errorf("Item(10) = %+v, %v", it, err)
	}
	if _, err := st.Item(ctx, 99); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Item(99) error = %v, want ErrNotFound", err)
	}
}

func testListing(t *testing.T, factory Factory) {
	st := Seeded(t, factory)
	ctx := context.Background()

	cats, err := st.Categories(ctx)
	if err != nil || len(cats) != 2 || cats[0].ID != 1 || cats[1].Description != "Musicians" {
		t.Errorf("Categories() = %+v, %v", cats, err)
	}
	users, err := st.Users(ctx)
	if err != nil || len(users) != 3 || !users[2].IsStaff {
		t.Errorf("Users() = %+v, %v", users, err)
	}

	tests := []struct {
		category    int64
		wantItems   int
		wantRatings int
	}{
		{0, 3, 4},
		{1, 2, 3},
		{2, 1, 1},
		{7, 0, 0},
	}
	for _, tt := range tests {
		items, err := st.Items(ctx, tt.category)
		if err != nil || len(items) != tt.wantItems {
			t.Errorf("Items(%d) = %d items, %v; want %d", tt.category, len(items), err, tt.wantItems)
		}
		ratings, err := st.Ratings(ctx, tt.category)
		if err != nil || len(ratings) != tt.wantRatings {
			t.Errorf("Ratings(%d) = %d ratings, %v; want %d", tt.category, len(ratings), err, tt.wantRatings)
		}
	}

	ratings, _ := st.Ratings(ctx, 1)
	if len(ratings) == 3 {
		first := ratings[0]
		if first.ItemID != 10 || first.UserID != 1 || !first.UpdatedAt.Equal(baseTime) {
			t.Errorf("Ratings(1)[0] = %+v, want item 10 user 1 at base time", first)
		}
	}
}

func testUpsertReplaces(t *testing.T, factory Factory) {
	st := Seeded(t, factory)
	ctx := context.Background()

	if err := st.UpsertUser(ctx, analytics.User{ID: 2, Username: "bobby", FirstName: "Bob", LastName: "Baker"}); err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}
	if _, err := st.UserByUsername(ctx, "bob"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("old username still resolves: %v", err)
	}
	if u, err := st.UserByUsername(ctx, "bobby"); err != nil || u.ID != 2 {
		t.Errorf("UserByUsername(bobby) = %+v, %v", u, err)
	}

	if err := st.UpsertItem(ctx, analytics.Item{ID: 11, CategoryID: 1, Title: "Aliens", Year: 1986}); err != nil {
		t.Fatalf("UpsertItem() error = %v", err)
	}
	if it, _ := st.Item(ctx, 11); it.Title != "Aliens" || it.Year != 1986 {
		t.Errorf("Item(11) = %+v, want Aliens 1986", it)
	}
}

func testRatingTimestamps(t *testing.T, factory Factory) {
	st := Seeded(t, factory)
	ctx := context.Background()

	newer := analytics.RatingRecord{UserID: 1, ItemID: 10, Level: analytics.LevelDisliked, UpdatedAt: baseTime.Add(time.Hour)}
	if err := st.UpsertRating(ctx, newer); err != nil {
		t.Fatalf("UpsertRating(newer) error = %v", err)
	}
	older := analytics.RatingRecord{UserID: 1, ItemID: 10, Level: analytics.LevelLoved, UpdatedAt: baseTime}
	if err := st.UpsertRating(ctx, older); err != nil {
		t.Fatalf("UpsertRating(older) error = %v", err)
	}

	ratings, err := st.Ratings(ctx, 1)
	if err != nil {
		t.Fatalf("Ratings() error = %v", err)
	}
	var got []analytics.RatingRecord
	for _, r := range ratings {
		if r.UserID == 1 && r.ItemID == 10 {
			got = append(got, r)
		}
	}
	if len(got) != 1 || got[0].Level != analytics.LevelDisliked {
		t.Errorf("stored = %+v, want a single disliked row", got)
	}
}

func testIntegrity(t *testing.T, factory Factory) {
	st := Seeded(t, factory)
	ctx := context.Background()

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"item in unknown category", func() error {
			return st.UpsertItem(ctx, analytics.Item{ID: 30, CategoryID: 9, Title: "x"})
		}, store.ErrNotFound},
		{"rating by unknown user", func() error {
			return st.UpsertRating(ctx, analytics.RatingRecord{UserID: 9, ItemID: 10, Level: analytics.LevelLoved, UpdatedAt: baseTime})
		}, store.ErrNotFound},
		{"rating of unknown item", func() error {
			return st.UpsertRating(ctx, analytics.RatingRecord{UserID: 1, ItemID: 99, Level: analytics.LevelLoved, UpdatedAt: baseTime})
		}, store.ErrNotFound},
		{"unknown level", func() error {
			return st.UpsertRating(ctx, analytics.RatingRecord{UserID: 1, ItemID: 10, Level: "adored", UpdatedAt: baseTime})
		}, analytics.ErrUnknownLevel},
		{"missing timestamp", func() error {
			return st.UpsertRating(ctx, analytics.RatingRecord{UserID: 1, ItemID: 10, Level: analytics.LevelLoved})
		}, store.ErrInvalid},
		{"taken username", func() error {
			return st.UpsertUser(ctx, analytics.User{ID: 8, Username: "Ann"})
		}, store.ErrConflict},
		{"taken slug", func() error {
			return st.UpsertCategory(ctx, analytics.Category{ID: 8, Slug: "movies", Name: "Films"})
		}, store.ErrConflict},
		{"empty title", func() error {
			return st.UpsertItem(ctx, analytics.Item{ID: 31, CategoryID: 1})
		}, store.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func testSnapshot(t *testing.T, factory Factory) {
	st := Seeded(t, factory)
	ctx := context.Background()

	snap, err := store.LoadSnapshot(ctx, st, 1)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if snap.Len() != 3 || len(snap.Items()) != 2 || len(snap.Users()) != 3 {
		t.Errorf("snapshot has %d records, %d items, %d users", snap.Len(), len(snap.Items()), len(snap.Users()))
	}
	if l, ok := snap.Rating(1, 11); !ok || l != analytics.LevelHated {
		t.Errorf("Rating(1, 11) = %q, %v", l, ok)
	}

	all, err := store.LoadSnapshot(ctx, st, 0)
	if err != nil || all.Len() != 4 {
		t.Errorf("LoadSnapshot(0) = %v records, %v", all.Len(), err)
	}
}

func testPing(t *testing.T, factory Factory) {
	st := factory(t)
	if err := st.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if err := st.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
