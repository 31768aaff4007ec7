// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package api

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/popquiz/internal/analytics"
	"github.com/tomtom215/popquiz/internal/store"
	"github.com/tomtom215/popquiz/internal/store/storetest"
)

const (
	moviesID int64 = 1
	bobID    int64 = 2
	alienID  int64 = 11
)

// gatedStore reads ratings, then parks the first Ratings call until release
// is closed, so a snapshot load can be held open across a write.
type gatedStore struct {
	store.Store
	once    sync.Once
	entered chan struct{}
	release chan struct{}
	loads   atomic.Int32
}

func newGatedStore(st store.Store) *gatedStore {
	return &gatedStore{Store: st, entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedStore) Ratings(ctx context.Context, categoryID int64) ([]analytics.RatingRecord, error) {
	g.loads.Add(1)
	recs, err := g.Store.Ratings(ctx, categoryID)
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return recs, err
}

func newCachingHandler(t *testing.T, st store.Store) *Handler {
	t.Helper()
	engine, err := analytics.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	h := NewHandler(st, engine, Options{SnapshotTTL: time.Minute})
	t.Cleanup(h.Close)
	return h
}

func TestSnapshot_WriteDuringLoadIsNotMasked(t *testing.T) {
	t.Parallel()
	base := storetest.Seeded(t, func(*testing.T) store.Store { return store.NewMemory() })
	gated := newGatedStore(base)
	h := newCachingHandler(t, gated)
	ctx := context.Background()

	type result struct {
		snap *analytics.Snapshot
		err  error
	}
	done := make(chan result, 1)
	go func() {
		snap, err := h.snapshot(ctx, moviesID)
		done <- result{snap, err}
	}()

	select {
	case <-gated.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("load never reached the store")
	}

	// the in-flight load has already read the old ratings
	err := base.UpsertRating(ctx, analytics.RatingRecord{
		UserID: bobID, ItemID: alienID, Level: analytics.LevelLoved, UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("UpsertRating() error = %v", err)
	}
	h.invalidate(moviesID)
	close(gated.release)

	res := <-done
	if res.err != nil {
		t.Fatalf("snapshot() error = %v", res.err)
	}
	if _, ok := res.snap.Rating(bobID, alienID); ok {
		t.Fatal("held load should have read the ratings from before the write")
	}

	fresh, err := h.snapshot(ctx, moviesID)
	if err != nil {
		t.Fatalf("snapshot() error = %v", err)
	}
	if lvl, ok := fresh.Rating(bobID, alienID); !ok || lvl != analytics.LevelLoved {
		t.Errorf("snapshot after write: bob/Alien = %q, %v; stale snapshot was cached", lvl, ok)
	}
}

func TestSnapshot_ConcurrentMissesShareOneLoad(t *testing.T) {
	t.Parallel()
	base := storetest.Seeded(t, func(*testing.T) store.Store { return store.NewMemory() })
	gated := newGatedStore(base)
	h := newCachingHandler(t, gated)
	ctx := context.Background()

	const readers = 8
	var wg sync.WaitGroup
	errs := make(chan error, readers)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := h.snapshot(ctx, moviesID)
		errs <- err
	}()
	<-gated.entered

	for i := 1; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.snapshot(ctx, moviesID)
			errs <- err
		}()
	}
	// let the other readers queue behind the held load
	time.Sleep(50 * time.Millisecond)
	close(gated.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("snapshot() error = %v", err)
		}
	}
	if n := gated.loads.Load(); n != 1 {
		t.Errorf("store loads = %d, want 1", n)
	}
}

func TestSnapshot_DerivedFromAllCategories(t *testing.T) {
	t.Parallel()
	base := storetest.Seeded(t, func(*testing.T) store.Store { return store.NewMemory() })
	gated := newGatedStore(base)
	close(gated.release)
	h := newCachingHandler(t, gated)
	ctx := context.Background()

	if _, err := h.snapshot(ctx, allCategories); err != nil {
		t.Fatalf("snapshot(all) error = %v", err)
	}
	movies, err := h.snapshot(ctx, moviesID)
	if err != nil {
		t.Fatalf("snapshot(movies) error = %v", err)
	}
	if n := gated.loads.Load(); n != 1 {
		t.Errorf("store loads = %d, want 1 (movies should be cut from the cached snapshot)", n)
	}
	for _, it := range movies.Items() {
		if it.CategoryID != moviesID {
			t.Errorf("item %d from category %d leaked into movies", it.ID, it.CategoryID)
		}
	}
	if len(movies.Items()) != 2 {
		t.Errorf("movies items = %d, want 2", len(movies.Items()))
	}

	h.invalidate(moviesID)
	if _, ok := h.snapshots.Get(allCategories); ok {
		t.Error("invalidate kept the all-categories snapshot")
	}
}
