// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/popquiz/internal/analytics"
	"github.com/tomtom215/popquiz/internal/cache"
	"github.com/tomtom215/popquiz/internal/metrics"
	"github.com/tomtom215/popquiz/internal/middleware"
	"github.com/tomtom215/popquiz/internal/store"
)

// allCategories is the snapshot key covering every category.
const allCategories int64 = 0

// Options configures a Handler.
type Options struct {
	// Backend names the store in the health response.
	Backend string

	// Version is reported by the health endpoint.
	Version string

	// FullNames renders "First Last" instead of "First L".
	FullNames bool

	// SnapshotTTL caches snapshots per category. 0 disables the cache.
	SnapshotTTL time.Duration

	// Monitor backs /api/v1/performance. Nil disables the endpoint.
	Monitor *middleware.PerformanceMonitor
}

// Handler serves the HTTP API.
type Handler struct {
	store     store.Store
	engine    *analytics.Engine
	monitor   *middleware.PerformanceMonitor
	snapshots *cache.TTL[int64, *analytics.Snapshot]
	loads     singleflight.Group

	// genMu orders cache writes against invalidation. A load only caches its
	// result if the key's generation is unchanged since the load began.
	genMu       sync.Mutex
	generations map[int64]uint64

	fullNames bool
	backend   string
	version   string
	startTime time.Time
}

// NewHandler wires the store and engine. Call Close to release the snapshot
// cache.
func NewHandler(st store.Store, engine *analytics.Engine, opts Options) *Handler {
	h := &Handler{
		store:     st,
		engine:    engine,
		monitor:   opts.Monitor,
		fullNames: opts.FullNames,
		backend:   opts.Backend,
		version:   opts.Version,
		startTime: time.Now(),

		generations: make(map[int64]uint64),
	}
	if h.version == "" {
		h.version = "dev"
	}
	if opts.SnapshotTTL > 0 {
		h.snapshots = cache.New[int64, *analytics.Snapshot](opts.SnapshotTTL)
	}
	return h
}

// Close stops the snapshot cache sweep.
func (h *Handler) Close() {
	if h.snapshots != nil {
		h.snapshots.Close()
	}
}

// snapshot returns the analytics snapshot of one category, or of all of them
// for allCategories. Concurrent misses on the same key share one load.
func (h *Handler) snapshot(ctx context.Context, categoryID int64) (*analytics.Snapshot, error) {
	if h.snapshots == nil {
		return h.loadSnapshot(ctx, categoryID)
	}
	if snap, ok := h.cachedSnapshot(categoryID); ok {
		metrics.RecordSnapshotCache(true)
		return snap, nil
	}
	metrics.RecordSnapshotCache(false)

	gen := h.generation(categoryID)
	key := strconv.FormatInt(categoryID, 10) + "/" + strconv.FormatUint(gen, 10)
	v, err, _ := h.loads.Do(key, func() (interface{}, error) {
		// shared by every waiter, so one caller's cancellation must not fail the rest
		snap, err := h.loadSnapshot(context.WithoutCancel(ctx), categoryID)
		if err != nil {
			return nil, err
		}
		h.cacheIfCurrent(categoryID, gen, snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*analytics.Snapshot), nil
}

// cachedSnapshot looks up a category, deriving it from a cached
// all-categories snapshot when only that one is present.
func (h *Handler) cachedSnapshot(categoryID int64) (*analytics.Snapshot, bool) {
	if snap, ok := h.snapshots.Get(categoryID); ok {
		return snap, true
	}
	if categoryID == allCategories {
		return nil, false
	}

	h.genMu.Lock()
	defer h.genMu.Unlock()
	all, ok := h.snapshots.Get(allCategories)
	if !ok {
		return nil, false
	}
	// both keys are invalidated together, so a cached "all" is never older
	// than the category it is cut down to
	snap := all.ForCategory(categoryID)
	h.snapshots.Set(categoryID, snap)
	return snap, true
}

func (h *Handler) loadSnapshot(ctx context.Context, categoryID int64) (*analytics.Snapshot, error) {
	start := time.Now()
	snap, err := store.LoadSnapshot(ctx, h.store, categoryID)
	metrics.RecordSnapshot(snapshotLabel(categoryID), snap, time.Since(start))
	return snap, err
}

func (h *Handler) generation(categoryID int64) uint64 {
	h.genMu.Lock()
	defer h.genMu.Unlock()
	return h.generations[categoryID]
}

// cacheIfCurrent drops snap when a write invalidated the key mid-load.
func (h *Handler) cacheIfCurrent(categoryID int64, gen uint64, snap *analytics.Snapshot) {
	h.genMu.Lock()
	defer h.genMu.Unlock()
	if h.generations[categoryID] != gen {
		return
	}
	h.snapshots.Set(categoryID, snap)
}

// invalidate drops the cached snapshots a rating in categoryID affects and
// bumps their generations so in-flight loads don't re-cache stale data.
func (h *Handler) invalidate(categoryID int64) {
	if h.snapshots == nil {
		return
	}
	h.genMu.Lock()
	defer h.genMu.Unlock()
	for _, id := range []int64{categoryID, allCategories} {
		h.generations[id]++
		h.snapshots.Delete(id)
	}
}

func snapshotLabel(categoryID int64) string {
	if categoryID == allCategories {
		return "all"
	}
	return strconv.FormatInt(categoryID, 10)
}

// categorySnapshot resolves {slug} and loads its snapshot. It writes the
// error response itself and returns ok=false on failure.
func (h *Handler) categorySnapshot(w http.ResponseWriter, r *http.Request) (analytics.Category, *analytics.Snapshot, bool) {
	slug := chi.URLParam(r, "slug")
	if apiErr := validateParam("slug", slug, "required,slug"); apiErr != nil {
		respondValidation(w, apiErr)
		return analytics.Category{}, nil, false
	}

	cat, err := h.store.CategoryBySlug(r.Context(), slug)
	if err != nil {
		respondFailure(w, r, err)
		return analytics.Category{}, nil, false
	}

	snap, err := h.snapshot(r.Context(), cat.ID)
	if err != nil {
		respondFailure(w, r, err)
		return analytics.Category{}, nil, false
	}
	return cat, snap, true
}

// lookupUser resolves a username within snap. Every user is present in
// every snapshot, raters or not.
func lookupUser(w http.ResponseWriter, r *http.Request, snap *analytics.Snapshot, field, username string) (analytics.User, bool) {
	if apiErr := validateParam(field, username, "required,username"); apiErr != nil {
		respondValidation(w, apiErr)
		return analytics.User{}, false
	}
	u, ok := snap.UserByUsername(username)
	if !ok {
		respondFailure(w, r, analytics.ErrUnknownUser)
		return analytics.User{}, false
	}
	return u, true
}
