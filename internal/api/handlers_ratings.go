// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/popquiz/internal/analytics"
	"github.com/tomtom215/popquiz/internal/logging"
	"github.com/tomtom215/popquiz/internal/metrics"
	"github.com/tomtom215/popquiz/internal/models"
)

// errRejected marks submissions refused before reaching the store.
var errRejected = errors.New("rating rejected")

// SubmitRating stores one rating and returns the user's next unrated item in
// the same category. A repeated submission replaces the earlier level.
func (h *Handler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RatingSubmission
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		metrics.RecordRatingUpsert(req.Level, errRejected)
		respondValidation(w, apiErr)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.RecordRatingUpsert(req.Level, errRejected)
		respondValidation(w, apiErr)
		return
	}
	// validated above
	level, _ := analytics.ParseLevel(req.Level)

	ctx := r.Context()
	user, err := h.store.UserByUsername(ctx, req.Username)
	if err != nil {
		metrics.RecordRatingUpsert(req.Level, err)
		respondFailure(w, r, err)
		return
	}
	item, err := h.store.Item(ctx, req.ItemID)
	if err != nil {
		metrics.RecordRatingUpsert(req.Level, err)
		respondFailure(w, r, err)
		return
	}
	cat, ok, err := h.categoryByID(r, item.CategoryID)
	if err != nil || !ok {
		if err == nil {
			err = fmt.Errorf("item %d references missing category %d", item.ID, item.CategoryID)
		}
		metrics.RecordRatingUpsert(req.Level, err)
		respondFailure(w, r, err)
		return
	}

	snap, err := h.snapshot(ctx, cat.ID)
	if err != nil {
		metrics.RecordRatingUpsert(req.Level, err)
		respondFailure(w, r, err)
		return
	}
	if snap.Len() > 0 && level.Scheme() != snap.Scheme() {
		err := fmt.Errorf("%w: %s uses %s levels, got %q", analytics.ErrUnknownLevel, cat.Slug, snap.Scheme(), level)
		metrics.RecordRatingUpsert(req.Level, err)
		respondFailure(w, r, err)
		return
	}

	rec := analytics.RatingRecord{
		UserID:    user.ID,
		ItemID:    item.ID,
		Level:     level,
		UpdatedAt: time.Now().UTC(),
	}
	err = h.store.UpsertRating(ctx, rec)
	metrics.RecordRatingUpsert(req.Level, err)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	h.invalidate(cat.ID)

	logging.Ctx(ctx).Info().
		Str("username", sanitizeLogValue(user.Username)).
		Int64("item_id", item.ID).
		Str("level", string(level)).
		Str("category", cat.Slug).
		Msg("Rating stored")

	snap, err = h.snapshot(ctx, cat.ID)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	queue, err := h.engine.NextUnrated(ctx, snap, user.ID)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	respondOK(w, models.RatingReceipt{Rating: rec, Queue: queue}, models.Metadata{
		QueryTimeMS: elapsedMS(start),
		Category:    cat.Slug,
		Scheme:      level.Scheme(),
	})
}

// categoryByID finds a category. The store looks categories up by slug
// only, so this scans the (short) list.
func (h *Handler) categoryByID(r *http.Request, id int64) (analytics.Category, bool, error) {
	cats, err := h.store.Categories(r.Context())
	if err != nil {
		return analytics.Category{}, false, err
	}
	for _, c := range cats {
		if c.ID == id {
			return c, true, nil
		}
	}
	return analytics.Category{}, false, nil
}
