// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/popquiz/internal/analytics"
	"github.com/tomtom215/popquiz/internal/models"
)

func categoryMeta(start time.Time, cat analytics.Category, snap *analytics.Snapshot, count int) models.Metadata {
	return models.Metadata{
		QueryTimeMS: elapsedMS(start),
		Category:    cat.Slug,
		Scheme:      snap.Scheme(),
		Count:       intPtr(count),
	}
}

// Categories lists every category.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cats, err := h.store.Categories(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	if cats == nil {
		cats = []analytics.Category{}
	}
	respondOK(w, cats, models.Metadata{QueryTimeMS: elapsedMS(start), Count: intPtr(len(cats))})
}

// Ranking orders the category's items by score.
func (h *Handler) Ranking(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cat, snap, ok := h.categorySnapshot(w, r)
	if !ok {
		return
	}

	ranked, err := h.engine.Ranking(r.Context(), snap, analytics.ScoringMode(r.URL.Query().Get("mode")))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondOK(w, ranked, categoryMeta(start, cat, snap, len(ranked)))
}

// Decades groups the ranking by release decade.
func (h *Handler) Decades(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cat, snap, ok := h.categorySnapshot(w, r)
	if !ok {
		return
	}

	decades, err := h.engine.Decades(r.Context(), snap, analytics.ScoringMode(r.URL.Query().Get("mode")))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondOK(w, decades, categoryMeta(start, cat, snap, len(decades)))
}

// Divisive lists the most polarizing items.
func (h *Handler) Divisive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cat, snap, ok := h.categorySnapshot(w, r)
	if !ok {
		return
	}

	items, err := h.engine.Divisive(r.Context(), snap, analytics.DivisivenessMetric(r.URL.Query().Get("metric")))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondOK(w, items, categoryMeta(start, cat, snap, len(items)))
}

// Eclectic ranks raters by how often they disagree with the consensus.
func (h *Handler) Eclectic(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cat, snap, ok := h.categorySnapshot(w, r)
	if !ok {
		return
	}

	scores, err := h.engine.Eclecticism(r.Context(), snap)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	views := models.NewEclecticViews(scores, h.fullNames)
	respondOK(w, views, categoryMeta(start, cat, snap, len(views)))
}

// Clusters returns the taste dendrogram.
func (h *Handler) Clusters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cat, snap, ok := h.categorySnapshot(w, r)
	if !ok {
		return
	}

	d, err := h.engine.Dendrogram(r.Context(), snap)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	view := models.NewDendrogramView(d, h.fullNames)
	respondOK(w, view, categoryMeta(start, cat, snap, len(view.Users)))
}

// Item returns one item's tally, score and voters.
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	itemID, apiErr := pathInt64(r, "itemID")
	if apiErr != nil {
		respondValidation(w, apiErr)
		return
	}
	cat, snap, ok := h.categorySnapshot(w, r)
	if !ok {
		return
	}

	b, err := h.engine.ItemBreakdown(r.Context(), snap, itemID, analytics.ScoringMode(r.URL.Query().Get("mode")))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	view := models.NewItemBreakdownView(b, h.fullNames)
	respondOK(w, view, categoryMeta(start, cat, snap, b.Tally.TotalOpinionated))
}

// Queue returns the user's next unrated item in the category.
func (h *Handler) Queue(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cat, snap, ok := h.categorySnapshot(w, r)
	if !ok {
		return
	}
	user, ok := lookupUser(w, r, snap, "username", chi.URLParam(r, "username"))
	if !ok {
		return
	}

	q, err := h.engine.NextUnrated(r.Context(), snap, user.ID)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondOK(w, q, categoryMeta(start, cat, snap, q.Remaining))
}
