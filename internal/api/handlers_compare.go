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

// Compare scores two users against each other and partitions the items
// they rated.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cat, snap, ok := h.categorySnapshot(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	first, ok := lookupUser(w, r, snap, "user1", q.Get("user1"))
	if !ok {
		return
	}
	second, ok := lookupUser(w, r, snap, "user2", q.Get("user2"))
	if !ok {
		return
	}

	policy, err := h.engine.ResolvePolicy(analytics.PolicyKind(q.Get("policy")))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	compat, err := h.engine.Compatibility(r.Context(), snap, first.ID, second.ID, policy.Kind)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	part, err := h.engine.Partition(r.Context(), snap, first.ID, second.ID)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	view := models.NewComparisonView(part, policy, compat, h.fullNames)
	respondOK(w, view, categoryMeta(start, cat, snap, compat.Common))
}

// CompareThree returns the Venn partition of three users.
func (h *Handler) CompareThree(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cat, snap, ok := h.categorySnapshot(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	var ids [3]int64
	for i, field := range [3]string{"user1", "user2", "user3"} {
		u, ok := lookupUser(w, r, snap, field, q.Get(field))
		if !ok {
			return
		}
		ids[i] = u.ID
	}

	p, err := h.engine.ThreeWay(r.Context(), snap, ids, analytics.VennMembership(q.Get("membership")))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	view := models.NewThreeWayView(p, h.fullNames)
	respondOK(w, view, categoryMeta(start, cat, snap, len(view.Regions)))
}

// Compatibility ranks every other rater by agreement with {username}.
func (h *Handler) Compatibility(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cat, snap, ok := h.categorySnapshot(w, r)
	if !ok {
		return
	}
	user, ok := lookupUser(w, r, snap, "username", chi.URLParam(r, "username"))
	if !ok {
		return
	}

	board, err := h.engine.CompatibilityBoard(r.Context(), snap, user.ID, analytics.PolicyKind(r.URL.Query().Get("policy")))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	view := models.NewCompatibilityBoardView(board, h.fullNames)
	respondOK(w, view, categoryMeta(start, cat, snap, len(view.Matches)))
}
