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

// Profile summarizes one user's ratings across every category.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snap, err := h.snapshot(r.Context(), allCategories)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	user, ok := lookupUser(w, r, snap, "username", chi.URLParam(r, "username"))
	if !ok {
		return
	}

	p, err := h.engine.Profile(r.Context(), snap, user.ID, analytics.ProfileSort(r.URL.Query().Get("sort")))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondOK(w, models.NewProfileView(p, h.fullNames), models.Metadata{
		QueryTimeMS: elapsedMS(start),
		Scheme:      snap.Scheme(),
		Count:       intPtr(p.Total),
	})
}
