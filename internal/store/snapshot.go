// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package store

import (
	"context"
	"fmt"

	"github.com/tomtom215/popquiz/internal/analytics"
)

// LoadSnapshot reads the rows for one category (0 for all) and builds an
// analytics snapshot from them.
func LoadSnapshot(ctx context.Context, st Store, categoryID int64) (*analytics.Snapshot, error) {
	in, err := LoadInput(ctx, st, categoryID)
	if err != nil {
		return nil, err
	}
	snap, err := analytics.NewSnapshot(in)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	return snap, nil
}

// LoadInput reads the raw relation without validating it.
func LoadInput(ctx context.Context, st Store, categoryID int64) (analytics.SnapshotInput, error) {
	var in analytics.SnapshotInput
	var err error

	if in.Categories, err = st.Categories(ctx); err != nil {
		return in, fmt.Errorf("load categories: %w", err)
	}
	if in.Users, err = st.Users(ctx); err != nil {
		return in, fmt.Errorf("load users: %w", err)
	}
	if in.Items, err = st.Items(ctx, categoryID); err != nil {
		return in, fmt.Errorf("load items: %w", err)
	}
	if in.Records, err = st.Ratings(ctx, categoryID); err != nil {
		return in, fmt.Errorf("load ratings: %w", err)
	}
	return in, nil
}
