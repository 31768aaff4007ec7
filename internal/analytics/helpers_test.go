// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"fmt"
	"testing"
	"time"
)

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// rec builds a record at baseTime.
func rec(user, item int64, l Level) RatingRecord {
	return RatingRecord{UserID: user, ItemID: item, Level: l, UpdatedAt: baseTime}
}

// makeUsers returns n non-staff users with IDs 1..n.
func makeUsers(n int) []User {
	out := make([]User, n)
	for i := range out {
		id := int64(i + 1)
		out[i] = User{
			ID:        id,
			Username:  fmt.Sprintf("user%d", id),
			FirstName: fmt.Sprintf("First%d", id),
			LastName:  fmt.Sprintf("Last%02d", id),
		}
	}
	return out
}

// makeItems returns items with IDs 100, 101, ... in category 1.
func makeItems(titles ...string) []Item {
	out := make([]Item, len(titles))
	for i, title := range titles {
		out[i] = Item{ID: int64(100 + i), CategoryID: 1, Title: title}
	}
	return out
}

func mustSnapshot(t *testing.T, in SnapshotInput) *Snapshot {
	t.Helper()
	s, err := NewSnapshot(in)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	return s
}

func itemTitles(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
