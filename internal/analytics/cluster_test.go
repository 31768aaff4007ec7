// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"math"
	"testing"
)

func TestBuildDendrogram_IdenticalUsers(t *testing.T) {
	var records []RatingRecord
	for u := int64(1); u <= 3; u++ {
		records = append(records,
			rec(u, 100, LevelLoved),
			rec(u, 101, LevelHated),
			rec(u, 102, LevelOkay),
		)
	}
	s := mustSnapshot(t, SnapshotInput{Users: makeUsers(3), Items: makeItems("A", "B", "C"), Records: records})

	d := BuildDendrogram(s, DefaultConfig().Clustering)
	if !d.HasData {
		t.Fatal("HasData = false, want true")
	}
	if len(d.Merges) != 2 {
		t.Fatalf("len(Merges) = %d, want 2", len(d.Merges))
	}
	for i := range d.Users {
		for j := range d.Users {
			if d.Similarity[i][j] != 1 {
				t.Errorf("sim[%d][%d] = %f, want 1", i, j, d.Similarity[i][j])
			}
		}
	}
	for _, m := range d.Merges {
		if math.Abs(m.Height) > 1e-12 {
			t.Errorf("merge %d height = %f, want 0", m.ID, m.Height)
		}
	}
	// lowest pair first, then the new cluster with the remaining leaf
	if d.Merges[0].Left != 0 || d.Merges[0].Right != 1 || d.Merges[0].ID != 3 {
		t.Errorf("first merge = %+v, want 0+1 -> 3", d.Merges[0])
	}
	if d.Merges[1].Left != 2 || d.Merges[1].Right != 3 || d.Merges[1].Size != 3 {
		t.Errorf("second merge = %+v, want 2+3 -> size 3", d.Merges[1])
	}
}

func TestBuildDendrogram_NoData(t *testing.T) {
	users := makeUsers(3)
	users[2].IsStaff = true

	tests := []struct {
		name    string
		records []RatingRecord
	}{
		{"nobody rated", nil},
		{"one rater", []RatingRecord{rec(1, 100, LevelLoved)}},
		{"second rater only skipped", []RatingRecord{rec(1, 100, LevelLoved), rec(2, 100, LevelNoRating)}},
		{"second rater is staff", []RatingRecord{rec(1, 100, LevelLoved), rec(3, 100, LevelLoved)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSnapshot(t, SnapshotInput{Users: users, Items: makeItems("A"), Records: tt.records})
			d := BuildDendrogram(s, DefaultConfig().Clustering)
			if d.HasData {
				t.Error("HasData = true, want false")
			}
			if d.Merges == nil || len(d.Merges) != 0 {
				t.Errorf("Merges = %v, want empty slice", d.Merges)
			}
		})
	}
}

func TestBuildDendrogram_TwoGroups(t *testing.T) {
	s := mustSnapshot(t, SnapshotInput{
		Users: makeUsers(4),
		Items: makeItems("A", "B"),
		Records: []RatingRecord{
			rec(1, 100, LevelLoved), rec(1, 101, LevelLoved),
			rec(2, 100, LevelLoved), rec(2, 101, LevelLoved),
			rec(3, 100, LevelHated), rec(3, 101, LevelHated),
			rec(4, 100, LevelHated), rec(4, 101, LevelHated),
		},
	})
	d := BuildDendrogram(s, DefaultConfig().Clustering)

	want := []struct {
		left, right int
		height      float64
	}{
		{0, 1, 0},
		{2, 3, 0},
		{4, 5, 1},
	}
	if len(d.Merges) != len(want) {
		t.Fatalf("len(Merges) = %d, want %d", len(d.Merges), len(want))
	}
	for i, w := range want {
		m := d.Merges[i]
		if m.Left != w.left || m.Right != w.right || math.Abs(m.Height-w.height) > 1e-12 {
			t.Errorf("merge %d = %+v, want %d+%d at %f", i, m, w.left, w.right, w.height)
		}
	}
	if d.TopPairs[0].Similarity != 1 || d.TopPairs[len(d.TopPairs)-1].Similarity != 0 {
		t.Errorf("TopPairs = %+v, want sorted descending", d.TopPairs)
	}
}

func TestBuildDendrogram_NoOverlapDefault(t *testing.T) {
	s := mustSnapshot(t, SnapshotInput{
		Users:   makeUsers(2),
		Items:   makeItems("A", "B"),
		Records: []RatingRecord{rec(1, 100, LevelLoved), rec(2, 101, LevelLoved)},
	})
	d := BuildDendrogram(s, DefaultConfig().Clustering)
	if d.Similarity[0][1] != 0.5 {
		t.Errorf("sim = %f, want 0.5", d.Similarity[0][1])
	}
	if d.Merges[0].Height != 0.5 {
		t.Errorf("height = %f, want 0.5", d.Merges[0].Height)
	}
}

// TestBuildDendrogram_AverageLinkage checks every merge height against the
// mean pairwise distance recomputed from scratch.
func TestBuildDendrogram_AverageLinkage(t *testing.T) {
	levels := []Level{LevelLoved, LevelLiked, LevelOkay, LevelDisliked, LevelHated}
	var records []RatingRecord
	for u := int64(1); u <= 6; u++ {
		for i := int64(0); i < 8; i++ {
			if (u+i)%4 == 0 {
				continue
			}
			records = append(records, rec(u, 100+i, levels[(u*i+u)%5]))
		}
	}
	s := mustSnapshot(t, SnapshotInput{
		Users:   makeUsers(6),
		Items:   makeItems("a", "b", "c", "d", "e", "f", "g", "h"),
		Records: records,
	})
	d := BuildDendrogram(s, DefaultConfig().Clustering)
	if len(d.Merges) != 5 {
		t.Fatalf("len(Merges) = %d, want 5", len(d.Merges))
	}

	members := make(map[int][]int)
	for i := range d.Users {
		members[i] = []int{i}
	}
	prevHeight := -1.0
	for _, m := range d.Merges {
		var sum float64
		for _, a := range members[m.Left] {
			for _, b := range members[m.Right] {
				sum += 1 - d.Similarity[a][b]
			}
		}
		avg := sum / float64(len(members[m.Left])*len(members[m.Right]))
		if math.Abs(avg-m.Height) > 1e-9 {
			t.Errorf("merge %d height = %f, brute force = %f", m.ID, m.Height, avg)
		}
		if m.Height < prevHeight-1e-9 {
			t.Errorf("merge %d height %f below previous %f", m.ID, m.Height, prevHeight)
		}
		prevHeight = m.Height
		members[m.ID] = append(append([]int{}, members[m.Left]...), members[m.Right]...)
	}
	if last := d.Merges[len(d.Merges)-1]; last.Size != 6 {
		t.Errorf("final cluster size = %d, want 6", last.Size)
	}

	again := BuildDendrogram(s, DefaultConfig().Clustering)
	for i := range d.Merges {
		if d.Merges[i].Left != again.Merges[i].Left || d.Merges[i].Right != again.Merges[i].Right {
			t.Fatalf("merge %d differs between runs", i)
		}
	}
}

func TestBuildDendrogram_PaletteAndTopPairs(t *testing.T) {
	var records []RatingRecord
	for u := int64(1); u <= 5; u++ {
		records = append(records, rec(u, 100, LevelLoved))
	}
	s := mustSnapshot(t, SnapshotInput{Users: makeUsers(5), Items: makeItems("A"), Records: records})

	cfg := DefaultConfig().Clustering
	cfg.Palette = []string{"red", "blue"}
	cfg.TopPairs = 3
	d := BuildDendrogram(s, cfg)

	wantColors := []string{"red", "blue", "red", "blue", "red"}
	for i, u := range d.Users {
		if u.Color != wantColors[i] {
			t.Errorf("user %d color = %s, want %s", i, u.Color, wantColors[i])
		}
	}
	if len(d.TopPairs) != 3 {
		t.Errorf("len(TopPairs) = %d, want 3", len(d.TopPairs))
	}
}
