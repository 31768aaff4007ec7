// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"testing"
)

// eclecticSnapshot uses the three-level scheme.
// Items: I1=100 I2=101 I3=102 T=103 I5=104.
func eclecticSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	users := []User{
		{ID: 1, Username: "zed", FirstName: "Zed", LastName: "Zimmer"},
		{ID: 2, Username: "ann", FirstName: "Ann", LastName: "Adams"},
		{ID: 3, Username: "cat", FirstName: "Cat", LastName: "Cole"},
		{ID: 4, Username: "dan", FirstName: "Dan", LastName: "Dunn"},
		{ID: 5, Username: "staff", FirstName: "Sam", LastName: "Staff", IsStaff: true},
		{ID: 6, Username: "eve", FirstName: "Eve", LastName: "Early"},
	}
	return mustSnapshot(t, SnapshotInput{
		Users: users,
		Items: makeItems("I1", "I2", "I3", "T", "I5"),
		Records: []RatingRecord{
			rec(1, 100, LevelYes), rec(2, 100, LevelYes), rec(3, 100, LevelYes), rec(4, 100, LevelNo),
			rec(1, 101, LevelNo), rec(2, 101, LevelNo), rec(3, 101, LevelNo), rec(4, 101, LevelYes),
			rec(1, 102, LevelMeh), rec(2, 102, LevelMeh), rec(3, 102, LevelYes), rec(4, 102, LevelNo),
			rec(1, 103, LevelYes), rec(2, 103, LevelYes), rec(3, 103, LevelNo), rec(4, 103, LevelNo),
			rec(1, 104, LevelYes),
			rec(5, 102, LevelNo), rec(5, 102, LevelNo), // staff would break the I3 majority
			rec(6, 100, LevelYes),
			rec(4, 104, LevelNoAnswer),
		},
	})
}

func TestConsensus(t *testing.T) {
	s := eclecticSnapshot(t)
	c := Consensus(s, 2)

	want := map[int64]Level{100: LevelYes, 101: LevelNo, 102: LevelMeh}
	if len(c) != len(want) {
		t.Errorf("Consensus() = %v, want %v", c, want)
	}
	for id, l := range want {
		if c[id] != l {
			t.Errorf("consensus[%d] = %q, want %q", id, c[id], l)
		}
	}
	if _, ok := c[103]; ok {
		t.Error("tied item T should have no consensus")
	}
	if _, ok := c[104]; ok {
		t.Error("single-vote item should have no consensus")
	}
}

func TestEclecticism(t *testing.T) {
	s := eclecticSnapshot(t)
	got := Eclecticism(s, DefaultConfig().Eclectic)

	var names []string
	for _, e := range got {
		names = append(names, e.User.Username)
	}
	// eve has one comparison and does not qualify; ann sorts before zed by last name
	if !equalStrings(names, []string{"dan", "cat", "ann", "zed"}) {
		t.Fatalf("order = %v", names)
	}

	dan := got[0]
	if dan.Score != 100 || dan.Agreements != 0 || dan.Disagreements != 3 {
		t.Errorf("dan = %+v, want score 100 with 0/3", dan)
	}
	if len(dan.TopContrarian) != 3 || dan.TopContrarian[0].Item.Title != "I1" {
		t.Errorf("dan picks = %+v", dan.TopContrarian)
	}
	if p := dan.TopContrarian[0]; p.UserLevel != LevelNo || p.Consensus != LevelYes {
		t.Errorf("first pick = %+v, want no vs yes", p)
	}

	if cat := got[1]; cat.Score != 33 || cat.Disagreements != 1 {
		t.Errorf("cat = %+v, want score 33", cat)
	}
	if ann := got[2]; ann.Score != 0 || len(ann.TopContrarian) != 0 {
		t.Errorf("ann = %+v, want score 0", ann)
	}
}

func TestEclecticism_PickCap(t *testing.T) {
	s := eclecticSnapshot(t)
	cfg := DefaultConfig().Eclectic
	cfg.MaxContrarianPicks = 2

	got := Eclecticism(s, cfg)
	picks := got[0].TopContrarian
	if len(picks) != 2 || picks[0].Item.Title != "I1" || picks[1].Item.Title != "I2" {
		t.Errorf("picks = %+v, want I1, I2", picks)
	}
}

func TestEclecticism_NoData(t *testing.T) {
	s := mustSnapshot(t, SnapshotInput{Users: makeUsers(2), Items: makeItems("A")})
	if got := Eclecticism(s, DefaultConfig().Eclectic); len(got) != 0 {
		t.Errorf("Eclecticism() = %v, want empty", got)
	}
}
