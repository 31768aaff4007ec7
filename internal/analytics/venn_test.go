// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"errors"
	"testing"
)

// vennSnapshot items: X=100 Y=101 Z=102 W=103.
func vennSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	return mustSnapshot(t, SnapshotInput{
		Users: makeUsers(3),
		Items: makeItems("X", "Y", "Z", "W"),
		Records: []RatingRecord{
			rec(1, 100, LevelLoved), rec(1, 101, LevelHated),
			rec(2, 100, LevelLoved), rec(2, 102, LevelLoved),
			rec(3, 101, LevelHated), rec(3, 102, LevelLoved),
		},
	})
}

func regionTitles(r VennRegion) []string {
	var out []string
	for _, e := range r.Unanimous {
		out = append(out, e.Item.Title)
	}
	for _, e := range r.Mixed {
		out = append(out, e.Item.Title)
	}
	return out
}

func TestThreeWay_Scenario(t *testing.T) {
	s := vennSnapshot(t)

	tests := []struct {
		name       string
		membership VennMembership
		want       map[string][]string
	}{
		{
			name:       "rated membership",
			membership: MembershipRated,
			want: map[string][]string{
				RegionOneTwo:   {"X"},
				RegionOneThree: {"Y"},
				RegionTwoThree: {"Z"},
			},
		},
		{
			name:       "positive membership",
			membership: MembershipPositive,
			want: map[string][]string{
				RegionOneTwo:   {"X"},
				RegionTwoThree: {"Z"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ThreeWay(s, [3]int64{1, 2, 3}, tt.membership)
			if err != nil {
				t.Fatalf("ThreeWay() error = %v", err)
			}
			if len(p.Regions) != 7 {
				t.Fatalf("len(Regions) = %d, want 7", len(p.Regions))
			}
			seen := make(map[int64]bool)
			for _, r := range p.Regions {
				got := regionTitles(r)
				if !equalStrings(got, tt.want[r.Name]) && !(len(got) == 0 && len(tt.want[r.Name]) == 0) {
					t.Errorf("region %s = %v, want %v", r.Name, got, tt.want[r.Name])
				}
				for _, e := range append(r.Unanimous, r.Mixed...) {
					if seen[e.Item.ID] {
						t.Errorf("item %s in more than one region", e.Item.Title)
					}
					seen[e.Item.ID] = true
				}
			}
			if p.Region(RegionAllThree).Size() != 0 || p.Region(RegionOnly1).Size() != 0 {
				t.Error("all_three and only1 should be empty")
			}
		})
	}
}

func TestThreeWay_MixedKeepsLabels(t *testing.T) {
	s := mustSnapshot(t, SnapshotInput{
		Users: makeUsers(3),
		Items: makeItems("W", "V"),
		Records: []RatingRecord{
			rec(1, 100, LevelLoved), rec(2, 100, LevelLiked), rec(3, 100, LevelLoved),
			rec(1, 101, LevelLoved), rec(2, 101, LevelLoved), rec(3, 101, LevelLoved),
		},
	})
	p, err := ThreeWay(s, [3]int64{1, 2, 3}, MembershipPositive)
	if err != nil {
		t.Fatalf("ThreeWay() error = %v", err)
	}
	all := p.Region(RegionAllThree)
	if len(all.Unanimous) != 1 || all.Unanimous[0].Item.Title != "V" {
		t.Errorf("Unanimous = %+v, want [V]", all.Unanimous)
	}
	if len(all.Mixed) != 1 {
		t.Fatalf("Mixed = %+v, want [W]", all.Mixed)
	}
	want := []Level{LevelLoved, LevelLiked, LevelLoved}
	for i, l := range all.Mixed[0].Levels {
		if l != want[i] {
			t.Errorf("Mixed[0].Levels = %v, want %v", all.Mixed[0].Levels, want)
			break
		}
	}
	if len(all.Members) != 3 {
		t.Errorf("Members = %v, want 3 users", all.Members)
	}
}

func TestThreeWay_Errors(t *testing.T) {
	s := vennSnapshot(t)
	if _, err := ThreeWay(s, [3]int64{1, 2, 1}, MembershipRated); !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("duplicate users error = %v, want ErrDuplicateUser", err)
	}
	if _, err := ThreeWay(s, [3]int64{1, 2, 9}, MembershipRated); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("unknown user error = %v, want ErrUnknownUser", err)
	}
}
