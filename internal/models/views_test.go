// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/popquiz/internal/analytics"
)

var (
	ann = analytics.User{ID: 1, Username: "ann", FirstName: "Ann", LastName: "Adams"}
	bob = analytics.User{ID: 2, Username: "bob", FirstName: "Bob", LastName: "Baker"}
	cat = analytics.User{ID: 3, Username: "cat", FirstName: "Cat", LastName: "Cole", IsStaff: true}
)

func TestNewUserView(t *testing.T) {
	tests := []struct {
		name      string
		user      analytics.User
		fullNames bool
		want      string
	}{
		{"anonymous viewer", ann, false, "Ann A"},
		{"authenticated viewer", ann, true, "Ann Adams"},
		{"no last name", analytics.User{ID: 9, Username: "solo", FirstName: "Solo"}, false, "Solo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewUserView(tt.user, tt.fullNames)
			if v.DisplayName != tt.want {
				t.Errorf("DisplayName = %q, want %q", v.DisplayName, tt.want)
			}
			if v.ID != tt.user.ID || v.Username != tt.user.Username {
				t.Errorf("view = %+v", v)
			}
		})
	}
}

func TestNewUserViews_NilIsEmpty(t *testing.T) {
	got := NewUserViews(nil, false)
	if got == nil || len(got) != 0 {
		t.Errorf("NewUserViews(nil) = %#v, want empty slice", got)
	}
	data, err := json.Marshal(got)
	if err != nil || string(data) != "[]" {
		t.Errorf("Marshal = %s, %v", data, err)
	}
}

func TestNewCompatibilityBoardView(t *testing.T) {
	score := 75
	board := analytics.CompatibilityBoard{
		User:    ann,
		Policy:  analytics.Policy{Kind: analytics.PolicyCategory},
		Matches: []analytics.Match{{User: bob, CompatibilityResult: analytics.CompatibilityResult{Score: &score, Common: 4, Agree: 3, Disagree: 1}}},
	}
	board.Most = &board.Matches[0]
	board.Least = &board.Matches[0]

	v := NewCompatibilityBoardView(board, false)
	if v.Most == nil || v.Most.User.DisplayName != "Bob B" || *v.Most.Score != 75 {
		t.Errorf("Most = %+v", v.Most)
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{`"display_name":"Ann A"`, `"common":4`, `"no_overlap":[]`, `"most_compatible":{`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON %s missing %s", out, want)
		}
	}
	if strings.Contains(out, "Adams") || strings.Contains(out, "Baker") {
		t.Errorf("JSON leaks last names: %s", out)
	}
}

func TestNewDendrogramView_Empty(t *testing.T) {
	v := NewDendrogramView(analytics.Dendrogram{Merges: []analytics.ClusterMerge{}}, false)
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{`"has_data":false`, `"users":[]`, `"similarity":[]`, `"merges":[]`, `"top_pairs":[]`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON %s missing %s", out, want)
		}
	}
}

func TestNewDendrogramView(t *testing.T) {
	d := analytics.Dendrogram{
		HasData:    true,
		Users:      []analytics.ClusterUser{{User: ann, Index: 0, Color: "#f00"}, {User: bob, Index: 1, Color: "#0f0"}},
		Similarity: [][]float64{{1, 0.5}, {0.5, 1}},
		Merges:     []analytics.ClusterMerge{{ID: 2, Left: 0, Right: 1, Height: 0.5, Size: 2, Members: []int64{1, 2}}},
		TopPairs:   []analytics.SimilarPair{{First: ann, Second: bob, Similarity: 0.5}},
	}
	v := NewDendrogramView(d, true)
	if v.Users[1].User.DisplayName != "Bob Baker" || v.Users[1].Color != "#0f0" {
		t.Errorf("Users[1] = %+v", v.Users[1])
	}
	if v.TopPairs[0].First.Username != "ann" || v.TopPairs[0].Similarity != 0.5 {
		t.Errorf("TopPairs = %+v", v.TopPairs)
	}
}

func TestNewThreeWayAndEclecticViews(t *testing.T) {
	p := analytics.ThreeWayPartition{Users: [3]analytics.User{ann, bob, cat}, Membership: analytics.MembershipRated}
	v := NewThreeWayView(p, false)
	if v.Users[2].DisplayName != "Cat C" || !v.Users[2].IsStaff {
		t.Errorf("Users[2] = %+v", v.Users[2])
	}

	e := NewEclecticViews([]analytics.EclecticScore{{User: bob, Score: 40, Agreements: 3, Disagreements: 2}}, false)
	if len(e) != 1 || e[0].User.DisplayName != "Bob B" || e[0].Score != 40 {
		t.Errorf("eclectic = %+v", e)
	}
}

func TestNewItemBreakdownView(t *testing.T) {
	b := analytics.ItemBreakdown{
		Item:   analytics.Item{ID: 10, Title: "Heat"},
		Voters: []analytics.LevelVoters{{Level: analytics.LevelLoved, Users: []analytics.User{ann}}},
	}
	v := NewItemBreakdownView(b, false)
	if len(v.Voters) != 1 || v.Voters[0].Users[0].DisplayName != "Ann A" {
		t.Errorf("Voters = %+v", v.Voters)
	}
}

func TestAPIResponse_ErrorOmitted(t *testing.T) {
	data, err := json.Marshal(APIResponse{Status: "success", Data: []int{}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), `"error"`) {
		t.Errorf("success envelope contains error: %s", data)
	}
}
