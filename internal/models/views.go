// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package models

import (
	"github.com/tomtom215/popquiz/internal/analytics"
)

// UserView is a user as shown to API clients.
type UserView struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	IsStaff     bool   `json:"is_staff,omitempty"`
}

// NewUserView renders u. With fullNames false the last name is reduced to
// its initial.
func NewUserView(u analytics.User, fullNames bool) UserView {
	return UserView{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: analytics.DisplayName(u, fullNames),
		IsStaff:     u.IsStaff,
	}
}

// NewUserViews renders a list. A nil input yields an empty list.
func NewUserViews(us []analytics.User, fullNames bool) []UserView {
	out := make([]UserView, len(us))
	for i, u := range us {
		out[i] = NewUserView(u, fullNames)
	}
	return out
}

// MatchView is one row of a compatibility board.
type MatchView struct {
	User UserView `json:"user"`
	analytics.CompatibilityResult
}

// CompatibilityBoardView mirrors analytics.CompatibilityBoard.
type CompatibilityBoardView struct {
	User      UserView         `json:"user"`
	Policy    analytics.Policy `json:"policy"`
	Matches   []MatchView      `json:"matches"`
	NoOverlap []UserView       `json:"no_overlap"`
	Most      *MatchView       `json:"most_compatible"`
	Least     *MatchView       `json:"least_compatible"`
}

func newMatchView(m analytics.Match, fullNames bool) MatchView {
	return MatchView{User: NewUserView(m.User, fullNames), CompatibilityResult: m.CompatibilityResult}
}

// NewCompatibilityBoardView converts b.
func NewCompatibilityBoardView(b analytics.CompatibilityBoard, fullNames bool) CompatibilityBoardView {
	v := CompatibilityBoardView{
		User:      NewUserView(b.User, fullNames),
		Policy:    b.Policy,
		Matches:   make([]MatchView, len(b.Matches)),
		NoOverlap: NewUserViews(b.NoOverlap, fullNames),
	}
	for i, m := range b.Matches {
		v.Matches[i] = newMatchView(m, fullNames)
	}
	if b.Most != nil {
		most := newMatchView(*b.Most, fullNames)
		v.Most = &most
	}
	if b.Least != nil {
		least := newMatchView(*b.Least, fullNames)
		v.Least = &least
	}
	return v
}

// ComparisonView answers a two-user comparison: the agreement score under
// the chosen policy plus the item partition.
type ComparisonView struct {
	First         UserView                      `json:"first"`
	Second        UserView                      `json:"second"`
	Policy        analytics.Policy              `json:"policy"`
	Compatibility analytics.CompatibilityResult `json:"compatibility"`
	Buckets       []analytics.PartitionBucket   `json:"buckets"`
}

// NewComparisonView combines a compatibility result with its partition.
func NewComparisonView(p analytics.Partition, policy analytics.Policy, c analytics.CompatibilityResult, fullNames bool) ComparisonView {
	return ComparisonView{
		First:         NewUserView(p.First, fullNames),
		Second:        NewUserView(p.Second, fullNames),
		Policy:        policy,
		Compatibility: c,
		Buckets:       p.Buckets,
	}
}

// ThreeWayView mirrors analytics.ThreeWayPartition.
type ThreeWayView struct {
	Users      [3]UserView              `json:"users"`
	Membership analytics.VennMembership `json:"membership"`
	Regions    []analytics.VennRegion   `json:"regions"`
}

// NewThreeWayView converts p.
func NewThreeWayView(p analytics.ThreeWayPartition, fullNames bool) ThreeWayView {
	v := ThreeWayView{Membership: p.Membership, Regions: p.Regions}
	for i, u := range p.Users {
		v.Users[i] = NewUserView(u, fullNames)
	}
	return v
}

// EclecticView is one row of the eclecticism leaderboard.
type EclecticView struct {
	User          UserView                   `json:"user"`
	Score         int                        `json:"score"`
	Agreements    int                        `json:"agreements"`
	Disagreements int                        `json:"disagreements"`
	TopContrarian []analytics.ContrarianPick `json:"top_contrarian"`
}

// NewEclecticViews converts a leaderboard.
func NewEclecticViews(scores []analytics.EclecticScore, fullNames bool) []EclecticView {
	out := make([]EclecticView, len(scores))
	for i, s := range scores {
		out[i] = EclecticView{
			User:          NewUserView(s.User, fullNames),
			Score:         s.Score,
			Agreements:    s.Agreements,
			Disagreements: s.Disagreements,
			TopContrarian: s.TopContrarian,
		}
	}
	return out
}

// ClusterUserView is one leaf of the dendrogram.
type ClusterUserView struct {
	User  UserView `json:"user"`
	Index int      `json:"index"`
	Color string   `json:"color"`
}

// SimilarPairView is one entry of the most-similar list.
type SimilarPairView struct {
	First      UserView `json:"first"`
	Second     UserView `json:"second"`
	Similarity float64  `json:"similarity"`
}

// DendrogramView mirrors analytics.Dendrogram.
type DendrogramView struct {
	HasData    bool                     `json:"has_data"`
	Users      []ClusterUserView        `json:"users"`
	Similarity [][]float64              `json:"similarity"`
	Merges     []analytics.ClusterMerge `json:"merges"`
	TopPairs   []SimilarPairView        `json:"top_pairs"`
}

// NewDendrogramView converts d.
func NewDendrogramView(d analytics.Dendrogram, fullNames bool) DendrogramView {
	v := DendrogramView{
		HasData:    d.HasData,
		Users:      make([]ClusterUserView, len(d.Users)),
		Similarity: d.Similarity,
		Merges:     d.Merges,
		TopPairs:   make([]SimilarPairView, len(d.TopPairs)),
	}
	if v.Similarity == nil {
		v.Similarity = [][]float64{}
	}
	for i, u := range d.Users {
		v.Users[i] = ClusterUserView{User: NewUserView(u.User, fullNames), Index: u.Index, Color: u.Color}
	}
	for i, p := range d.TopPairs {
		v.TopPairs[i] = SimilarPairView{
			First:      NewUserView(p.First, fullNames),
			Second:     NewUserView(p.Second, fullNames),
			Similarity: p.Similarity,
		}
	}
	return v
}

// ProfileView mirrors analytics.Profile.
type ProfileView struct {
	User        UserView                    `json:"user"`
	Sort        analytics.ProfileSort       `json:"sort"`
	Categories  []analytics.CategoryProfile `json:"categories"`
	Counts      map[analytics.Level]int     `json:"counts"`
	Total       int                         `json:"total"`
	Percentages map[analytics.Level]int     `json:"percentages"`
}

// NewProfileView converts p.
func NewProfileView(p analytics.Profile, fullNames bool) ProfileView {
	return ProfileView{
		User:        NewUserView(p.User, fullNames),
		Sort:        p.Sort,
		Categories:  p.Categories,
		Counts:      p.Counts,
		Total:       p.Total,
		Percentages: p.Percentages,
	}
}

// LevelVotersView lists who chose one level.
type LevelVotersView struct {
	Level analytics.Level `json:"level"`
	Users []UserView      `json:"users"`
}

// ItemBreakdownView mirrors analytics.ItemBreakdown.
type ItemBreakdownView struct {
	Item    analytics.Item      `json:"item"`
	Tally   analytics.ItemTally `json:"tally"`
	Score   *int                `json:"score"`
	Average *float64            `json:"average"`
	Voters  []LevelVotersView   `json:"voters"`
}

// NewItemBreakdownView converts b.
func NewItemBreakdownView(b analytics.ItemBreakdown, fullNames bool) ItemBreakdownView {
	v := ItemBreakdownView{
		Item:    b.Item,
		Tally:   b.Tally,
		Score:   b.Score,
		Average: b.Average,
		Voters:  make([]LevelVotersView, len(b.Voters)),
	}
	for i, lv := range b.Voters {
		v.Voters[i] = LevelVotersView{Level: lv.Level, Users: NewUserViews(lv.Users, fullNames)}
	}
	return v
}
