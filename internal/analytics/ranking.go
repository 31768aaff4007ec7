// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"cmp"
	"slices"
)

// RankedItem is one entry of a ranking.
type RankedItem struct {
	Item    Item      `json:"item"`
	Tally   ItemTally `json:"tally"`
	Score   *int      `json:"score"`
	Average *float64  `json:"average"`
}

// DecadeRanking is the ranking of the items released in one decade.
type DecadeRanking struct {
	Decade int          `json:"decade"`
	Items  []RankedItem `json:"items"`
}

// Rank scores every item of the snapshot and orders them by score
// descending with unscored items last, then by most-positive count
// descending, then by title.
func Rank(s *Snapshot, mode ScoringMode, cfg ScoringConfig) []RankedItem {
	tallies := TallyAll(s)
	scorer := NewScorer(mode, cfg, tallyList(s, tallies))
	return rankItems(s.items, tallies, scorer)
}

// Decades groups the ranking by release decade, ascending. Items without a
// year are left out. Priors are taken from the whole snapshot so scores match
// the overall ranking.
func Decades(s *Snapshot, mode ScoringMode, cfg ScoringConfig) []DecadeRanking {
	tallies := TallyAll(s)
	scorer := NewScorer(mode, cfg, tallyList(s, tallies))

	grouped := make(map[int][]Item)
	for _, it := range s.items {
		if it.Year <= 0 {
			continue
		}
		d := it.Year / 10 * 10
		grouped[d] = append(grouped[d], it)
	}

	out := make([]DecadeRanking, 0, len(grouped))
	for d, items := range grouped {
		out = append(out, DecadeRanking{Decade: d, Items: rankItems(items, tallies, scorer)})
	}
	slices.SortFunc(out, func(a, b DecadeRanking) int { return cmp.Compare(a.Decade, b.Decade) })
	return out
}

func rankItems(items []Item, tallies map[int64]ItemTally, scorer Scorer) []RankedItem {
	out := make([]RankedItem, 0, len(items))
	for _, it := range items {
		t := tallies[it.ID]
		ri := RankedItem{Item: it, Tally: t, Score: scorer.Score(t)}
		if avg, ok := t.Average(); ok {
			ri.Average = &avg
		}
		out = append(out, ri)
	}
	slices.SortFunc(out, compareRanked)
	return out
}

func compareRanked(a, b RankedItem) int {
	switch {
	case a.Score != nil && b.Score == nil:
		return -1
	case a.Score == nil && b.Score != nil:
		return 1
	case a.Score != nil && b.Score != nil && *a.Score != *b.Score:
		return cmp.Compare(*b.Score, *a.Score)
	}
	if c := cmp.Compare(b.Tally.MostPositive(), a.Tally.MostPositive()); c != 0 {
		return c
	}
	return compareItems(a.Item, b.Item)
}

// tallyList returns the tallies in snapshot item order so folds over them
// are deterministic.
func tallyList(s *Snapshot, tallies map[int64]ItemTally) []ItemTally {
	out := make([]ItemTally, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, tallies[it.ID])
	}
	return out
}
