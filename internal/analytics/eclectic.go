// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"cmp"
	"slices"
)

// ConsensusMap holds the strict-majority level of each item that has one.
type ConsensusMap map[int64]Level

// Consensus computes the majority level of every item with at least minVotes
// opinionated non-staff votes. Items whose top count is shared by two or more
// levels have no consensus.
func Consensus(s *Snapshot, minVotes int) ConsensusMap {
	out := make(ConsensusMap)
	for _, it := range s.items {
		t := Tally(s, it.ID)
		if t.TotalOpinionated < minVotes || t.TotalOpinionated == 0 {
			continue
		}
		var (
			best  Level
			count int
			tied  bool
		)
		for _, l := range s.scheme.Levels() {
			if !l.Opinionated() {
				continue
			}
			n := t.Counts[l]
			switch {
			case n > count:
				best, count, tied = l, n, false
			case n == count && n > 0:
				tied = true
			}
		}
		if !tied && count > 0 {
			out[it.ID] = best
		}
	}
	return out
}

// ContrarianPick is an item where a user went against the consensus.
type ContrarianPick struct {
	Item      Item  `json:"item"`
	UserLevel Level `json:"user_level"`
	Consensus Level `json:"consensus"`
}

// EclecticScore is a user's disagreement rate with the group.
type EclecticScore struct {
	User          User             `json:"user"`
	Score         int              `json:"score"`
	Agreements    int              `json:"agreements"`
	Disagreements int              `json:"disagreements"`
	TopContrarian []ContrarianPick `json:"top_contrarian"`
}

// Eclecticism scores every non-staff user against the consensus. Users with
// fewer than cfg.MinComparisons consensus items are left out. Results are
// ordered by score descending, then by last name.
func Eclecticism(s *Snapshot, cfg EclecticConfig) []EclecticScore {
	consensus := Consensus(s, cfg.MinConsensusVotes)
	out := make([]EclecticScore, 0)

	for _, u := range s.Raters() {
		var (
			agree, disagree int
			picks           []ContrarianPick
		)
		for _, it := range s.items {
			want, ok := consensus[it.ID]
			if !ok {
				continue
			}
			got, ok := s.Rating(u.ID, it.ID)
			if !ok || !got.Opinionated() {
				continue
			}
			if got == want {
				agree++
				continue
			}
			disagree++
			picks = append(picks, ContrarianPick{Item: it, UserLevel: got, Consensus: want})
		}

		total := agree + disagree
		if total < cfg.MinComparisons || total == 0 {
			continue
		}
		// picks follow item order, which is already by title
		if len(picks) > cfg.MaxContrarianPicks {
			picks = picks[:cfg.MaxContrarianPicks]
		}
		if picks == nil {
			picks = []ContrarianPick{}
		}
		out = append(out, EclecticScore{
			User:          u,
			Score:         Percent(disagree, total),
			Agreements:    agree,
			Disagreements: disagree,
			TopContrarian: picks,
		})
	}

	slices.SortFunc(out, func(a, b EclecticScore) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return compareUsersByName(a.User, b.User)
	})
	return out
}
