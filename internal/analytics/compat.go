// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"cmp"
	"slices"
	"strings"
)

// CompatibilityResult is the agreement between two users.
type CompatibilityResult struct {
	// Score is round(agree/common*100), nil when the users share no items.
	Score    *int `json:"score"`
	Common   int  `json:"common"`
	Agree    int  `json:"agree"`
	Disagree int  `json:"disagree"`
}

// Match is one row of a compatibility board.
type Match struct {
	User User `json:"user"`
	CompatibilityResult
}

// CompatibilityBoard ranks every other rater by compatibility with one user.
type CompatibilityBoard struct {
	User    User    `json:"user"`
	Policy  Policy  `json:"policy"`
	Matches []Match `json:"matches"`

	// NoOverlap lists raters who share no items with the user.
	NoOverlap []User `json:"no_overlap"`

	Most  *Match `json:"most_compatible"`
	Least *Match `json:"least_compatible"`
}

// Compatibility compares two users under a policy. The result is symmetric
// in its arguments.
func Compatibility(s *Snapshot, a, b int64, p Policy) (CompatibilityResult, error) {
	if _, err := s.requireUser(a); err != nil {
		return CompatibilityResult{}, err
	}
	if _, err := s.requireUser(b); err != nil {
		return CompatibilityResult{}, err
	}
	return compare(p.filter(s.opinions(a)), p.filter(s.opinions(b)), p), nil
}

func compare(ra, rb map[int64]Level, p Policy) CompatibilityResult {
	var res CompatibilityResult
	for itemID, la := range ra {
		lb, ok := rb[itemID]
		if !ok {
			continue
		}
		res.Common++
		if p.Agrees(la, lb) {
			res.Agree++
		} else {
			res.Disagree++
		}
	}
	if res.Common > 0 {
		score := Percent(res.Agree, res.Common)
		res.Score = &score
	}
	return res
}

// Board compares a user against every other non-staff user. Users without a
// common item are listed in NoOverlap and never appear as most or least
// compatible. Equal scores are ordered by username.
func Board(s *Snapshot, userID int64, p Policy) (CompatibilityBoard, error) {
	u, err := s.requireUser(userID)
	if err != nil {
		return CompatibilityBoard{}, err
	}
	board := CompatibilityBoard{User: u, Policy: p, Matches: []Match{}, NoOverlap: []User{}}
	mine := p.filter(s.opinions(userID))

	for _, other := range s.Raters() {
		if other.ID == userID {
			continue
		}
		res := compare(mine, p.filter(s.opinions(other.ID)), p)
		if res.Score == nil {
			board.NoOverlap = append(board.NoOverlap, other)
			continue
		}
		board.Matches = append(board.Matches, Match{User: other, CompatibilityResult: res})
	}

	slices.SortFunc(board.Matches, func(a, b Match) int {
		if c := cmp.Compare(*b.Score, *a.Score); c != 0 {
			return c
		}
		return compareUsernames(a.User, b.User)
	})
	slices.SortFunc(board.NoOverlap, compareUsernames)

	if len(board.Matches) > 0 {
		most := board.Matches[0]
		board.Most = &most

		low := *board.Matches[len(board.Matches)-1].Score
		for _, m := range board.Matches {
			if *m.Score == low {
				least := m
				board.Least = &least
				break
			}
		}
	}
	return board, nil
}

func compareUsernames(a, b User) int {
	if c := strings.Compare(strings.ToLower(a.Username), strings.ToLower(b.Username)); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
