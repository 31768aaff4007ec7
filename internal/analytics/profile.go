// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"cmp"
	"fmt"
	"slices"
)

// ProfileSort orders the entries of a profile.
type ProfileSort string

const (
	SortTitle      ProfileSort = "title"
	SortYear       ProfileSort = "year"
	SortRating     ProfileSort = "rating"
	SortPopularity ProfileSort = "popularity"
)

// ParseProfileSort validates a sort string. An empty string means title.
func ParseProfileSort(s string) (ProfileSort, error) {
	switch p := ProfileSort(s); p {
	case "":
		return SortTitle, nil
	case SortTitle, SortYear, SortRating, SortPopularity:
		return p, nil
	}
	return "", fmt.Errorf("%w: profile sort %q", ErrInvalidOption, s)
}

// ProfileEntry is one opinionated rating on a profile.
type ProfileEntry struct {
	Item       Item  `json:"item"`
	Level      Level `json:"level"`
	Popularity int   `json:"popularity"`
}

// CategoryProfile holds a user's ratings in one category.
type CategoryProfile struct {
	Category Category       `json:"category"`
	Entries  []ProfileEntry `json:"entries"`
	Counts   map[Level]int  `json:"counts"`
}

// Profile summarizes everything a user has rated.
type Profile struct {
	User        User              `json:"user"`
	Sort        ProfileSort       `json:"sort"`
	Categories  []CategoryProfile `json:"categories"`
	Counts      map[Level]int     `json:"counts"`
	Total       int               `json:"total"`
	Percentages map[Level]int     `json:"percentages"`
}

// BuildProfile groups a user's opinionated ratings by category.
func BuildProfile(s *Snapshot, userID int64, sortBy ProfileSort) (Profile, error) {
	u, err := s.requireUser(userID)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{
		User:        u,
		Sort:        sortBy,
		Categories:  []CategoryProfile{},
		Counts:      make(map[Level]int),
		Percentages: make(map[Level]int),
	}

	byCategory := make(map[int64]*CategoryProfile)
	for _, it := range s.items {
		l, ok := s.Rating(userID, it.ID)
		if !ok || !l.Opinionated() {
			continue
		}
		cp, ok := byCategory[it.CategoryID]
		if !ok {
			cat, found := s.Category(it.CategoryID)
			if !found {
				cat = Category{ID: it.CategoryID}
			}
			cp = &CategoryProfile{Category: cat, Counts: make(map[Level]int)}
			byCategory[it.CategoryID] = cp
		}
		cp.Entries = append(cp.Entries, ProfileEntry{
			Item:       it,
			Level:      l,
			Popularity: Tally(s, it.ID).TotalResponded,
		})
		cp.Counts[l]++
		p.Counts[l]++
		p.Total++
	}

	for _, cp := range byCategory {
		slices.SortFunc(cp.Entries, profileComparator(sortBy))
		p.Categories = append(p.Categories, *cp)
	}
	slices.SortFunc(p.Categories, func(a, b CategoryProfile) int {
		if c := compareFold(a.Category.Name, b.Category.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Category.ID, b.Category.ID)
	})

	for l, n := range p.Counts {
		p.Percentages[l] = Percent(n, p.Total)
	}
	return p, nil
}

func profileComparator(sortBy ProfileSort) func(a, b ProfileEntry) int {
	byTitle := func(a, b ProfileEntry) int { return compareItems(a.Item, b.Item) }
	var primary func(a, b ProfileEntry) int
	switch sortBy {
	case SortYear:
		primary = func(a, b ProfileEntry) int { return cmp.Compare(a.Item.Year, b.Item.Year) }
	case SortRating:
		primary = func(a, b ProfileEntry) int { return cmp.Compare(a.Level.Rank(), b.Level.Rank()) }
	case SortPopularity:
		primary = func(a, b ProfileEntry) int { return cmp.Compare(b.Popularity, a.Popularity) }
	default:
		return byTitle
	}
	return func(a, b ProfileEntry) int {
		if c := primary(a, b); c != 0 {
			return c
		}
		return byTitle(a, b)
	}
}

// QueueState is the position of a user in the rating queue of a category.
type QueueState struct {
	Next      *Item `json:"next,omitempty"`
	Rated     int   `json:"rated"`
	Remaining int   `json:"remaining"`
	Total     int   `json:"total"`
	Completed bool  `json:"completed"`
}

// NextUnrated returns the next item a user has not answered, choosing the
// item with the most responses and then by title. A "not yet rated" record
// counts as answered so skipped items do not come back.
func NextUnrated(s *Snapshot, userID int64) (QueueState, error) {
	if _, err := s.requireUser(userID); err != nil {
		return QueueState{}, err
	}
	type candidate struct {
		item      Item
		responses int
	}
	var pending []candidate
	for _, it := range s.items {
		if _, ok := s.Rating(userID, it.ID); ok {
			continue
		}
		pending = append(pending, candidate{item: it, responses: Tally(s, it.ID).TotalResponded})
	}
	slices.SortFunc(pending, func(a, b candidate) int {
		if c := cmp.Compare(b.responses, a.responses); c != 0 {
			return c
		}
		return compareItems(a.item, b.item)
	})

	q := QueueState{
		Total:     len(s.items),
		Remaining: len(pending),
		Rated:     len(s.items) - len(pending),
		Completed: len(pending) == 0,
	}
	if len(pending) > 0 {
		next := pending[0].item
		q.Next = &next
	}
	return q, nil
}

// LevelVoters lists the users who gave an item one level.
type LevelVoters struct {
	Level Level  `json:"level"`
	Users []User `json:"users"`
}

// ItemBreakdown is the detail view of a single item.
type ItemBreakdown struct {
	Item    Item          `json:"item"`
	Tally   ItemTally     `json:"tally"`
	Score   *int          `json:"score"`
	Average *float64      `json:"average"`
	Voters  []LevelVoters `json:"voters"`
}

// BreakdownItem tallies one item and lists its non-staff voters per level,
// best level first, each list ordered by last name.
func BreakdownItem(s *Snapshot, itemID int64, mode ScoringMode, cfg ScoringConfig) (ItemBreakdown, error) {
	it, ok := s.Item(itemID)
	if !ok {
		return ItemBreakdown{}, fmt.Errorf("%w: id %d", ErrUnknownItem, itemID)
	}
	tallies := TallyAll(s)
	scorer := NewScorer(mode, cfg, tallyList(s, tallies))
	t := tallies[itemID]

	b := ItemBreakdown{Item: it, Tally: t, Score: scorer.Score(t), Voters: []LevelVoters{}}
	if avg, ok := t.Average(); ok {
		b.Average = &avg
	}

	grouped := make(map[Level][]User)
	for _, r := range s.raterRecords(itemID) {
		u, _ := s.User(r.UserID)
		grouped[r.Level] = append(grouped[r.Level], u)
	}
	for _, l := range s.scheme.Levels() {
		users, ok := grouped[l]
		if !ok {
			continue
		}
		slices.SortFunc(users, compareUsersByName)
		b.Voters = append(b.Voters, LevelVoters{Level: l, Users: users})
	}
	return b, nil
}
