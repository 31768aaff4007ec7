// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SnapshotInput is the raw relation delivered by a rating store.
type SnapshotInput struct {
	// Scheme pins the rating scheme. When empty it is inferred from the
	// records, defaulting to the five-level scheme.
	Scheme     Scheme
	Categories []Category
	Users      []User
	Items      []Item
	Records    []RatingRecord
}

// Snapshot is an immutable, validated view of users, items and ratings.
type Snapshot struct {
	scheme     Scheme
	categories []Category
	users      []User
	items      []Item
	records    []RatingRecord

	userIdx  map[int64]int
	nameIdx  map[string]int
	itemIdx  map[int64]int
	byUser   map[int64]map[int64]Level
	byItem   map[int64][]RatingRecord
	staffIDs map[int64]bool
}

// NewSnapshot validates the input and applies upsert semantics: for each
// (user, item) pair only the record with the latest UpdatedAt survives, and
// the later record in input order wins a timestamp tie.
func NewSnapshot(in SnapshotInput) (*Snapshot, error) {
	s := &Snapshot{
		scheme:   in.Scheme,
		userIdx:  make(map[int64]int, len(in.Users)),
		nameIdx:  make(map[string]int, len(in.Users)),
		itemIdx:  make(map[int64]int, len(in.Items)),
		byUser:   make(map[int64]map[int64]Level),
		byItem:   make(map[int64][]RatingRecord),
		staffIDs: make(map[int64]bool),
	}
	if s.scheme != "" && !s.scheme.Valid() {
		return nil, fmt.Errorf("%w: scheme %q", ErrInvalidOption, s.scheme)
	}

	s.categories = slices.Clone(in.Categories)
	slices.SortFunc(s.categories, func(a, b Category) int {
		if c := compareFold(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	s.users = slices.Clone(in.Users)
	slices.SortFunc(s.users, func(a, b User) int { return cmp.Compare(a.ID, b.ID) })
	for i, u := range s.users {
		if _, dup := s.userIdx[u.ID]; dup {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateUser, u.ID)
		}
		s.userIdx[u.ID] = i
		if u.Username != "" {
			s.nameIdx[strings.ToLower(u.Username)] = i
		}
		if u.IsStaff {
			s.staffIDs[u.ID] = true
		}
	}

	s.items = slices.Clone(in.Items)
	slices.SortFunc(s.items, compareItems)
	for i, it := range s.items {
		if _, dup := s.itemIdx[it.ID]; dup {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateItem, it.ID)
		}
		s.itemIdx[it.ID] = i
	}

	type key struct{ user, item int64 }
	latest := make(map[key]int, len(in.Records))
	for i, r := range in.Records {
		if !r.Level.Valid() {
			return nil, fmt.Errorf("%w: %q (user %d, item %d)", ErrUnknownLevel, r.Level, r.UserID, r.ItemID)
		}
		if _, ok := s.userIdx[r.UserID]; !ok {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownUser, r.UserID)
		}
		if _, ok := s.itemIdx[r.ItemID]; !ok {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownItem, r.ItemID)
		}
		if s.scheme == "" {
			s.scheme = r.Level.Scheme()
		} else if r.Level.Scheme() != s.scheme {
			return nil, fmt.Errorf("%w: %q is not a %s level", ErrMixedScheme, r.Level, s.scheme)
		}

		k := key{r.UserID, r.ItemID}
		if prev, ok := latest[k]; ok && in.Records[prev].UpdatedAt.After(r.UpdatedAt) {
			continue
		}
		latest[k] = i
	}
	if s.scheme == "" {
		s.scheme = SchemeFiveLevel
	}

	s.records = make([]RatingRecord, 0, len(latest))
	for _, i := range latest {
		s.records = append(s.records, in.Records[i])
	}
	slices.SortFunc(s.records, func(a, b RatingRecord) int {
		if c := cmp.Compare(a.ItemID, b.ItemID); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})

	for _, r := range s.records {
		m, ok := s.byUser[r.UserID]
		if !ok {
			m = make(map[int64]Level)
			s.byUser[r.UserID] = m
		}
		m[r.ItemID] = r.Level
		s.byItem[r.ItemID] = append(s.byItem[r.ItemID], r)
	}

	return s, nil
}

// ForCategory returns a snapshot restricted to the items of one category.
// Users are kept so lookups still resolve.
func (s *Snapshot) ForCategory(categoryID int64) *Snapshot {
	out := &Snapshot{
		scheme:   s.scheme,
		users:    s.users,
		userIdx:  s.userIdx,
		nameIdx:  s.nameIdx,
		staffIDs: s.staffIDs,
		itemIdx:  make(map[int64]int),
		byUser:   make(map[int64]map[int64]Level),
		byItem:   make(map[int64][]RatingRecord),
	}
	for _, c := range s.categories {
		if c.ID == categoryID {
			out.categories = []Category{c}
		}
	}
	for _, it := range s.items {
		if it.CategoryID != categoryID {
			continue
		}
		out.itemIdx[it.ID] = len(out.items)
		out.items = append(out.items, it)
	}
	for _, r := range s.records {
		if _, ok := out.itemIdx[r.ItemID]; !ok {
			continue
		}
		out.records = append(out.records, r)
		m, ok := out.byUser[r.UserID]
		if !ok {
			m = make(map[int64]Level)
			out.byUser[r.UserID] = m
		}
		m[r.ItemID] = r.Level
		out.byItem[r.ItemID] = append(out.byItem[r.ItemID], r)
	}
	return out
}

// Scheme returns the rating scheme of the snapshot.
func (s *Snapshot) Scheme() Scheme { return s.scheme }

// Len returns the number of rating records after upsert.
func (s *Snapshot) Len() int { return len(s.records) }

// Categories returns the categories ordered by name.
func (s *Snapshot) Categories() []Category { return slices.Clone(s.categories) }

// Category looks up a category by ID.
func (s *Snapshot) Category(id int64) (Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Users returns every user ordered by ID, staff included.
func (s *Snapshot) Users() []User { return slices.Clone(s.users) }

// Raters returns the non-staff users ordered by ID.
func (s *Snapshot) Raters() []User {
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		if !u.IsStaff {
			out = append(out, u)
		}
	}
	return out
}

// User looks up a user by ID.
func (s *Snapshot) User(id int64) (User, bool) {
	i, ok := s.userIdx[id]
	if !ok {
		return User{}, false
	}
	return s.users[i], true
}

// UserByUsername looks up a user by case-insensitive username.
func (s *Snapshot) UserByUsername(username string) (User, bool) {
	i, ok := s.nameIdx[strings.ToLower(username)]
	if !ok {
		return User{}, false
	}
	return s.users[i], true
}

// Items returns the items ordered by title.
func (s *Snapshot) Items() []Item { return slices.Clone(s.items) }

// Item looks up an item by ID.
func (s *Snapshot) Item(id int64) (Item, bool) {
	i, ok := s.itemIdx[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

// Rating returns the level a user gave an item, if any.
func (s *Snapshot) Rating(userID, itemID int64) (Level, bool) {
	l, ok := s.byUser[userID][itemID]
	return l, ok
}

// Records returns the deduplicated records ordered by item and user.
func (s *Snapshot) Records() []RatingRecord { return slices.Clone(s.records) }

// opinions returns the opinionated ratings of one user.
func (s *Snapshot) opinions(userID int64) map[int64]Level {
	out := make(map[int64]Level, len(s.byUser[userID]))
	for itemID, l := range s.byUser[userID] {
		if l.Opinionated() {
			out[itemID] = l
		}
	}
	return out
}

// raterRecords returns the non-staff records of one item.
func (s *Snapshot) raterRecords(itemID int64) []RatingRecord {
	recs := s.byItem[itemID]
	out := make([]RatingRecord, 0, len(recs))
	for _, r := range recs {
		if !s.staffIDs[r.UserID] {
			out = append(out, r)
		}
	}
	return out
}

func (s *Snapshot) requireUser(id int64) (User, error) {
	u, ok := s.User(id)
	if !ok {
		return User{}, fmt.Errorf("%w: id %d", ErrUnknownUser, id)
	}
	return u, nil
}
