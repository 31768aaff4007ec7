// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"cmp"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Level is a single rating a user gave an item.
type Level string

// Five-level scheme.
const (
	LevelLoved    Level = "loved"
	LevelLiked    Level = "liked"
	LevelOkay     Level = "okay"
	LevelDisliked Level = "disliked"
	LevelHated    Level = "hated"
	LevelNoRating Level = "no_rating"
)

// Legacy three-level scheme.
const (
	LevelYes      Level = "yes"
	LevelMeh      Level = "meh"
	LevelNo       Level = "no"
	LevelNoAnswer Level = "no_answer"
)

// Scheme identifies a family of rating levels.
type Scheme string

const (
	SchemeFiveLevel  Scheme = "five_level"
	SchemeThreeLevel Scheme = "three_level"
)

// Bucket is the coarse sentiment of a level.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketPositive
	BucketNeutral
	BucketNegative
)

// String returns the lowercase bucket name.
func (b Bucket) String() string {
	switch b {
	case BucketPositive:
		return "positive"
	case BucketNeutral:
		return "neutral"
	case BucketNegative:
		return "negative"
	default:
		return "none"
	}
}

type levelInfo struct {
	value       int
	opinionated bool
	extreme     bool
	bucket      Bucket
	scheme      Scheme
	rank        int
}

var levels = map[Level]levelInfo{
	LevelLoved:    {value: 2, opinionated: true, extreme: true, bucket: BucketPositive, scheme: SchemeFiveLevel, rank: 0},
	LevelLiked:    {value: 1, opinionated: true, bucket: BucketPositive, scheme: SchemeFiveLevel, rank: 1},
	LevelOkay:     {value: 0, opinionated: true, bucket: BucketNeutral, scheme: SchemeFiveLevel, rank: 2},
	LevelDisliked: {value: -1, opinionated: true, bucket: BucketNegative, scheme: SchemeFiveLevel, rank: 3},
	LevelHated:    {value: -2, opinionated: true, extreme: true, bucket: BucketNegative, scheme: SchemeFiveLevel, rank: 4},
	LevelNoRating: {bucket: BucketNone, scheme: SchemeFiveLevel, rank: 5},

	LevelYes:      {value: 1, opinionated: true, extreme: true, bucket: BucketPositive, scheme: SchemeThreeLevel, rank: 0},
	LevelMeh:      {value: 0, opinionated: true, bucket: BucketNeutral, scheme: SchemeThreeLevel, rank: 1},
	LevelNo:       {value: -1, opinionated: true, extreme: true, bucket: BucketNegative, scheme: SchemeThreeLevel, rank: 2},
	LevelNoAnswer: {bucket: BucketNone, scheme: SchemeThreeLevel, rank: 3},
}

// ParseLevel converts a string into a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return l, nil
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	_, ok := levels[l]
	return ok
}

// Value returns the numeric value of an opinionated level.
// The second result is false for the "not yet rated" sentinels.
func (l Level) Value() (int, bool) {
	info, ok := levels[l]
	if !ok || !info.opinionated {
		return 0, false
	}
	return info.value, true
}

// Opinionated reports whether l expresses an opinion.
func (l Level) Opinionated() bool {
	return levels[l].opinionated
}

// Extreme reports whether l is the strongest positive or negative level of
// its scheme.
func (l Level) Extreme() bool {
	return levels[l].extreme
}

// Bucket returns the sentiment bucket of l.
func (l Level) Bucket() Bucket {
	return levels[l].bucket
}

// Scheme returns the scheme l belongs to.
func (l Level) Scheme() Scheme {
	return levels[l].scheme
}

// Rank orders levels best to worst within a scheme. Sentinels sort last.
func (l Level) Rank() int {
	info, ok := levels[l]
	if !ok {
		return len(levels)
	}
	return info.rank
}

// Valid reports whether s is a known scheme.
func (s Scheme) Valid() bool {
	return s == SchemeFiveLevel || s == SchemeThreeLevel
}

// Levels returns every level of the scheme ordered best to worst, with the
// sentinel last.
func (s Scheme) Levels() []Level {
	if s == SchemeThreeLevel {
		return []Level{LevelYes, LevelMeh, LevelNo, LevelNoAnswer}
	}
	return []Level{LevelLoved, LevelLiked, LevelOkay, LevelDisliked, LevelHated, LevelNoRating}
}

// MostPositive returns the highest level of the scheme.
func (s Scheme) MostPositive() Level {
	if s == SchemeThreeLevel {
		return LevelYes
	}
	return LevelLoved
}

// Category groups items of one kind, such as movies or artists.
type Category struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Item is a rateable catalog entry.
type Item struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Title      string `json:"title"`
	Year       int    `json:"year,omitempty"` // zero when unknown
	Director   string `json:"director,omitempty"`
	Genre      string `json:"genre,omitempty"`
}

// User is a participant. Staff users never count toward aggregates.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff,omitempty"`
}

// FullName returns "First Last".
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName renders a user's name for a viewer. Authenticated viewers see
// the full name, anonymous viewers see the first name and last initial.
func DisplayName(u User, viewerAuthenticated bool) string {
	if viewerAuthenticated {
		return u.FullName()
	}
	initial := ""
	if r, _ := utf8.DecodeRuneInString(u.LastName); r != utf8.RuneError {
		initial = string(r)
	}
	return strings.TrimSpace(u.FirstName + " " + initial)
}

// RatingRecord is one user's rating of one item.
type RatingRecord struct {
	UserID    int64     `json:"user_id"`
	ItemID    int64     `json:"item_id"`
	Level     Level     `json:"level"`
	UpdatedAt time.Time `json:"updated_at"`
}

// compareFold compares two titles case-insensitively.
func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// compareItems orders items by title (case-insensitive) and then ID.
func compareItems(a, b Item) int {
	if c := compareFold(a.Title, b.Title); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// compareUsersByName orders users by last name, first name and ID.
func compareUsersByName(a, b User) int {
	if c := compareFold(a.LastName, b.LastName); c != 0 {
		return c
	}
	if c := compareFold(a.FirstName, b.FirstName); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
