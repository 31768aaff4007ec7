// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"errors"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "loved", want: LevelLoved},
		{input: " HATED ", want: LevelHated},
		{input: "no_rating", want: LevelNoRating},
		{input: "meh", want: LevelMeh},
		{input: "no_answer", want: LevelNoAnswer},
		{input: "superb", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownLevel) {
					t.Errorf("ParseLevel(%q) error = %v, want ErrUnknownLevel", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevel_Properties(t *testing.T) {
	tests := []struct {
		level       Level
		value       int
		opinionated bool
		bucket      Bucket
		scheme      Scheme
		extreme     bool
	}{
		{LevelLoved, 2, true, BucketPositive, SchemeFiveLevel, true},
		{LevelLiked, 1, true, BucketPositive, SchemeFiveLevel, false},
		{LevelOkay, 0, true, BucketNeutral, SchemeFiveLevel, false},
		{LevelDisliked, -1, true, BucketNegative, SchemeFiveLevel, false},
		{LevelHated, -2, true, BucketNegative, SchemeFiveLevel, true},
		{LevelNoRating, 0, false, BucketNone, SchemeFiveLevel, false},
		{LevelYes, 1, true, BucketPositive, SchemeThreeLevel, true},
		{LevelMeh, 0, true, BucketNeutral, SchemeThreeLevel, false},
		{LevelNo, -1, true, BucketNegative, SchemeThreeLevel, true},
		{LevelNoAnswer, 0, false, BucketNone, SchemeThreeLevel, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			v, ok := tt.level.Value()
			if ok != tt.opinionated {
				t.Errorf("Value() ok = %v, want %v", ok, tt.opinionated)
			}
			if v != tt.value {
				t.Errorf("Value() = %d, want %d", v, tt.value)
			}
			if tt.level.Opinionated() != tt.opinionated {
				t.Errorf("Opinionated() = %v, want %v", tt.level.Opinionated(), tt.opinionated)
			}
			if tt.level.Bucket() != tt.bucket {
				t.Errorf("Bucket() = %v, want %v", tt.level.Bucket(), tt.bucket)
			}
			if tt.level.Scheme() != tt.scheme {
				t.Errorf("Scheme() = %v, want %v", tt.level.Scheme(), tt.scheme)
			}
			if tt.level.Extreme() != tt.extreme {
				t.Errorf("Extreme() = %v, want %v", tt.level.Extreme(), tt.extreme)
			}
		})
	}
}

func TestScheme_Levels(t *testing.T) {
	five := SchemeFiveLevel.Levels()
	if len(five) != 6 || five[0] != LevelLoved || five[5] != LevelNoRating {
		t.Errorf("five-level Levels() = %v", five)
	}
	three := SchemeThreeLevel.Levels()
	if len(three) != 4 || three[0] != LevelYes || three[3] != LevelNoAnswer {
		t.Errorf("three-level Levels() = %v", three)
	}
	for i := 1; i < len(five); i++ {
		if five[i-1].Rank() >= five[i].Rank() {
			t.Errorf("Rank(%s) >= Rank(%s), want ascending", five[i-1], five[i])
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		auth bool
		want string
	}{
		{"authenticated sees full name", User{FirstName: "Ada", LastName: "Lovelace"}, true, "Ada Lovelace"},
		{"anonymous sees initial", User{FirstName: "Ada", LastName: "Lovelace"}, false, "Ada L"},
		{"anonymous without last name", User{FirstName: "Ada"}, false, "Ada"},
		{"multibyte initial", User{FirstName: "Zoë", LastName: "Émile"}, false, "Zoë É"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(tt.user, tt.auth); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
