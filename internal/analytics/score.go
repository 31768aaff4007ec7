// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"fmt"
	"math"
)

// ScoringMode selects how item tallies become comparable scores.
type ScoringMode string

const (
	// ScoringSimple maps the simple average onto 0..100.
	ScoringSimple ScoringMode = "simple"

	// ScoringBayesThreeLevel shrinks the signed positive-minus-negative
	// percentage toward the category mean. Scores fall in -100..100.
	ScoringBayesThreeLevel ScoringMode = "bayes_three_level"

	// ScoringBayesFiveLevel shrinks the simple average toward the mean of
	// item averages and maps the result onto 0..100.
	ScoringBayesFiveLevel ScoringMode = "bayes_five_level"
)

// ParseScoringMode validates a scoring mode string.
func ParseScoringMode(s string) (ScoringMode, error) {
	switch m := ScoringMode(s); m {
	case ScoringSimple, ScoringBayesThreeLevel, ScoringBayesFiveLevel:
		return m, nil
	}
	return "", fmt.Errorf("%w: scoring mode %q", ErrInvalidOption, s)
}

// roundHalfUp rounds to the nearest integer with x.5 going toward +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Percent returns round(part/whole*100), or 0 when whole is zero.
func Percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return roundHalfUp(float64(part) / float64(whole) * 100)
}

// DisplayScore maps an average on -2..2 to an integer on 0..100.
func DisplayScore(avg float64) int {
	return roundHalfUp((avg + 2) / 4 * 100)
}

// ThreeLevelPrior is the global signed percentage used by the three-level
// Bayesian variant.
type ThreeLevelPrior struct {
	Global float64
}

// NewThreeLevelPrior folds tallies into (Σpositive - Σnegative) / Σopinionated * 100.
func NewThreeLevelPrior(tallies []ItemTally) ThreeLevelPrior {
	var diff, total int
	for _, t := range tallies {
		diff += t.Positive() - t.Negative()
		total += t.TotalOpinionated
	}
	if total == 0 {
		return ThreeLevelPrior{}
	}
	return ThreeLevelPrior{Global: float64(diff) / float64(total) * 100}
}

// Shrink blends the item's raw percentage with the global one using the
// confidence constant c.
func (p ThreeLevelPrior) Shrink(t ItemTally, c float64) (float64, bool) {
	n := float64(t.TotalOpinionated)
	if n == 0 {
		return 0, false
	}
	raw := float64(t.Positive()-t.Negative()) / n * 100
	return (c*p.Global + n*raw) / (c + n), true
}

// FiveLevelPrior is the mean of item averages used by the five-level
// Bayesian variant.
type FiveLevelPrior struct {
	Mean float64
}

// NewFiveLevelPrior averages the simple averages of items with at least one
// opinionated rating.
func NewFiveLevelPrior(tallies []ItemTally) FiveLevelPrior {
	var sum float64
	n := 0
	for _, t := range tallies {
		if avg, ok := t.Average(); ok {
			sum += avg
			n++
		}
	}
	if n == 0 {
		return FiveLevelPrior{}
	}
	return FiveLevelPrior{Mean: sum / float64(n)}
}

// Shrink returns v/(v+m)·R + m/(v+m)·Mean.
func (p FiveLevelPrior) Shrink(t ItemTally, m float64) (float64, bool) {
	r, ok := t.Average()
	if !ok {
		return 0, false
	}
	v := float64(t.TotalOpinionated)
	return v/(v+m)*r + m/(v+m)*p.Mean, true
}

// Scorer converts tallies into display scores under one mode. The priors are
// fixed at construction, so one Scorer serves a single snapshot.
type Scorer struct {
	mode  ScoringMode
	cfg   ScoringConfig
	three ThreeLevelPrior
	five  FiveLevelPrior
}

// NewScorer builds a scorer whose priors are taken from the given tallies.
func NewScorer(mode ScoringMode, cfg ScoringConfig, tallies []ItemTally) Scorer {
	s := Scorer{mode: mode, cfg: cfg}
	switch mode {
	case ScoringBayesThreeLevel:
		s.three = NewThreeLevelPrior(tallies)
	case ScoringBayesFiveLevel:
		s.five = NewFiveLevelPrior(tallies)
	}
	return s
}

// Score returns the display score, or nil when the item has no opinionated
// ratings.
func (s Scorer) Score(t ItemTally) *int {
	var (
		score int
		ok    bool
	)
	switch s.mode {
	case ScoringBayesThreeLevel:
		var v float64
		v, ok = s.three.Shrink(t, s.cfg.Confidence)
		score = roundHalfUp(v)
	case ScoringBayesFiveLevel:
		var v float64
		v, ok = s.five.Shrink(t, s.cfg.MinVotes)
		score = DisplayScore(v)
	default:
		var avg float64
		avg, ok = t.Average()
		score = DisplayScore(avg)
	}
	if !ok {
		return nil
	}
	return &score
}
