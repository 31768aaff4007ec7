// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import "fmt"

// PolicyKind names a bucketing policy for compatibility scoring.
type PolicyKind string

const (
	// PolicyExact counts an agreement only on identical levels.
	PolicyExact PolicyKind = "exact"

	// PolicyCategory counts an agreement when both levels fall in the same
	// positive, neutral or negative bucket.
	PolicyCategory PolicyKind = "category"

	// PolicyLoveHate considers only the extreme levels of the scheme.
	PolicyLoveHate PolicyKind = "love_hate"
)

// ParsePolicyKind validates a policy string.
func ParsePolicyKind(s string) (PolicyKind, error) {
	switch k := PolicyKind(s); k {
	case PolicyExact, PolicyCategory, PolicyLoveHate:
		return k, nil
	}
	return "", fmt.Errorf("%w: compatibility policy %q", ErrInvalidOption, s)
}

// Policy decides which ratings take part in a comparison and when two of
// them agree.
type Policy struct {
	Kind           PolicyKind `json:"kind"`
	ExcludeNeutral bool       `json:"exclude_neutral"`
}

// NewPolicy returns the policy for a kind.
func NewPolicy(kind PolicyKind, excludeNeutral bool) Policy {
	return Policy{Kind: kind, ExcludeNeutral: excludeNeutral}
}

// Includes reports whether a rating participates in comparisons.
func (p Policy) Includes(l Level) bool {
	if !l.Opinionated() {
		return false
	}
	if p.ExcludeNeutral && l.Bucket() == BucketNeutral {
		return false
	}
	if p.Kind == PolicyLoveHate {
		return l.Extreme()
	}
	return true
}

// Agrees reports whether two included ratings agree.
func (p Policy) Agrees(a, b Level) bool {
	if p.Kind == PolicyCategory {
		return a.Bucket() == b.Bucket()
	}
	return a == b
}

// filter keeps the ratings the policy includes.
func (p Policy) filter(ratings map[int64]Level) map[int64]Level {
	out := make(map[int64]Level, len(ratings))
	for id, l := range ratings {
		if p.Includes(l) {
			out[id] = l
		}
	}
	return out
}
