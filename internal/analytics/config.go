// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"errors"
	"fmt"
	"slices"
)

// Config contains all tunables of the analytics engine.
type Config struct {
	// Scoring controls ranking scores.
	Scoring ScoringConfig `json:"scoring"`

	// Divisiveness controls the divisive-items view.
	Divisiveness DivisivenessConfig `json:"divisiveness"`

	// Compatibility selects the agreement policy.
	Compatibility CompatibilityConfig `json:"compatibility"`

	// Venn controls three-way partition membership.
	Venn VennConfig `json:"venn"`

	// Eclectic contains the eclecticism thresholds.
	Eclectic EclecticConfig `json:"eclectic"`

	// Clustering contains dendrogram parameters.
	Clustering ClusteringConfig `json:"clustering"`
}

// ScoringConfig contains ranking parameters.
type ScoringConfig struct {
	// Mode is the default scoring mode.
	Mode ScoringMode `json:"mode"`

	// Confidence is the constant C of the three-level variant.
	Confidence float64 `json:"confidence"`

	// MinVotes is the constant m of the five-level variant.
	MinVotes float64 `json:"min_votes"`
}

// DivisivenessConfig contains divisive-items parameters.
type DivisivenessConfig struct {
	Metric DivisivenessMetric `json:"metric"`

	// MinVotes is the number of opinionated ratings an item needs to qualify.
	MinVotes int `json:"min_votes"`
}

// CompatibilityConfig selects the default agreement policy.
type CompatibilityConfig struct {
	Policy PolicyKind `json:"policy"`

	// ExcludeNeutral drops neutral ratings before intersecting.
	ExcludeNeutral bool `json:"exclude_neutral"`
}

// VennConfig controls three-way partitions.
type VennConfig struct {
	Membership VennMembership `json:"membership"`
}

// EclecticConfig contains eclecticism thresholds.
type EclecticConfig struct {
	// MinConsensusVotes is the number of opinionated votes an item needs
	// before a consensus is computed.
	MinConsensusVotes int `json:"min_consensus_votes"`

	// MinComparisons is the number of consensus items a user must have
	// rated to receive a score.
	MinComparisons int `json:"min_comparisons"`

	// MaxContrarianPicks caps the picks reported per user.
	MaxContrarianPicks int `json:"max_contrarian_picks"`
}

// ClusteringConfig contains dendrogram parameters.
type ClusteringConfig struct {
	// NoOverlapSimilarity is used for user pairs without common items.
	NoOverlapSimilarity float64 `json:"no_overlap_similarity"`

	// TopPairs is the number of most similar pairs reported.
	TopPairs int `json:"top_pairs"`

	// Palette is the list of display colors assigned round-robin.
	Palette []string `json:"palette"`
}

// DefaultPalette is the color list used for dendrogram leaves.
var DefaultPalette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231", "#911eb4",
	"#42d4f4", "#f032e6", "#bfef45", "#469990", "#9a6324",
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Mode:       ScoringBayesFiveLevel,
			Confidence: 5,
			MinVotes:   5,
		},
		Divisiveness: DivisivenessConfig{
			Metric:   DivisiveStdDev,
			MinVotes: 5,
		},
		Compatibility: CompatibilityConfig{
			Policy: PolicyExact,
		},
		Venn: VennConfig{
			Membership: MembershipPositive,
		},
		Eclectic: EclecticConfig{
			MinConsensusVotes:  2,
			MinComparisons:     3,
			MaxContrarianPicks: 5,
		},
		Clustering: ClusteringConfig{
			NoOverlapSimilarity: 0.5,
			TopPairs:            10,
			Palette:             slices.Clone(DefaultPalette),
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if _, err := ParseScoringMode(string(c.Scoring.Mode)); err != nil {
		errs = append(errs, err)
	}
	if c.Scoring.Confidence < 0 {
		errs = append(errs, fmt.Errorf("scoring.confidence must be non-negative, got %f", c.Scoring.Confidence))
	}
	if c.Scoring.MinVotes < 0 {
		errs = append(errs, fmt.Errorf("scoring.min_votes must be non-negative, got %f", c.Scoring.MinVotes))
	}

	if _, err := ParseDivisivenessMetric(string(c.Divisiveness.Metric)); err != nil {
		errs = append(errs, err)
	}
	if c.Divisiveness.MinVotes < 1 {
		errs = append(errs, fmt.Errorf("divisiveness.min_votes must be positive, got %d", c.Divisiveness.MinVotes))
	}

	if _, err := ParsePolicyKind(string(c.Compatibility.Policy)); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseVennMembership(string(c.Venn.Membership)); err != nil {
		errs = append(errs, err)
	}

	if c.Eclectic.MinConsensusVotes < 1 {
		errs = append(errs, fmt.Errorf("eclectic.min_consensus_votes must be positive, got %d", c.Eclectic.MinConsensusVotes))
	}
	if c.Eclectic.MinComparisons < 1 {
		errs = append(errs, fmt.Errorf("eclectic.min_comparisons must be positive, got %d", c.Eclectic.MinComparisons))
	}
	if c.Eclectic.MaxContrarianPicks < 0 {
		errs = append(errs, fmt.Errorf("eclectic.max_contrarian_picks must be non-negative, got %d", c.Eclectic.MaxContrarianPicks))
	}

	if c.Clustering.NoOverlapSimilarity < 0 || c.Clustering.NoOverlapSimilarity > 1 {
		errs = append(errs, fmt.Errorf("clustering.no_overlap_similarity must be in [0, 1], got %f", c.Clustering.NoOverlapSimilarity))
	}
	if c.Clustering.TopPairs < 0 {
		errs = append(errs, fmt.Errorf("clustering.top_pairs must be non-negative, got %d", c.Clustering.TopPairs))
	}
	if len(c.Clustering.Palette) == 0 {
		errs = append(errs, errors.New("clustering.palette must not be empty"))
	}

	return errors.Join(errs...)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Clustering.Palette = slices.Clone(c.Clustering.Palette)
	return &clone
}
