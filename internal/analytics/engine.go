// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Note: This package does not import other internal packages. Metrics are
// reported through the Observer interface.

// Observer receives the outcome of every engine computation.
type Observer interface {
	ObserveComputation(operation string, duration time.Duration, err error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers an observer for computation timings.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// Engine applies configured defaults to the analytics functions and reports
// each computation. It holds no per-request state and is safe for concurrent
// use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	observer Observer
}

// NewEngine creates an engine. A nil config selects DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "analytics").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// observe times fn and reports it.
func (e *Engine) observe(ctx context.Context, op string, s *Snapshot, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	if e.observer != nil {
		e.observer.ObserveComputation(op, elapsed, err)
	}
	if err != nil {
		e.logger.Debug().Err(err).Str("operation", op).Msg("Computation rejected")
		return err
	}
	e.logger.Debug().
		Str("operation", op).
		Int("records", s.Len()).
		Dur("duration", elapsed).
		Msg("Computation complete")
	return nil
}

func (e *Engine) scoringMode(mode ScoringMode) (ScoringMode, error) {
	if mode == "" {
		return e.config.Scoring.Mode, nil
	}
	return ParseScoringMode(string(mode))
}

func (e *Engine) policy(kind PolicyKind) (Policy, error) {
	if kind == "" {
		kind = e.config.Compatibility.Policy
	}
	k, err := ParsePolicyKind(string(kind))
	if err != nil {
		return Policy{}, err
	}
	return NewPolicy(k, e.config.Compatibility.ExcludeNeutral), nil
}

// ResolvePolicy returns the policy used for kind, falling back to the
// configured default when kind is empty.
func (e *Engine) ResolvePolicy(kind PolicyKind) (Policy, error) {
	return e.policy(kind)
}

// Ranking orders the snapshot's items by score. An empty mode selects the
// configured default.
func (e *Engine) Ranking(ctx context.Context, s *Snapshot, mode ScoringMode) ([]RankedItem, error) {
	var out []RankedItem
	err := e.observe(ctx, "ranking", s, func() error {
		m, err := e.scoringMode(mode)
		if err != nil {
			return err
		}
		out = Rank(s, m, e.config.Scoring)
		return nil
	})
	return out, err
}

// Decades returns the ranking grouped by release decade.
func (e *Engine) Decades(ctx context.Context, s *Snapshot, mode ScoringMode) ([]DecadeRanking, error) {
	var out []DecadeRanking
	err := e.observe(ctx, "decades", s, func() error {
		m, err := e.scoringMode(mode)
		if err != nil {
			return err
		}
		out = Decades(s, m, e.config.Scoring)
		return nil
	})
	return out, err
}

// Divisive ranks items by disagreement. An empty metric selects the
// configured default.
func (e *Engine) Divisive(ctx context.Context, s *Snapshot, metric DivisivenessMetric) ([]DivisiveItem, error) {
	var out []DivisiveItem
	err := e.observe(ctx, "divisive", s, func() error {
		if metric == "" {
			metric = e.config.Divisiveness.Metric
		}
		m, err := ParseDivisivenessMetric(string(metric))
		if err != nil {
			return err
		}
		out = Divisive(s, m, e.config.Divisiveness.MinVotes)
		return nil
	})
	return out, err
}

// Compatibility compares two users.
func (e *Engine) Compatibility(ctx context.Context, s *Snapshot, a, b int64, kind PolicyKind) (CompatibilityResult, error) {
	var out CompatibilityResult
	err := e.observe(ctx, "compatibility", s, func() error {
		p, err := e.policy(kind)
		if err != nil {
			return err
		}
		out, err = Compatibility(s, a, b, p)
		return err
	})
	return out, err
}

// CompatibilityBoard compares one user against every other rater.
func (e *Engine) CompatibilityBoard(ctx context.Context, s *Snapshot, userID int64, kind PolicyKind) (CompatibilityBoard, error) {
	var out CompatibilityBoard
	err := e.observe(ctx, "compatibility_board", s, func() error {
		p, err := e.policy(kind)
		if err != nil {
			return err
		}
		out, err = Board(s, userID, p)
		return err
	})
	return out, err
}

// Partition splits two users' rated items into agreement buckets.
func (e *Engine) Partition(ctx context.Context, s *Snapshot, a, b int64) (Partition, error) {
	var out Partition
	err := e.observe(ctx, "partition", s, func() error {
		var err error
		out, err = ComparePair(s, a, b)
		return err
	})
	return out, err
}

// ThreeWay builds the Venn partition of three distinct users.
func (e *Engine) ThreeWay(ctx context.Context, s *Snapshot, ids [3]int64, membership VennMembership) (ThreeWayPartition, error) {
	var out ThreeWayPartition
	err := e.observe(ctx, "three_way", s, func() error {
		if membership == "" {
			membership = e.config.Venn.Membership
		}
		m, err := ParseVennMembership(string(membership))
		if err != nil {
			return err
		}
		out, err = ThreeWay(s, ids, m)
		return err
	})
	return out, err
}

// Eclecticism scores every rater against the group consensus.
func (e *Engine) Eclecticism(ctx context.Context, s *Snapshot) ([]EclecticScore, error) {
	var out []EclecticScore
	err := e.observe(ctx, "eclecticism", s, func() error {
		out = Eclecticism(s, e.config.Eclectic)
		return nil
	})
	return out, err
}

// Dendrogram clusters the raters by taste.
func (e *Engine) Dendrogram(ctx context.Context, s *Snapshot) (Dendrogram, error) {
	var out Dendrogram
	err := e.observe(ctx, "dendrogram", s, func() error {
		out = BuildDendrogram(s, e.config.Clustering)
		return nil
	})
	return out, err
}

// Profile summarizes a user's ratings across categories.
func (e *Engine) Profile(ctx context.Context, s *Snapshot, userID int64, sortBy ProfileSort) (Profile, error) {
	var out Profile
	err := e.observe(ctx, "profile", s, func() error {
		sb, err := ParseProfileSort(string(sortBy))
		if err != nil {
			return err
		}
		out, err = BuildProfile(s, userID, sb)
		return err
	})
	return out, err
}

// NextUnrated returns the user's position in the rating queue.
func (e *Engine) NextUnrated(ctx context.Context, s *Snapshot, userID int64) (QueueState, error) {
	var out QueueState
	err := e.observe(ctx, "next_unrated", s, func() error {
		var err error
		out, err = NextUnrated(s, userID)
		return err
	})
	return out, err
}

// ItemBreakdown returns the detail view of one item.
func (e *Engine) ItemBreakdown(ctx context.Context, s *Snapshot, itemID int64, mode ScoringMode) (ItemBreakdown, error) {
	var out ItemBreakdown
	err := e.observe(ctx, "item_breakdown", s, func() error {
		m, err := e.scoringMode(mode)
		if err != nil {
			return err
		}
		out, err = BreakdownItem(s, itemID, m, e.config.Scoring)
		return err
	})
	return out, err
}
