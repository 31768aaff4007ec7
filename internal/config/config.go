// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/popquiz/internal/analytics"
)

// Store backends.
const (
	BackendDuckDB = "duckdb"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Store     StoreConfig     `koanf:"store"`
	Database  DatabaseConfig  `koanf:"database"`
	Badger    BadgerConfig    `koanf:"badger"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Analytics AnalyticsConfig `koanf:"analytics"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// SlowRequestThreshold logs requests that take longer. 0 disables it.
	SlowRequestThreshold time.Duration `koanf:"slow_request_threshold"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend string `koanf:"backend"` // duckdb, badger or memory

	// SeedPath is an optional JSON catalog replayed into the store on startup.
	SeedPath string `koanf:"seed_path"`

	// SnapshotTTL keeps per-category analytics snapshots in memory between
	// requests. Rating writes invalidate them. 0 disables the cache.
	SnapshotTTL time.Duration `koanf:"snapshot_ttl"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU
}

// BadgerConfig holds BadgerDB settings
type BadgerConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	SyncWrites bool          `koanf:"sync_writes"`
	GCInterval time.Duration `koanf:"gc_interval"` // 0 disables value log GC
	GCRatio    float64       `koanf:"gc_ratio"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	// FullNames shows "First Last" in API responses instead of "First L".
	FullNames bool `koanf:"full_names"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller adds file:line to each event.
	Caller bool `koanf:"caller"`
}

// AnalyticsConfig holds the engine knobs. ToAnalyticsConfig converts it.
type AnalyticsConfig struct {
	ScoringMode       string  `koanf:"scoring_mode"`
	ScoringConfidence float64 `koanf:"scoring_confidence"`
	ScoringMinVotes   float64 `koanf:"scoring_min_votes"`

	DivisiveMetric   string `koanf:"divisive_metric"`
	DivisiveMinVotes int    `koanf:"divisive_min_votes"`

	CompatPolicy         string `koanf:"compat_policy"`
	CompatExcludeNeutral bool   `koanf:"compat_exclude_neutral"`

	VennMembership string `koanf:"venn_membership"`

	EclecticMinConsensus   int `koanf:"eclectic_min_consensus"`
	EclecticMinComparisons int `koanf:"eclectic_min_comparisons"`
	EclecticMaxPicks       int `koanf:"eclectic_max_picks"`

	ClusterNoOverlapSimilarity float64  `koanf:"cluster_no_overlap_similarity"`
	ClusterTopPairs            int      `koanf:"cluster_top_pairs"`
	ClusterPalette             []string `koanf:"cluster_palette"`
}

// ToAnalyticsConfig builds the engine configuration.
func (c *Config) ToAnalyticsConfig() *analytics.Config {
	a := c.Analytics
	return &analytics.Config{
		Scoring: analytics.ScoringConfig{
			Mode:       analytics.ScoringMode(a.ScoringMode),
			Confidence: a.ScoringConfidence,
			MinVotes:   a.ScoringMinVotes,
		},
		Divisiveness: analytics.DivisivenessConfig{
			Metric:   analytics.DivisivenessMetric(a.DivisiveMetric),
			MinVotes: a.DivisiveMinVotes,
		},
		Compatibility: analytics.CompatibilityConfig{
			Policy:         analytics.PolicyKind(a.CompatPolicy),
			ExcludeNeutral: a.CompatExcludeNeutral,
		},
		Venn: analytics.VennConfig{
			Membership: analytics.VennMembership(a.VennMembership),
		},
		Eclectic: analytics.EclecticConfig{
			MinConsensusVotes:  a.EclecticMinConsensus,
			MinComparisons:     a.EclecticMinComparisons,
			MaxContrarianPicks: a.EclecticMaxPicks,
		},
		Clustering: analytics.ClusteringConfig{
			NoOverlapSimilarity: a.ClusterNoOverlapSimilarity,
			TopPairs:            a.ClusterTopPairs,
			Palette:             append([]string(nil), a.ClusterPalette...),
		},
	}
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
