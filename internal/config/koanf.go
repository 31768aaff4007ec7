// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/popquiz/internal/analytics"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/popquiz/config.yaml",
	"/etc/popquiz/config.yml",
}

// ConfigPathEnvVar names the environment variable holding an explicit
// config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	engine := analytics.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,

			SlowRequestThreshold: time.Second,
		},
		Store: StoreConfig{
			Backend:     BackendDuckDB,
			SeedPath:    "",
			SnapshotTTL: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      "/data/popquiz.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Badger: BadgerConfig{
			Path:       "/data/badger",
			InMemory:   false,
			SyncWrites: true,
			GCInterval: 10 * time.Minute,
			GCRatio:    0.5,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			FullNames:         false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Analytics: AnalyticsConfig{
			ScoringMode:                string(engine.Scoring.Mode),
			ScoringConfidence:          engine.Scoring.Confidence,
			ScoringMinVotes:            engine.Scoring.MinVotes,
			DivisiveMetric:             string(engine.Divisiveness.Metric),
			DivisiveMinVotes:           engine.Divisiveness.MinVotes,
			CompatPolicy:               string(engine.Compatibility.Policy),
			CompatExcludeNeutral:       engine.Compatibility.ExcludeNeutral,
			VennMembership:             string(engine.Venn.Membership),
			EclecticMinConsensus:       engine.Eclectic.MinConsensusVotes,
			EclecticMinComparisons:     engine.Eclectic.MinComparisons,
			EclecticMaxPicks:           engine.Eclectic.MaxContrarianPicks,
			ClusterNoOverlapSimilarity: engine.Clustering.NoOverlapSimilarity,
			ClusterTopPairs:            engine.Clustering.TopPairs,
			ClusterPalette:             engine.Clustering.Palette,
		},
	}
}

// LoadWithKoanf loads defaults, then the optional config file, then mapped
// environment variables, and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when they come
// from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"analytics.cluster_palette",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":              "server.port",
	"http_host":              "server.host",
	"http_timeout":           "server.timeout",
	"http_shutdown_timeout":  "server.shutdown_timeout",
	"slow_request_threshold": "server.slow_request_threshold",

	// Store
	"store_backend":   "store.backend",
	"store_seed_path": "store.seed_path",
	"snapshot_ttl":    "store.snapshot_ttl",

	// DuckDB
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// Badger
	"badger_path":        "badger.path",
	"badger_in_memory":   "badger.in_memory",
	"badger_sync_writes": "badger.sync_writes",
	"badger_gc_interval": "badger.gc_interval",
	"badger_gc_ratio":    "badger.gc_ratio",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"show_full_names":     "security.full_names",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Analytics
	"scoring_mode":                  "analytics.scoring_mode",
	"scoring_confidence":            "analytics.scoring_confidence",
	"scoring_min_votes":             "analytics.scoring_min_votes",
	"divisive_metric":               "analytics.divisive_metric",
	"divisive_min_votes":            "analytics.divisive_min_votes",
	"compat_policy":                 "analytics.compat_policy",
	"compat_exclude_neutral":        "analytics.compat_exclude_neutral",
	"venn_membership":               "analytics.venn_membership",
	"eclectic_min_consensus":        "analytics.eclectic_min_consensus",
	"eclectic_min_comparisons":      "analytics.eclectic_min_comparisons",
	"eclectic_max_picks":            "analytics.eclectic_max_picks",
	"cluster_no_overlap_similarity": "analytics.cluster_no_overlap_similarity",
	"cluster_top_pairs":             "analytics.cluster_top_pairs",
	"cluster_palette":               "analytics.cluster_palette",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped names return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
