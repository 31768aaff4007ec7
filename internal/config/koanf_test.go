// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/popquiz/internal/analytics"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendDuckDB {
		t.Errorf("Store.Backend = %q, want duckdb", cfg.Store.Backend)
	}
	if cfg.Database.Path != "/data/popquiz.duckdb" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Badger.GCRatio != 0.5 || cfg.Badger.GCInterval != 10*time.Minute {
		t.Errorf("Badger = %+v", cfg.Badger)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Analytics.ScoringMode != string(analytics.ScoringBayesFiveLevel) {
		t.Errorf("Analytics.ScoringMode = %q", cfg.Analytics.ScoringMode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanf_Environment(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORE_BACKEND", "badger")
	t.Setenv("BADGER_IN_MEMORY", "true")
	t.Setenv("BADGER_GC_INTERVAL", "2m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SCORING_MODE", "simple")
	t.Setenv("COMPAT_POLICY", "love_hate")
	t.Setenv("CLUSTER_PALETTE", "#111111,#222222")
	t.Setenv("ECLECTIC_MAX_PICKS", "3")
	t.Setenv("SNAPSHOT_TTL", "0s")
	t.Setenv("SHOW_FULL_NAMES", "true")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendBadger || !cfg.Badger.InMemory || cfg.Badger.GCInterval != 2*time.Minute {
		t.Errorf("store = %+v / %+v", cfg.Store, cfg.Badger)
	}
	if cfg.Store.SnapshotTTL != 0 || !cfg.Security.FullNames {
		t.Errorf("SnapshotTTL = %v, FullNames = %v", cfg.Store.SnapshotTTL, cfg.Security.FullNames)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if strings.Join(cfg.Security.CORSOrigins, "|") != "https://a.example|https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}

	ac := cfg.ToAnalyticsConfig()
	if ac.Scoring.Mode != analytics.ScoringSimple || ac.Compatibility.Policy != analytics.PolicyLoveHate {
		t.Errorf("analytics = %+v", ac)
	}
	if len(ac.Clustering.Palette) != 2 || ac.Eclectic.MaxContrarianPicks != 3 {
		t.Errorf("clustering/eclectic = %+v / %+v", ac.Clustering, ac.Eclectic)
	}
}

func TestLoadWithKoanf_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `server:
  port: 7000
store:
  backend: memory
  seed_path: /srv/seed.json
analytics:
  divisive_metric: min_count
  venn_membership: rated
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7001") // environment beats the file

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want 7001", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendMemory || cfg.Store.SeedPath != "/srv/seed.json" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Analytics.DivisiveMetric != "min_count" || cfg.Analytics.VennMembership != "rated" {
		t.Errorf("Analytics = %+v", cfg.Analytics)
	}
	// untouched keys keep their defaults
	if cfg.Analytics.ScoringMinVotes != 5 {
		t.Errorf("ScoringMinVotes = %v, want 5", cfg.Analytics.ScoringMinVotes)
	}
}

func TestLoadWithKoanf_Invalid(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
	t.Setenv("SCORING_MODE", "median")

	if _, err := LoadWithKoanf(); err == nil {
		t.Error("LoadWithKoanf() with SCORING_MODE=median should fail")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"DUCKDB_PATH", "database.path"},
		{"BADGER_PATH", "badger.path"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"COMPAT_EXCLUDE_NEUTRAL", "analytics.compat_exclude_neutral"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, "HTTP_TIMEOUT"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }, "STORE_BACKEND"},
		{"negative snapshot ttl", func(c *Config) { c.Store.SnapshotTTL = -time.Second }, "SNAPSHOT_TTL"},
		{"negative slow threshold", func(c *Config) { c.Server.SlowRequestThreshold = -1 }, "SLOW_REQUEST_THRESHOLD"},
		{"duckdb without path", func(c *Config) { c.Database.Path = "" }, "DUCKDB_PATH"},
		{"badger without path", func(c *Config) {
			c.Store.Backend = BackendBadger
			c.Badger.Path = ""
		}, "BADGER_PATH"},
		{"badger in memory without path", func(c *Config) {
			c.Store.Backend = BackendBadger
			c.Badger.Path = ""
			c.Badger.InMemory = true
		}, ""},
		{"badger ratio", func(c *Config) {
			c.Store.Backend = BackendBadger
			c.Badger.GCRatio = 1
		}, "BADGER_GC_RATIO"},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"window too short", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"bad policy", func(c *Config) { c.Analytics.CompatPolicy = "fuzzy" }, "analytics"},
		{"empty palette", func(c *Config) { c.Analytics.ClusterPalette = nil }, "analytics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestToAnalyticsConfig_CopiesPalette(t *testing.T) {
	cfg := defaultConfig()
	ac := cfg.ToAnalyticsConfig()
	ac.Clustering.Palette[0] = "#000000"
	if cfg.Analytics.ClusterPalette[0] == "#000000" {
		t.Error("ToAnalyticsConfig() shares the palette slice")
	}
}
