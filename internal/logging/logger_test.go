// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// captureGlobal points the global logger at a buffer for the test's duration.
func captureGlobal(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	cfg.Output = &buf
	Init(cfg)
	return &buf
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" || cfg.Caller || !cfg.Timestamp {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestInit_JSON(t *testing.T) {
	buf := captureGlobal(t, Config{Level: "debug", Format: "json", Timestamp: true})

	Info().Str("backend", "memory").Msg("store opened")

	out := buf.String()
	for _, want := range []string{`"level":"info"`, `"backend":"memory"`, `"message":"store opened"`, `"time":`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestInit_Console(t *testing.T) {
	buf := captureGlobal(t, Config{Level: "info", Format: "console"})

	Warn().Msg("slow snapshot")

	out := buf.String()
	if strings.HasPrefix(out, "{") {
		t.Errorf("console output looks like JSON: %q", out)
	}
	if !strings.Contains(out, "slow snapshot") {
		t.Errorf("console output %q missing message", out)
	}
}

func TestInit_LevelFilters(t *testing.T) {
	buf := captureGlobal(t, Config{Level: "warn"})

	Debug().Msg("hidden-debug")
	Info().Msg("hidden-info")
	Warn().Msg("shown-warn")
	Error().Msg("shown-error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-threshold events written: %q", out)
	}
	if !strings.Contains(out, "shown-warn") || !strings.Contains(out, "shown-error") {
		t.Errorf("missing events: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestErr(t *testing.T) {
	buf := captureGlobal(t, Config{Level: "info"})

	Err(errors.New("duckdb: locked")).Msg("write failed")

	out := buf.String()
	if !strings.Contains(out, `"error":"duckdb: locked"`) || !strings.Contains(out, `"level":"error"`) {
		t.Errorf("Err() output = %q", out)
	}
}

func TestWith(t *testing.T) {
	buf := captureGlobal(t, Config{Level: "info"})

	l := With().Str("component", "kvstore").Logger()
	l.Info().Msg("gc pass")

	if !strings.Contains(buf.String(), `"component":"kvstore"`) {
		t.Errorf("With() output = %q", buf.String())
	}
}

func TestSetLevelString(t *testing.T) {
	captureGlobal(t, Config{Level: "info"})

	SetLevelString("error")
	if zerolog.GlobalLevel() != zerolog.ErrorLevel {
		t.Errorf("GlobalLevel() = %v, want error", zerolog.GlobalLevel())
	}
}

func TestNewTestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTestLogger(&buf)
	l.Info().Int("users", 3).Msg("snapshot")

	if !strings.Contains(buf.String(), `"users":3`) {
		t.Errorf("NewTestLogger output = %q", buf.String())
	}
}
