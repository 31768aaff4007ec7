// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

// Package logging wraps zerolog behind a process-wide logger.
//
// The server calls Init once at startup with the values from the logging
// section of the configuration. Packages that run before that point still
// get a usable JSON logger on stderr.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Str("backend", "duckdb").Msg("Store opened")
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Snapshot load failed")
//
// Request-scoped fields travel in the context. The API middleware stores a
// request ID with ContextWithRequestID and Ctx adds it to every event logged
// for that request.
//
// NewSlogLogger adapts the global logger to log/slog for the supervisor
// tree, which reports service restarts through sutureslog.
//
// Environment variables (read by the config package):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: include file:line in each event (default: false)
package logging
