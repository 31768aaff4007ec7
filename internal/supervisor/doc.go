// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

/*
Package supervisor runs the long-lived PopQuiz services under suture v4.

	root ("popquiz")
	├── data-layer
	│   └── badger-gc (STORE_BACKEND=badger with BADGER_GC_INTERVAL > 0)
	└── api-layer
	    └── http-server

Each layer is its own supervisor, so a crashing GC loop is restarted
without touching the HTTP listener. Restarts back off after FailureThreshold
failures within the decay window.

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog into zerolog via logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	err = tree.Serve(ctx) // returns when ctx is canceled
*/
package supervisor
