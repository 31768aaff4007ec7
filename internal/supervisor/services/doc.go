// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

// Package services adapts PopQuiz components to suture.Service.
//
// Each wrapper blocks in Serve until its context is canceled and returns
// an error only for failures the supervisor should restart on.
package services
