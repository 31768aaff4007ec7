// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package analytics

import "errors"

var (
	// ErrUnknownLevel is returned when a rating level string is not recognized.
	ErrUnknownLevel = errors.New("unknown rating level")

	// ErrUnknownUser is returned when a record or request references a user
	// that is not part of the snapshot.
	ErrUnknownUser = errors.New("unknown user")

	// ErrUnknownItem is returned when a record or request references an item
	// that is not part of the snapshot.
	ErrUnknownItem = errors.New("unknown item")

	// ErrDuplicateUser is returned when the same user appears twice where
	// distinct users are required.
	ErrDuplicateUser = errors.New("duplicate user")

	// ErrDuplicateItem is returned when an item ID appears twice in the input.
	ErrDuplicateItem = errors.New("duplicate item")

	// ErrMixedScheme is returned when records from the five-level and the
	// three-level scheme are combined in one snapshot.
	ErrMixedScheme = errors.New("records mix rating schemes")

	// ErrInvalidOption is returned for an unrecognized mode, metric, policy or
	// sort option.
	ErrInvalidOption = errors.New("invalid option")
)
