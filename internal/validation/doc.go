// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

// Package validation validates API request structs with
// go-playground/validator v10.
//
// A single validator instance is built on first use. It reports fields by
// their json name and knows three domain tags:
//
//   - level: a rating level of either scheme ("loved", "meh", "no_rating" ...)
//   - slug: lowercase letters, digits and single hyphens
//   - username: 1 to 150 letters, digits or @.+-_
//
// Handlers decode, validate and answer in one step:
//
//	type submitRating struct {
//	    Username string `json:"username" validate:"required,username"`
//	    ItemID   int64  `json:"item_id"  validate:"required,gt=0"`
//	    Level    string `json:"level"    validate:"required,level"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	}
package validation
