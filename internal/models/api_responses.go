// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package models

import (
	"time"

	"github.com/tomtom215/popquiz/internal/analytics"
)

// APIResponse is the envelope of every endpoint.
//
// Status is "success" with Data set, or "error" with Error set.
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "level must be a rating level (...)",
//	    "details": {"field": "level", "tag": "level", "value": "superb"}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time        `json:"timestamp"`
	QueryTimeMS int64            `json:"query_time_ms,omitempty"`
	Category    string           `json:"category,omitempty"`
	Scheme      analytics.Scheme `json:"scheme,omitempty"`
	Count       *int             `json:"count,omitempty"`
}

// APIError carries a machine-readable code and a message.
//
// Codes:
//   - VALIDATION_ERROR: malformed parameters or body (400)
//   - NOT_FOUND: unknown category, user or item (404)
//   - CONFLICT: the write clashes with stored data (409)
//   - RATE_LIMITED: too many requests (429)
//   - INTERNAL_ERROR: store or engine failure (500)
//   - SERVICE_UNAVAILABLE: the store is unreachable (503)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes carried in APIError.Code.
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeConflict    = "CONFLICT"
	ErrCodeMethod      = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited = "RATE_LIMITED"
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeUnavailable = "SERVICE_UNAVAILABLE"
)

// HealthStatus is returned by the health endpoint.
type HealthStatus struct {
	Status         string  `json:"status"` // "healthy" or "degraded"
	Version        string  `json:"version"`
	Backend        string  `json:"backend"`
	StoreConnected bool    `json:"store_connected"`
	Uptime         float64 `json:"uptime_seconds"`
}

// RatingSubmission is the body of POST /api/v1/ratings.
type RatingSubmission struct {
	Username string `json:"username" validate:"required,username"`
	ItemID   int64  `json:"item_id" validate:"required,gt=0"`
	Level    string `json:"level" validate:"required,level"`
}

// RatingReceipt answers a rating submission with the stored rating and the
// user's next unrated item in the same category.
type RatingReceipt struct {
	Rating analytics.RatingRecord `json:"rating"`
	Queue  analytics.QueueState   `json:"queue"`
}
