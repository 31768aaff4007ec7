// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/popquiz/internal/analytics"
	"github.com/tomtom215/popquiz/internal/logging"
	"github.com/tomtom215/popquiz/internal/models"
	"github.com/tomtom215/popquiz/internal/store"
	"github.com/tomtom215/popquiz/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// sanitizeLogValue escapes control characters so client input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondJSON writes response with an ETag. Clients must revalidate because
// any rating write can change the result.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag returns a weak FNV-1a fingerprint of the body.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return `W/"` + strconv.FormatUint(uint64(hash), 16) + `"`
}

// respondOK wraps data in a success envelope.
func respondOK(w http.ResponseWriter, data interface{}, meta models.Metadata) {
	meta.Timestamp = time.Now().UTC()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}

// respondError writes an error envelope. err is logged, never sent.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logger := logging.Ctx(r.Context())
		event := logger.Warn()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.Str("code", code).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondValidation writes a 400 built from validator output.
func respondValidation(w http.ResponseWriter, apiErr *models.APIError) {
	respondJSON(w, http.StatusBadRequest, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    apiErr,
	})
}

// respondFailure maps an engine or store error onto a status code.
func respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, analytics.ErrInvalidOption),
		errors.Is(err, analytics.ErrUnknownLevel),
		errors.Is(err, analytics.ErrDuplicateUser),
		errors.Is(err, store.ErrInvalid):
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), err)
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, analytics.ErrUnknownUser),
		errors.Is(err, analytics.ErrUnknownItem):
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, notFoundMessage(err), err)
	case errors.Is(err, store.ErrConflict):
		respondError(w, r, http.StatusConflict, models.ErrCodeConflict, "The request conflicts with stored data", err)
	default:
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "Internal server error", err)
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, analytics.ErrUnknownUser):
		return "User not found"
	case errors.Is(err, analytics.ErrUnknownItem):
		return "Item not found"
	default:
		return "Resource not found"
	}
}

// validateRequest runs the struct validator and converts its error.
func validateRequest(v interface{}) *models.APIError {
	if verr := validation.ValidateStruct(v); verr != nil {
		return toModelError(verr)
	}
	return nil
}

// validateParam checks a single path or query value against tag.
func validateParam(field, value, tag string) *models.APIError {
	if verr := validation.ValidateVar(field, value, tag); verr != nil {
		return toModelError(verr)
	}
	return nil
}

func toModelError(verr *validation.RequestValidationError) *models.APIError {
	apiErr := verr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// pathInt64 parses a positive integer URL parameter.
func pathInt64(r *http.Request, key string) (int64, *models.APIError) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &models.APIError{
			Code:    models.ErrCodeValidation,
			Message: fmt.Sprintf("%s must be a positive integer", key),
			Details: map[string]interface{}{"field": key, "value": raw},
		}
	}
	return id, nil
}

// decodeJSON reads a bounded JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) *models.APIError {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &models.APIError{
			Code:    models.ErrCodeValidation,
			Message: "Request body must be a JSON object",
			Details: map[string]interface{}{"error": err.Error()},
		}
	}
	return nil
}

// elapsedMS is the metadata query time since start.
func elapsedMS(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}

func intPtr(n int) *int { return &n }
