// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/popquiz/internal/middleware"
	"github.com/tomtom215/popquiz/internal/models"
)

// compressionLevel is the gzip level for JSON responses.
const compressionLevel = 5

// Router builds the chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi returns the HTTP handler serving the API and /metrics.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(middleware.PrometheusMetrics)
	if router.handler.monitor != nil {
		r.Use(router.handler.monitor.Middleware)
	}
	r.Use(chimiddleware.Compress(compressionLevel, "application/json"))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, models.ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, models.ErrCodeMethod, "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())

		r.Route("/health", func(r chi.Router) {
			r.Get("/", router.handler.Health)
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit("api"))

			r.Get("/categories", router.handler.Categories)
			r.Route("/categories/{slug}", func(r chi.Router) {
				r.Get("/ranking", router.handler.Ranking)
				r.Get("/decades", router.handler.Decades)
				r.Get("/divisive", router.handler.Divisive)
				r.Get("/eclectic", router.handler.Eclectic)
				r.Get("/clusters", router.handler.Clusters)
				r.Get("/compare", router.handler.Compare)
				r.Get("/compare3", router.handler.CompareThree)
				r.Get("/compatibility/{username}", router.handler.Compatibility)
				r.Get("/items/{itemID}", router.handler.Item)
				r.Get("/queue/{username}", router.handler.Queue)
			})
			r.Get("/users/{username}/profile", router.handler.Profile)
			r.Get("/performance", router.handler.Performance)

			r.With(router.chiMiddleware.RateLimitCustom("ratings", RateLimitWrite)).
				Post("/ratings", router.handler.SubmitRating)
		})
	})

	return r
}
