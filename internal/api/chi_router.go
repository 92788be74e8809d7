// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/oyonews/internal/auth"
	"github.com/tomtom215/oyonews/internal/middleware"
)

// compressLevel is the gzip level for pages and JSON.
const compressLevel = 5

// chiMiddleware adapts http.HandlerFunc middleware to chi's
// func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	sessions      *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil config means middleware defaults.
func NewRouter(handler *Handler, sessions *auth.Middleware, cfg *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		sessions:      sessions,
		chiMiddleware: NewChiMiddleware(cfg),
	}
}

// SetupChi builds the route tree.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	mw := router.chiMiddleware
	compress := chimiddleware.Compress(compressLevel, "text/html", "application/json")

	r := chi.NewRouter()
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(SecurityHeaders())
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

	r.Route("/health", func(r chi.Router) {
		r.Use(mw.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.CORS())
		r.Use(APISecurityHeaders())

		r.With(mw.RateLimit(), compress).Get("/banner", h.Banner)
		r.With(mw.RateLimitCustom(RateLimitNewsletter)).Post("/newsletter", h.Newsletter)

		r.Route("/feed/{viewID}", func(r chi.Router) {
			r.Use(mw.RateLimitCustom(RateLimitFeed))
			r.With(compress).Post("/more", h.FeedMore)
			r.Get("/ws", h.FeedSocket)
			r.Delete("/", h.FeedClose)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(compress)
		r.Use(router.sessions.Authenticate)

		r.Get("/", h.Home)
		r.Get("/search", h.Search)
		r.Get("/category/{slug}", h.Category)

		r.Get("/login", h.LoginPage)
		r.With(mw.RateLimitCustom(RateLimitAuthForms)).Post("/login", h.Login)
		r.Get("/signup", h.SignupPage)
		r.With(mw.RateLimitCustom(RateLimitAuthForms)).Post("/signup", h.Signup)
		r.Post("/logout", h.Logout)

		r.Get("/{slug}", h.Post)
		r.With(mw.RateLimitCustom(RateLimitComments)).Post("/{slug}/comments", h.PostComment)
	})

	r.NotFound(h.NotFound)
	return r
}
