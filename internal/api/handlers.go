// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/oyonews/internal/auth"
	"github.com/tomtom215/oyonews/internal/cache"
	"github.com/tomtom215/oyonews/internal/cms"
	"github.com/tomtom215/oyonews/internal/config"
	"github.com/tomtom215/oyonews/internal/feed"
	"github.com/tomtom215/oyonews/internal/logging"
	"github.com/tomtom215/oyonews/internal/models"
	ws "github.com/tomtom215/oyonews/internal/websocket"
)

// bannerLink is where the top banner points.
const bannerLink = "https://oyonews.ng"

// ReadinessChecker reports the state of the CMS circuit breaker.
type ReadinessChecker interface {
	State() string
}

// HandlerDeps are the collaborators of Handler.
type HandlerDeps struct {
	Config   *config.Config
	CMS      cms.ContentAPI
	Feeds    *feed.Registry
	Auth     *auth.Service
	Sessions *auth.Middleware

	// Ready is optional. Without it the service is always ready.
	Ready ReadinessChecker
}

// Handler serves every page and JSON endpoint.
type Handler struct {
	cfg       *config.Config
	cms       cms.ContentAPI
	feeds     *feed.Registry
	auth      *auth.Service
	sessions  *auth.Middleware
	ready     ReadinessChecker
	content   *contentCache
	views     *Renderer
	upgrader  *websocket.Upgrader
	startTime time.Time
}

// NewHandler parses the templates and builds the content caches.
func NewHandler(d HandlerDeps) (*Handler, error) {
	if d.Config == nil || d.CMS == nil || d.Feeds == nil || d.Auth == nil || d.Sessions == nil {
		return nil, errors.New("api: incomplete handler dependencies")
	}

	views, err := NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	return &Handler{
		cfg:       d.Config,
		cms:       d.CMS,
		feeds:     d.Feeds,
		auth:      d.Auth,
		sessions:  d.Sessions,
		ready:     d.Ready,
		content:   newContentCache(d.CMS, d.Config.Cache.TTL, d.Config.Cache.BannerTTL),
		views:     views,
		upgrader:  ws.NewUpgrader(d.Config.Security.CORSOrigins),
		startTime: time.Now(),
	}, nil
}

// Caches exposes the content caches to the janitor.
func (h *Handler) Caches() []cache.Cleaner {
	return h.content.Cleaners()
}

// layout collects what every page shows. The navigation lists only categories
// with posts. A failed category load leaves it empty rather than failing the
// page.
func (h *Handler) layout(r *http.Request, title string) layoutData {
	l := layoutData{Title: title}
	if session, ok := auth.SessionFromContext(r.Context()); ok {
		l.Session = session
	}
	cats, err := h.content.Categories(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Navigation categories unavailable")
		return l
	}
	l.Categories = models.NonEmptyCategories(cats)
	return l
}

// renderError renders the error page.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.views.Render(w, r, status, pageError, errorPage{
		layoutData: h.layout(r, http.StatusText(status)),
		Status:     status,
		Message:    message,
	})
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}

// NotFound is the router's fallback.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r)
}

// categoryIDBySlug resolves slug through the cached category list.
func (h *Handler) categoryIDBySlug(ctx context.Context, slug string) (int, error) {
	cats, err := h.content.Categories(ctx)
	if err != nil {
		return 0, err
	}
	if c, ok := models.FindCategoryBySlug(cats, slug); ok {
		return c.ID, nil
	}
	return 0, nil
}

// clientIP returns the address chi's RealIP left in RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// isNotFound reports a CMS lookup that matched nothing.
func isNotFound(err error) bool {
	return errors.Is(err, cms.ErrNotFound)
}
