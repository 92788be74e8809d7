// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/oyonews/internal/logging"
)

type contextKey string

const sessionContextKey contextKey = "session"

// ContextWithSession stores the session in ctx.
func ContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext returns the reader's session, if logged in.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*Session)
	return session, ok && session != nil
}

// Middleware connects the Service to HTTP requests through the session
// cookie.
type Middleware struct {
	svc     *Service
	cookies *CookieManager
}

// NewMiddleware creates the session middleware.
func NewMiddleware(svc *Service, cookies *CookieManager) *Middleware {
	return &Middleware{svc: svc, cookies: cookies}
}

// Authenticate resolves the session cookie and puts the Session on the
// request context. Requests without a valid session continue anonymously
// and lose their stale cookie.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.cookies.Read(r)
		if errors.Is(err, ErrNoCookie) {
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			m.cookies.Clear(w)
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.svc.Resolve(r.Context(), id)
		if err != nil {
			if !errors.Is(err, ErrNoSession) {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Session lookup error")
			}
			m.cookies.Clear(w)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), session)))
	})
}

// Establish sets the cookie for a session created by Login or Signup. Any
// session the request already had is destroyed first.
func (m *Middleware) Establish(w http.ResponseWriter, r *http.Request, session *Session) error {
	if old, ok := SessionFromContext(r.Context()); ok && old.ID != session.ID {
		if err := m.svc.Logout(r.Context(), old.ID); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to drop previous session")
		}
	}
	return m.cookies.Set(w, session)
}

// Destroy logs the reader out and clears the cookie.
func (m *Middleware) Destroy(w http.ResponseWriter, r *http.Request) error {
	defer m.cookies.Clear(w)
	if session, ok := SessionFromContext(r.Context()); ok {
		return m.svc.Logout(r.Context(), session.ID)
	}
	return nil
}
