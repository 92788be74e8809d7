// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Session-related errors
var (
	// ErrSessionNotFound is returned when a session is not in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned for a stored session past its expiry.
	ErrSessionExpired = errors.New("session expired")
)

// Role names used by the CMS.
const (
	RoleSubscriber    = "subscriber"
	RoleAdministrator = "administrator"
)

// Session is a logged-in reader. Token is the CMS bearer token; stores hold
// it encrypted when a key is configured.
type Session struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Token       string    `json:"token"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	ValidatedAt time.Time `json:"validated_at"`
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsAdmin reports whether the reader is a CMS administrator.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdministrator
}

// NeedsRevalidation reports whether the token was last checked more than
// interval ago. A zero interval disables revalidation.
func (s *Session) NeedsRevalidation(interval time.Duration, now time.Time) bool {
	return interval > 0 && now.Sub(s.ValidatedAt) >= interval
}

// SessionStore defines the interface for session storage backends.
type SessionStore interface {
	// Create stores a new session.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by ID.
	// Returns ErrSessionNotFound if not found.
	// Returns ErrSessionExpired if the session exists but is expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Update replaces an existing session.
	// Returns ErrSessionNotFound if not found.
	Update(ctx context.Context, session *Session) error

	// Delete removes a session by ID. Missing sessions are not an error.
	Delete(ctx context.Context, id string) error

	// CleanupExpired removes all expired sessions and returns the count.
	CleanupExpired(ctx context.Context) (int, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)
}

// MemorySessionStore keeps sessions in process memory. Sessions are lost on
// restart; use the Badger store to keep readers logged in.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]Session),
	}
}

// Create stores a copy of the session.
func (s *MemorySessionStore) Create(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

// Get returns a copy of the stored session.
func (s *MemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return &session, nil
}

// Update replaces an existing session.
func (s *MemorySessionStore) Update(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; !ok {
		return ErrSessionNotFound
	}
	s.sessions[session.ID] = *session
	return nil
}

// Delete removes a session by ID.
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// CleanupExpired removes all expired sessions.
func (s *MemorySessionStore) CleanupExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, session := range s.sessions {
		if session.IsExpired() {
			delete(s.sessions, id)
			count++
		}
	}
	return count, nil
}

// Count returns the number of stored sessions, expired ones included.
func (s *MemorySessionStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}
