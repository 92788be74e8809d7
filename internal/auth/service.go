// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/tomtom215/oyonews/internal/cms"
	"github.com/tomtom215/oyonews/internal/config"
	"github.com/tomtom215/oyonews/internal/logging"
	"github.com/tomtom215/oyonews/internal/metrics"
)

// AccountAPI is the part of the CMS that manages accounts.
type AccountAPI interface {
	IssueToken(ctx context.Context, username, password string) (*cms.TokenResponse, error)
	Register(ctx context.Context, username, email, password string) (*cms.RegisterResponse, error)
	CurrentUser(ctx context.Context, token string) (*cms.RawUser, error)
}

// Service owns reader sessions. Every login builds a new Session; handlers
// receive it through the request context.
type Service struct {
	api        AccountAPI
	store      SessionStore
	enc        *TokenEncryptor
	ttl        time.Duration
	revalidate time.Duration
	authLog    *logging.AuthLogger
	strip      *bluemonday.Policy
	now        func() time.Time
}

// NewService creates the session service. enc may be nil to store tokens in
// the clear.
func NewService(api AccountAPI, store SessionStore, enc *TokenEncryptor, cfg *config.SecurityConfig) *Service {
	ttl := cfg.SessionTimeout
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		api:        api,
		store:      store,
		enc:        enc,
		ttl:        ttl,
		revalidate: cfg.RevalidateInterval,
		authLog:    logging.NewAuthLogger(),
		strip:      bluemonday.StrictPolicy(),
		now:        time.Now,
	}
}

// Login exchanges credentials for a CMS token, loads the profile and stores
// a new session.
func (s *Service) Login(ctx context.Context, username, password, ip string) (*Session, error) {
	session, err := s.login(ctx, username, password)
	if err != nil {
		s.authLog.LoginFailed(username, ip, err.Error())
		metrics.RecordAuthAttempt("login", false)
		return nil, err
	}
	s.authLog.LoginSucceeded(session.UserID, username, ip)
	metrics.RecordAuthAttempt("login", true)
	return session, nil
}

func (s *Service) login(ctx context.Context, username, password string) (*Session, error) {
	tok, err := s.api.IssueToken(ctx, username, password)
	if err != nil {
		return nil, &AuthError{Op: "login", Message: s.cmsMessage(err, MsgInvalidCredentials), Err: err}
	}
	if tok == nil || tok.Token == "" {
		return nil, &AuthError{Op: "login", Message: MsgInvalidCredentials}
	}

	user, err := s.api.CurrentUser(ctx, tok.Token)
	if err != nil {
		return nil, &AuthError{Op: "login", Message: s.cmsMessage(err, MsgProfileFailed), Err: err}
	}
	if user == nil || user.ID == 0 {
		return nil, &AuthError{Op: "login", Message: MsgProfileFailed}
	}

	now := s.now()
	session := &Session{
		ID:          generateSessionID(),
		Token:       tok.Token,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
		ValidatedAt: now,
	}
	applyProfile(session, user)

	if err := s.persist(ctx, session, s.store.Create); err != nil {
		return nil, err
	}
	return session, nil
}

// Signup registers an account and logs it in with the same credentials.
// The CMS accepts the email address as login name.
func (s *Service) Signup(ctx context.Context, username, email, password, ip string) (*Session, error) {
	resp, err := s.api.Register(ctx, username, email, password)
	if err != nil {
		metrics.RecordAuthAttempt("signup", false)
		return nil, &AuthError{Op: "signup", Message: s.cmsMessage(err, MsgRegistrationFailed), Err: err}
	}
	if resp == nil || resp.User == nil || resp.Token == "" {
		metrics.RecordAuthAttempt("signup", false)
		msg := MsgRegistrationFailed
		if resp != nil && resp.Message != "" {
			msg = s.clean(resp.Message)
		}
		return nil, &AuthError{Op: "signup", Message: msg}
	}
	metrics.RecordAuthAttempt("signup", true)
	s.authLog.SignupSucceeded(username, email)

	return s.Login(ctx, email, password, ip)
}

// Resolve loads a session for a request. Sessions whose token the CMS
// rejects on revalidation are destroyed and reported as ErrNoSession. An
// unreachable CMS leaves the session alone until the next request.
func (s *Service) Resolve(ctx context.Context, id string) (*Session, error) {
	session, err := s.store.Get(ctx, id)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return nil, ErrNoSession
	case errors.Is(err, ErrSessionExpired):
		s.destroy(ctx, id, "expired")
		return nil, ErrNoSession
	case err != nil:
		return nil, fmt.Errorf("load session: %w", err)
	}

	token, err := s.enc.Decrypt(session.Token)
	if err != nil {
		s.destroy(ctx, id, "undecryptable token")
		return nil, ErrNoSession
	}
	session.Token = token

	now := s.now()
	if !session.NeedsRevalidation(s.revalidate, now) {
		return session, nil
	}

	user, err := s.api.CurrentUser(ctx, session.Token)
	if err != nil {
		if ne, ok := cms.AsNetworkError(err); ok && ne.IsClientError() {
			s.destroy(ctx, id, "token rejected")
			return nil, ErrNoSession
		}
		logging.Ctx(ctx).Warn().Err(err).Msg("Session revalidation skipped, CMS unavailable")
		return session, nil
	}
	if user == nil || user.ID == 0 {
		s.destroy(ctx, id, "empty profile")
		return nil, ErrNoSession
	}

	applyProfile(session, user)
	session.ValidatedAt = now
	if err := s.persist(ctx, session, s.store.Update); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to save revalidated session")
	}
	return session, nil
}

// Logout destroys the session.
func (s *Service) Logout(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.authLog.SessionRevoked(id, "logout")
	return nil
}

// Cleanup removes expired sessions and refreshes the active session gauge.
func (s *Service) Cleanup(ctx context.Context) (int, error) {
	n, err := s.store.CleanupExpired(ctx)
	if err != nil {
		return 0, err
	}
	if count, err := s.store.Count(ctx); err == nil {
		metrics.SessionsActive.Set(float64(count))
	}
	return n, nil
}

// persist writes a copy of the session with the token sealed.
func (s *Service) persist(ctx context.Context, session *Session, write func(context.Context, *Session) error) error {
	stored := *session
	sealed, err := s.enc.Encrypt(session.Token)
	if err != nil {
		return fmt.Errorf("encrypt session token: %w", err)
	}
	stored.Token = sealed
	if err := write(ctx, &stored); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *Service) destroy(ctx context.Context, id, reason string) {
	if err := s.store.Delete(ctx, id); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to delete session")
		return
	}
	s.authLog.SessionRevoked(id, reason)
}

// cmsMessage returns the CMS error message as plain text, or fallback when
// the CMS gave none.
func (s *Service) cmsMessage(err error, fallback string) string {
	if ne, ok := cms.AsNetworkError(err); ok && ne.Message != "" {
		if msg := s.clean(ne.Message); msg != "" {
			return msg
		}
	}
	return fallback
}

// clean strips markup from CMS messages such as "<strong>Error:</strong> ...".
func (s *Service) clean(msg string) string {
	return strings.TrimSpace(html.UnescapeString(s.strip.Sanitize(msg)))
}

func applyProfile(session *Session, user *cms.RawUser) {
	session.UserID = user.ID
	session.Name = user.Name
	if session.Name == "" {
		session.Name = user.Username
	}
	session.Email = user.Email
	session.Role = RoleSubscriber
	if len(user.Roles) > 0 && user.Roles[0] != "" {
		session.Role = user.Roles[0]
	}
}

// generateSessionID returns 256 random bits in hex. crypto/rand.Read does not
// fail on supported platforms.
func generateSessionID() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
