// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/oyonews/internal/config"
)

const cookieIssuer = "oyonews"

// ErrNoCookie is returned when the request carries no session cookie.
var ErrNoCookie = errors.New("no session cookie")

// CookieClaims is the payload of the session cookie. It holds nothing but
// the session id; the profile and CMS token stay on the server.
type CookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieManager signs and reads session cookies.
type CookieManager struct {
	secret []byte
	name   string
	secure bool
}

// NewCookieManager creates a cookie manager from the security settings.
func NewCookieManager(cfg *config.SecurityConfig) (*CookieManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}
	name := cfg.CookieName
	if name == "" {
		name = "oyonews_session"
	}
	return &CookieManager{
		secret: []byte(cfg.JWTSecret),
		name:   name,
		secure: cfg.CookieSecure,
	}, nil
}

// Name returns the cookie name.
func (m *CookieManager) Name() string {
	return m.name
}

// Sign returns an HS256 token for the session that expires with it.
func (m *CookieManager) Sign(sessionID string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := &CookieClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cookieIssuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}
	return signed, nil
}

// Parse validates a signed cookie value and returns the session id.
func (m *CookieManager) Parse(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &CookieClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(cookieIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("failed to parse session cookie: %w", err)
	}

	claims, ok := token.Claims.(*CookieClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", fmt.Errorf("invalid session cookie claims")
	}
	return claims.SessionID, nil
}

// Read returns the session id from the request cookie.
func (m *CookieManager) Read(r *http.Request) (string, error) {
	c, err := r.Cookie(m.name)
	if err != nil || c.Value == "" {
		return "", ErrNoCookie
	}
	return m.Parse(c.Value)
}

// Set writes the session cookie.
func (m *CookieManager) Set(w http.ResponseWriter, session *Session) error {
	value, err := m.Sign(session.ID, session.ExpiresAt)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (m *CookieManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
