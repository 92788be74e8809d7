// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// AuthLogger writes authentication events. Identifying values are masked
// before they reach the log.
type AuthLogger struct {
	logger zerolog.Logger
}

// NewAuthLogger returns an AuthLogger on the global logger.
func NewAuthLogger() *AuthLogger {
	return &AuthLogger{logger: WithComponent("auth")}
}

// NewAuthLoggerWithLogger returns an AuthLogger writing to logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAuthLoggerWithLogger(logger zerolog.Logger) *AuthLogger {
	return &AuthLogger{logger: logger.With().Str("component", "auth").Logger()}
}

// LoginSucceeded records a completed token exchange and profile fetch.
func (l *AuthLogger) LoginSucceeded(userID int, username, ip string) {
	l.logger.Info().
		Str("event", "login_success").
		Int("user_id", userID).
		Str("username", MaskUsername(username)).
		Str("ip", ip).
		Msg("")
}

// LoginFailed records a rejected login. reason is scrubbed of secrets.
func (l *AuthLogger) LoginFailed(username, ip, reason string) {
	l.logger.Warn().
		Str("event", "login_failure").
		Str("username", MaskUsername(username)).
		Str("ip", ip).
		Str("reason", ScrubError(reason)).
		Msg("")
}

// SignupSucceeded records a new account.
func (l *AuthLogger) SignupSucceeded(username, email string) {
	l.logger.Info().
		Str("event", "signup_success").
		Str("username", MaskUsername(username)).
		Str("email", MaskEmail(email)).
		Msg("")
}

// SessionRevoked records a session that was destroyed, by logout or by a
// failed revalidation.
func (l *AuthLogger) SessionRevoked(sessionID, reason string) {
	l.logger.Info().
		Str("event", "session_revoked").
		Str("session_id", MaskToken(sessionID)).
		Str("reason", reason).
		Msg("")
}

// MaskToken keeps the first and last four characters of a token.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// MaskUsername keeps the first two characters of a username.
func MaskUsername(username string) string {
	if username == "" {
		return ""
	}
	if len(username) <= 2 {
		return "***"
	}
	return username[:2] + "***"
}

// MaskEmail keeps two characters of the local part and the whole domain.
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at:]
	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}

// ScrubError replaces messages that mention credentials with a generic one
// and truncates the rest to 200 bytes.
func ScrubError(msg string) string {
	lower := strings.ToLower(msg)
	for _, word := range []string{"password", "secret", "token", "bearer", "authorization", "cookie"} {
		if strings.Contains(lower, word) {
			return "authentication error"
		}
	}
	if len(msg) > 200 {
		return msg[:200] + "..."
	}
	return msg
}
