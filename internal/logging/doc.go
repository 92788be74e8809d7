// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

// Package logging provides the process-wide zerolog logger for OyoNews.
//
// The logger is configured once at startup from the logging section of the
// configuration:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("slug", slug).Msg("Rendered post")
//
// Request-scoped logging goes through Ctx, which attaches the request and
// correlation IDs stored by the request ID middleware:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("CMS call failed")
//
// NewSlogLogger bridges zerolog to log/slog for libraries that only accept a
// *slog.Logger, such as the suture supervisor hooks.
//
// AuthLogger writes login, signup and session events with credentials,
// tokens and email addresses masked.
package logging
