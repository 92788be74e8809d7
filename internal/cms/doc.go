// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

// Package cms is the client for the headless CMS REST API (WordPress
// wp-json) that owns every post, category, comment and user OyoNews shows.
//
// Client talks HTTP directly and shares one outbound rate limiter across all
// callers. CircuitBreakerClient wraps it with sony/gobreaker so a CMS outage
// fails fast instead of tying up every page render. Both satisfy ContentAPI,
// which is what the rest of the application depends on.
//
// Every failure to reach the CMS, or any non-2xx answer, is a *NetworkError.
// Lookups that find nothing return ErrNotFound.
package cms
