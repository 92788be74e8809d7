// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

// Package middleware holds net/http middleware shared by every route group:
// request ID propagation into the logging context and Prometheus request
// instrumentation keyed by chi route pattern.
package middleware
