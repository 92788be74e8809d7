// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

// Package metrics declares the Prometheus collectors for OyoNews.
//
// Collectors are registered on the default registry through promauto and are
// exposed by the /metrics route. Record helpers keep label handling in one
// place so callers never build label values by hand.
package metrics
