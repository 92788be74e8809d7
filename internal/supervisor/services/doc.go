// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

// Package services adapts the server's long-running components to
// suture.Service: HTTPServerService for the listener and JanitorService for
// periodic sweeps of feed views, sessions and caches.
package services
