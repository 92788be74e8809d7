// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

// Package websocket carries one feed view over a WebSocket connection.
//
// The browser sends {"type":"sentinel_visible"} when the sentinel post
// scrolls into view, and the server answers every state change of the view
// with a {"type":"snapshot"} frame. Pings and pongs keep idle connections
// alive. When the connection ends, the caller's close hook tears the view
// down.
package websocket
