// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

// Package api serves the OyoNews site over HTTP.
//
// Pages are rendered server side from html/template files embedded in the
// binary. CMS markup is sanitized with bluemonday before it reaches a page.
//
// Routes:
//
//	GET  /                       home: banner, latest, trending, category feed
//	GET  /category/{slug}        category listing
//	GET  /search?q=&category=    search
//	GET  /{slug}                 story with related posts and comments
//	POST /{slug}/comments        comment or reply (session required)
//	GET  /login, POST /login     login
//	GET  /signup, POST /signup   signup
//	POST /logout                 logout
//	GET  /api/banner             site-settings banner fields
//	POST /api/newsletter         newsletter subscription
//	POST /api/feed/{id}/more     sentinel event over HTTP
//	GET  /api/feed/{id}/ws       sentinel events and snapshots over WebSocket
//	DELETE /api/feed/{id}        tear a feed view down
//	GET  /health/live, /health/ready, /metrics
//
// JSON endpoints answer with the APIResponse envelope, except the banner
// proxy which keeps its original body.
package api
