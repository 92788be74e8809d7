// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

/*
Package main runs the OyoNews front end: server-rendered pages over a
WordPress REST API, with an infinite category feed on the home page.

Start-up order:

 1. Configuration (koanf: defaults, config.yaml, environment)
 2. Logging (zerolog)
 3. CMS client behind a rate limiter and a circuit breaker
 4. Session store (memory or BadgerDB) and cookie signing
 5. Feed registry, handlers and the chi router
 6. Supervisor tree with the janitor and the HTTP server

SIGINT or SIGTERM cancels the tree. The HTTP server drains for up to ten
seconds, open feed views are torn down and the session store is closed.

Common settings:

	WORDPRESS_API_URL=https://cms.example.com/wp-json
	JWT_SECRET=<32+ characters>
	SESSION_STORE=badger
	SESSION_STORE_PATH=/var/lib/oyonews/sessions
	HTTP_PORT=3000
*/
package main
