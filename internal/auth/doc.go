// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

/*
Package auth manages reader accounts against the CMS.

The CMS issues bearer tokens and owns every account. This package keeps a
server-side Session per logged-in reader holding the token and a small
profile, and hands the browser a signed cookie that carries only the
session id.

Key Components:

  - Service: login, signup, logout and periodic revalidation
  - SessionStore: memory or BadgerDB storage for sessions
  - CookieManager: HS256 signed session cookies
  - TokenEncryptor: AES-GCM encryption of CMS tokens at rest
  - Middleware: resolves the cookie into a Session on the request context

A session whose token the CMS no longer accepts is destroyed silently and
the request continues as anonymous.
*/
package auth
