// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

// Package feed implements the home page category feed: several
// independently paged category lists that grow together each time the reader
// reaches the end of the page.
//
// The pieces, leaf to root:
//
//   - Buffer merges fetched pages of one category into an ordered list that
//     is unique by post ID. A post keeps the position where it was first seen
//     while its content follows the latest fetch.
//   - Tracker holds the page counter, page size and exhaustion state of one
//     category and decides whether that category needs another fetch.
//   - Controller consumes the "sentinel visible" event, advances every
//     tracker and runs one concurrent fetch pass with at most one pass in
//     flight.
//   - Registry keeps one Controller per open feed view and tears idle views
//     down.
package feed
