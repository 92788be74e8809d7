// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

// Package cache provides a small generic TTL cache for CMS responses that
// many readers share, such as the category list, latest and trending posts,
// and the banner settings.
//
// Concurrent misses for one key are coalesced with singleflight so a cold
// cache sends a single request to the CMS. Hits, misses, size and
// evictions are exported as Prometheus metrics labeled by cache name.
//
//	latest := cache.New[[]models.Post]("latest", time.Minute)
//	posts, err := latest.GetOrLoad(ctx, "home", func(ctx context.Context) ([]models.Post, error) {
//	    return fetchLatest(ctx)
//	})
package cache
