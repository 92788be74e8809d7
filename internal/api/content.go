// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package api

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/oyonews/internal/cache"
	"github.com/tomtom215/oyonews/internal/cms"
	"github.com/tomtom215/oyonews/internal/models"
)

const (
	homeListSize    = 5
	relatedListSize = 4
	searchCorpus    = 100
)

// contentCache fronts the CMS reads shared by every reader. Feed views do
// not go through it: each view pages the CMS on its own.
type contentCache struct {
	api        cms.ContentAPI
	categories *cache.Cache[[]models.Category]
	posts      *cache.Cache[[]models.Post]
	banner     *cache.Cache[cms.SiteSettings]
}

func newContentCache(api cms.ContentAPI, ttl, bannerTTL time.Duration) *contentCache {
	return &contentCache{
		api:        api,
		categories: cache.New[[]models.Category]("categories", ttl),
		posts:      cache.New[[]models.Post]("posts", ttl),
		banner:     cache.New[cms.SiteSettings]("banner", bannerTTL),
	}
}

// Categories returns every category, largest first.
func (c *contentCache) Categories(ctx context.Context) ([]models.Category, error) {
	return c.categories.GetOrLoad(ctx, cache.GenerateKey("categories", nil), func(ctx context.Context) ([]models.Category, error) {
		raw, err := c.api.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		return models.NormalizeCategories(raw), nil
	})
}

// Posts returns the normalized result of q.
func (c *contentCache) Posts(ctx context.Context, q cms.PostQuery) ([]models.Post, error) {
	return c.posts.GetOrLoad(ctx, cache.GenerateKey("posts", q), func(ctx context.Context) ([]models.Post, error) {
		raw, err := c.api.ListPosts(ctx, q)
		if err != nil {
			return nil, err
		}
		return models.NormalizePosts(raw), nil
	})
}

// Latest returns the newest posts for the home page.
func (c *contentCache) Latest(ctx context.Context) ([]models.Post, error) {
	return c.Posts(ctx, cms.LatestQuery(homeListSize))
}

// Trending returns the most viewed posts for the home page.
func (c *contentCache) Trending(ctx context.Context) ([]models.Post, error) {
	return c.Posts(ctx, cms.TrendingQuery(homeListSize))
}

// Banner returns the raw ACF fields of the site-settings page.
func (c *contentCache) Banner(ctx context.Context) (cms.SiteSettings, error) {
	return c.banner.GetOrLoad(ctx, cache.GenerateKey("banner", nil), c.api.SiteSettings)
}

// Cleaners exposes the caches to the janitor.
func (c *contentCache) Cleaners() []cache.Cleaner {
	return []cache.Cleaner{c.categories, c.posts, c.banner}
}

// bannerImageURL extracts the top banner image from the ACF fields. ACF
// reports unset fields as false, which decodes as an error and yields "".
func bannerImageURL(settings cms.SiteSettings) string {
	var fields struct {
		TopBanner struct {
			URL string `json:"url"`
		} `json:"top_banner"`
	}
	if len(settings) == 0 || json.Unmarshal(settings, &fields) != nil {
		return ""
	}
	return fields.TopBanner.URL
}
