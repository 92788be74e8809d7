// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package models

import (
	"strings"
	"time"

	"github.com/tomtom215/oyonews/internal/cms"
)

const (
	// PlaceholderImage stands in for posts without a featured image.
	PlaceholderImage = "https://via.placeholder.com/300x200?text=No+Image"

	// SmallPlaceholderImage is used for related-post thumbnails.
	SmallPlaceholderImage = "https://via.placeholder.com/150"

	// UnknownAuthor is shown when the CMS does not expose the author.
	UnknownAuthor = "Unknown Author"
)

// cmsTimeLayout is the layout of date and date_gmt fields.
const cmsTimeLayout = "2006-01-02T15:04:05"

// Post is the flat display record of a CMS post. Identity is ID.
type Post struct {
	ID               int
	Slug             string
	TitleHTML        string
	ExcerptHTML      string
	ContentHTML      string
	PublishedAt      time.Time
	AuthorName       string
	FeaturedImageURL string
	HasImage         bool
	CategoryIDs      []int
	CategoryNames    []string
	CommentCount     int
}

// NormalizePost maps a raw CMS post into a Post.
func NormalizePost(raw cms.RawPost) Post {
	return NormalizePostWith(raw, PlaceholderImage)
}

// NormalizePostWith is NormalizePost with a caller-chosen image placeholder.
func NormalizePostWith(raw cms.RawPost, placeholder string) Post {
	p := Post{
		ID:          raw.ID,
		Slug:        raw.Slug,
		TitleHTML:   raw.Title.Rendered,
		ExcerptHTML: raw.Excerpt.Rendered,
		ContentHTML: raw.Content.Rendered,
		PublishedAt: parseCMSTime(raw.DateGMT, raw.Date),
		AuthorName:  UnknownAuthor,
	}

	if len(raw.Categories) > 0 {
		p.CategoryIDs = append([]int(nil), raw.Categories...)
	}

	if raw.FeaturedMediaURL != "" {
		p.FeaturedImageURL = raw.FeaturedMediaURL
	}

	if e := raw.Embedded; e != nil {
		if len(e.Author) > 0 && strings.TrimSpace(e.Author[0].Name) != "" {
			p.AuthorName = e.Author[0].Name
		}
		if len(e.FeaturedMedia) > 0 && e.FeaturedMedia[0].SourceURL != "" {
			p.FeaturedImageURL = e.FeaturedMedia[0].SourceURL
		}
		for _, group := range e.Terms {
			for _, term := range group {
				if term.Taxonomy == "" || term.Taxonomy == "category" {
					p.CategoryNames = append(p.CategoryNames, term.Name)
				}
			}
		}
		if len(e.Replies) > 0 {
			p.CommentCount = len(e.Replies[0])
		}
	}

	p.HasImage = p.FeaturedImageURL != ""
	if !p.HasImage {
		p.FeaturedImageURL = placeholder
	}
	return p
}

// NormalizePosts maps every raw post, preserving order.
func NormalizePosts(raw []cms.RawPost) []Post {
	out := make([]Post, len(raw))
	for i := range raw {
		out[i] = NormalizePost(raw[i])
	}
	return out
}

// parseCMSTime prefers the UTC field and falls back to the site-local one,
// read as UTC. Unparsable values yield the zero time.
func parseCMSTime(gmt, local string) time.Time {
	for _, v := range []string{gmt, local} {
		if v == "" {
			continue
		}
		if t, err := time.Parse(cmsTimeLayout, v); err == nil {
			return t.UTC()
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// PrimaryCategoryID returns the first category of p, or 0.
func (p Post) PrimaryCategoryID() int {
	if len(p.CategoryIDs) == 0 {
		return 0
	}
	return p.CategoryIDs[0]
}

// InCategory reports whether p belongs to categoryID.
func (p Post) InCategory(categoryID int) bool {
	for _, id := range p.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}
