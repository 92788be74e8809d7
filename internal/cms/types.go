// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package cms

import "github.com/goccy/go-json"

// Rendered is the {"rendered": "..."} wrapper used for CMS HTML fields.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// RawPost is a post as returned by /wp/v2/posts with _embed.
type RawPost struct {
	ID            int       `json:"id"`
	Date          string    `json:"date"`
	DateGMT       string    `json:"date_gmt"`
	Slug          string    `json:"slug"`
	Link          string    `json:"link"`
	Title         Rendered  `json:"title"`
	Excerpt       Rendered  `json:"excerpt"`
	Content       Rendered  `json:"content"`
	Author        int       `json:"author"`
	FeaturedMedia int       `json:"featured_media"`
	Categories    []int     `json:"categories"`
	Embedded      *Embedded `json:"_embedded,omitempty"`

	// FeaturedMediaURL is set by some CMS plugins instead of embedding media.
	FeaturedMediaURL string `json:"featured_media_url,omitempty"`
}

// Embedded holds the related resources pulled in by _embed.
type Embedded struct {
	Author        []EmbeddedAuthor `json:"author,omitempty"`
	FeaturedMedia []EmbeddedMedia  `json:"wp:featuredmedia,omitempty"`
	Terms         [][]EmbeddedTerm `json:"wp:term,omitempty"`
	Replies       [][]RawComment   `json:"replies,omitempty"`
}

// EmbeddedAuthor is the public author record. Name is empty when the CMS
// refuses to expose the author.
type EmbeddedAuthor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// EmbeddedMedia is an attachment.
type EmbeddedMedia struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
	AltText   string `json:"alt_text"`
}

// EmbeddedTerm is a category or tag attached to a post.
type EmbeddedTerm struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Taxonomy string `json:"taxonomy"`
}

// RawCategory is a category from /wp/v2/categories.
type RawCategory struct {
	ID          int    `json:"id"`
	Count       int    `json:"count"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Parent      int    `json:"parent"`
}

// RawComment is a comment from /wp/v2/comments.
type RawComment struct {
	ID         int               `json:"id"`
	Post       int               `json:"post"`
	Parent     int               `json:"parent"`
	AuthorName string            `json:"author_name"`
	Date       string            `json:"date"`
	Content    Rendered          `json:"content"`
	AvatarURLs map[string]string `json:"author_avatar_urls,omitempty"`
}

// NewComment is the body of a comment submission.
type NewComment struct {
	Post       int    `json:"post"`
	Content    string `json:"content"`
	Parent     int    `json:"parent"`
	AuthorName string `json:"author_name,omitempty"`
}

// RawUser is the authenticated user from /wp/v2/users/me or the register
// endpoint.
type RawUser struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Slug     string   `json:"slug"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// TokenResponse is the answer of the JWT token endpoint.
type TokenResponse struct {
	Token           string `json:"token"`
	UserEmail       string `json:"user_email"`
	UserNicename    string `json:"user_nicename"`
	UserDisplayName string `json:"user_display_name"`
}

// RegisterResponse is the answer of the registration endpoint.
type RegisterResponse struct {
	User    *RawUser `json:"user"`
	Token   string   `json:"token"`
	Message string   `json:"message"`
}

// SiteSettings is the ACF field group of the site-settings page.
type SiteSettings = json.RawMessage

// wpError is the error envelope of the WordPress REST API.
type wpError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
