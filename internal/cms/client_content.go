// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package cms

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

// codeInvalidPage is what WordPress answers when page exceeds the last page.
const codeInvalidPage = "rest_post_invalid_page_number"

// ListPosts returns the posts matching q in CMS order. A page past the end of
// the collection yields an empty slice rather than an error.
func (c *Client) ListPosts(ctx context.Context, q PostQuery) ([]RawPost, error) {
	var posts []RawPost
	err := c.do(ctx, request{op: "list_posts", method: http.MethodGet, path: "/wp/v2/posts", query: q.Values()}, &posts)
	if err != nil {
		var ne *NetworkError
		if errors.As(err, &ne) && ne.StatusCode == http.StatusBadRequest && ne.Code == codeInvalidPage {
			return []RawPost{}, nil
		}
		return nil, err
	}
	return posts, nil
}

// ListCategories returns up to 100 categories in CMS order.
func (c *Client) ListCategories(ctx context.Context) ([]RawCategory, error) {
	var cats []RawCategory
	q := url.Values{"per_page": {"100"}}
	if err := c.do(ctx, request{op: "list_categories", method: http.MethodGet, path: "/wp/v2/categories", query: q}, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// CategoryBySlug returns the category with slug or ErrNotFound.
func (c *Client) CategoryBySlug(ctx context.Context, slug string) (*RawCategory, error) {
	var cats []RawCategory
	q := url.Values{"slug": {slug}}
	if err := c.do(ctx, request{op: "category_by_slug", method: http.MethodGet, path: "/wp/v2/categories", query: q}, &cats); err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, ErrNotFound
	}
	return &cats[0], nil
}

// PostBySlug returns the first post with slug or ErrNotFound.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*RawPost, error) {
	var posts []RawPost
	q := PostQuery{Slug: slug}.Values()
	if err := c.do(ctx, request{op: "post_by_slug", method: http.MethodGet, path: "/wp/v2/posts", query: q}, &posts); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNotFound
	}
	return &posts[0], nil
}

// ListComments returns up to 100 comments of postID.
func (c *Client) ListComments(ctx context.Context, postID int) ([]RawComment, error) {
	var comments []RawComment
	q := url.Values{"post": {strconv.Itoa(postID)}, "per_page": {"100"}}
	if err := c.do(ctx, request{op: "list_comments", method: http.MethodGet, path: "/wp/v2/comments", query: q}, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment posts a comment on behalf of the token's owner.
func (c *Client) CreateComment(ctx context.Context, token string, nc NewComment) (*RawComment, error) {
	var created RawComment
	req := request{op: "create_comment", method: http.MethodPost, path: "/wp/v2/comments", body: nc, token: token}
	if err := c.do(ctx, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SiteSettings returns the ACF fields of the site-settings page, which holds
// the banner configuration.
func (c *Client) SiteSettings(ctx context.Context) (SiteSettings, error) {
	var pages []struct {
		ACF SiteSettings `json:"acf"`
	}
	q := url.Values{"slug": {"site-settings"}, "acf_format": {"standard"}}
	if err := c.do(ctx, request{op: "site_settings", method: http.MethodGet, path: "/wp/v2/pages", query: q}, &pages); err != nil {
		return nil, err
	}
	if len(pages) == 0 || len(pages[0].ACF) == 0 {
		return nil, ErrNotFound
	}
	return pages[0].ACF, nil
}
