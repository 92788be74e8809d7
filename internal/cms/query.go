// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package cms

import (
	"net/url"
	"strconv"
	"strings"
)

// PostQuery selects posts from /wp/v2/posts. Zero fields are omitted.
type PostQuery struct {
	CategoryID int
	Page       int
	PerPage    int
	Slug       string
	OrderBy    string
	Order      string
	MetaKey    string
	Exclude    []int
}

// Values encodes the query. _embed is always requested so author, media and
// terms arrive in the same round trip.
func (q PostQuery) Values() url.Values {
	v := url.Values{}
	if q.CategoryID > 0 {
		v.Set("categories", strconv.Itoa(q.CategoryID))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Slug != "" {
		v.Set("slug", q.Slug)
	}
	if q.OrderBy != "" {
		v.Set("orderby", q.OrderBy)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.MetaKey != "" {
		v.Set("meta_key", q.MetaKey)
	}
	if len(q.Exclude) > 0 {
		ids := make([]string, len(q.Exclude))
		for i, id := range q.Exclude {
			ids[i] = strconv.Itoa(id)
		}
		v.Set("exclude", strings.Join(ids, ","))
	}
	v.Set("_embed", "")
	return v
}

// LatestQuery returns the newest n posts.
func LatestQuery(n int) PostQuery {
	return PostQuery{PerPage: n, OrderBy: "date", Order: "desc"}
}

// TrendingQuery returns the n most viewed posts.
func TrendingQuery(n int) PostQuery {
	return PostQuery{PerPage: n, OrderBy: "post_views_count", Order: "desc", MetaKey: "post_views_count"}
}

// RelatedQuery returns up to n posts of categoryID other than postID.
func RelatedQuery(categoryID, postID, n int) PostQuery {
	return PostQuery{CategoryID: categoryID, PerPage: n, Exclude: []int{postID}}
}
