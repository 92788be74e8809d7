// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package models

import (
	"html"
	"sort"
	"strings"
)

// AllCategories is the category filter value that disables filtering.
const AllCategories = "all-categories"

// SearchPosts keeps posts whose title or excerpt contains query (case
// insensitive) and that belong to categoryID when it is non-zero. The result
// is sorted newest first. posts is not modified.
func SearchPosts(posts []Post, query string, categoryID int) []Post {
	needle := strings.ToLower(strings.TrimSpace(query))

	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if needle != "" && !containsFold(p.TitleHTML, needle) && !containsFold(p.ExcerptHTML, needle) {
			continue
		}
		if categoryID != 0 && !p.InCategory(categoryID) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}

func containsFold(htmlText, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(html.UnescapeString(htmlText)), lowerNeedle)
}
