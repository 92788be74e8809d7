// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package models

import (
	"sort"

	"github.com/tomtom215/oyonews/internal/cms"
)

// Category is a CMS category. Immutable once fetched.
type Category struct {
	ID        int
	Name      string
	Slug      string
	PostCount int
}

// NormalizeCategory maps a raw category.
func NormalizeCategory(raw cms.RawCategory) Category {
	return Category{ID: raw.ID, Name: raw.Name, Slug: raw.Slug, PostCount: raw.Count}
}

// NormalizeCategories maps raw categories and sorts them by post count,
// largest first. Equal counts keep CMS order.
func NormalizeCategories(raw []cms.RawCategory) []Category {
	out := make([]Category, len(raw))
	for i, r := range raw {
		out[i] = NormalizeCategory(r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PostCount > out[j].PostCount
	})
	return out
}

// NonEmptyCategories returns the categories that have at least one post.
func NonEmptyCategories(cats []Category) []Category {
	out := make([]Category, 0, len(cats))
	for _, c := range cats {
		if c.PostCount > 0 {
			out = append(out, c)
		}
	}
	return out
}

// FindCategoryBySlug returns the category with slug.
func FindCategoryBySlug(cats []Category, slug string) (Category, bool) {
	for _, c := range cats {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}
