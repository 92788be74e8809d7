// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package feed

import "github.com/tomtom215/oyonews/internal/models"

// PerPage returns the page size for a category at rank. The top category
// gets top; every other rank gets rest.
func PerPage(rank, top, rest int) int {
	if rank == 0 {
		return top
	}
	return rest
}

// Tracker is the pagination state of one category. It is not safe for
// concurrent use; Controller serializes access.
type Tracker struct {
	category  models.Category
	rank      int
	perPage   int
	page      int
	exhausted bool
	items     *Buffer
}

// NewTracker starts a category at page 1 with no items.
func NewTracker(cat models.Category, rank, perPage int) *Tracker {
	return &Tracker{
		category: cat,
		rank:     rank,
		perPage:  perPage,
		page:     1,
		items:    NewBuffer(),
	}
}

// NeedsFetch reports whether the category is short of its requested depth
// and may still have posts on the server.
func (t *Tracker) NeedsFetch() bool {
	return !t.exhausted && t.items.Len() < t.page*t.perPage
}

// Advance requests one more page.
func (t *Tracker) Advance() {
	t.page++
}

// Record merges the normalized posts of one fetched page. rawCount is the
// number of posts the CMS returned before de-duplication; a short page marks
// the category exhausted.
func (t *Tracker) Record(rawCount int, posts []models.Post) int {
	added := t.items.Merge(posts)
	if rawCount < t.perPage {
		t.exhausted = true
	}
	return added
}

// Category returns the tracked category.
func (t *Tracker) Category() models.Category { return t.category }

// Rank returns the position of the category after sorting.
func (t *Tracker) Rank() int { return t.rank }

// Page returns the requested page.
func (t *Tracker) Page() int { return t.page }

// PerPageSize returns the page size of the category.
func (t *Tracker) PerPageSize() int { return t.perPage }

// Exhausted reports whether the CMS has run out of posts for the category.
func (t *Tracker) Exhausted() bool { return t.exhausted }

// Len returns the de-duplicated number of loaded posts.
func (t *Tracker) Len() int { return t.items.Len() }

// Items returns a copy of the loaded posts.
func (t *Tracker) Items() []models.Post { return t.items.Items() }
