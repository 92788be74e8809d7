// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package feed

import "github.com/tomtom215/oyonews/internal/models"

// Buffer is an ordered collection of posts, unique by ID. Items are never
// removed or reordered. On a repeated ID the stored post is replaced in
// place, so content follows the last write and position follows the first.
type Buffer struct {
	items []models.Post
	index map[int]int
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{index: make(map[int]int)}
}

// Merge folds incoming into the buffer in order and returns how many posts
// were new.
func (b *Buffer) Merge(incoming []models.Post) int {
	added := 0
	for _, p := range incoming {
		if i, ok := b.index[p.ID]; ok {
			b.items[i] = p
			continue
		}
		b.index[p.ID] = len(b.items)
		b.items = append(b.items, p)
		added++
	}
	return added
}

// Len returns the de-duplicated item count.
func (b *Buffer) Len() int {
	return len(b.items)
}

// Items returns a copy of the posts in first-seen order.
func (b *Buffer) Items() []models.Post {
	out := make([]models.Post, len(b.items))
	copy(out, b.items)
	return out
}

// Last returns the last post in order.
func (b *Buffer) Last() (models.Post, bool) {
	if len(b.items) == 0 {
		return models.Post{}, false
	}
	return b.items[len(b.items)-1], true
}

// IndexOf returns the position of id, or -1.
func (b *Buffer) IndexOf(id int) int {
	if i, ok := b.index[id]; ok {
		return i
	}
	return -1
}

// Merge returns existing followed by the new posts of incoming, unique by ID,
// with the same collision policy as Buffer. Neither argument is modified.
func Merge(existing, incoming []models.Post) []models.Post {
	b := NewBuffer()
	b.Merge(existing)
	b.Merge(incoming)
	return b.items
}
