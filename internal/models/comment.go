// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package models

import (
	"time"

	"github.com/tomtom215/oyonews/internal/cms"
)

// Comment is one node of a comment thread.
type Comment struct {
	ID          int
	PostID      int
	ParentID    int
	AuthorName  string
	ContentHTML string
	PublishedAt time.Time
	AvatarURL   string
	Replies     []*Comment
}

// NormalizeComment maps a raw comment. Replies is left empty.
func NormalizeComment(raw cms.RawComment) *Comment {
	c := &Comment{
		ID:          raw.ID,
		PostID:      raw.Post,
		ParentID:    raw.Parent,
		AuthorName:  raw.AuthorName,
		ContentHTML: raw.Content.Rendered,
		PublishedAt: parseCMSTime("", raw.Date),
	}
	if c.AuthorName == "" {
		c.AuthorName = UnknownAuthor
	}
	for _, size := range []string{"48", "96", "24"} {
		if u := raw.AvatarURLs[size]; u != "" {
			c.AvatarURL = u
			break
		}
	}
	return c
}

// BuildThreads arranges flat comments into reply trees. Comments whose parent
// is 0 or absent from raw become roots. Siblings keep CMS order.
func BuildThreads(raw []cms.RawComment) []*Comment {
	byID := make(map[int]*Comment, len(raw))
	nodes := make([]*Comment, 0, len(raw))
	for _, r := range raw {
		if _, dup := byID[r.ID]; dup {
			continue
		}
		c := NormalizeComment(r)
		byID[c.ID] = c
		nodes = append(nodes, c)
	}

	roots := make([]*Comment, 0, len(nodes))
	for _, c := range nodes {
		parent, ok := byID[c.ParentID]
		if c.ParentID == 0 || !ok || parent == c {
			roots = append(roots, c)
			continue
		}
		parent.Replies = append(parent.Replies, c)
	}
	return roots
}

// CountComments returns the number of comments in threads, replies included.
func CountComments(threads []*Comment) int {
	n := 0
	for _, c := range threads {
		n += 1 + CountComments(c.Replies)
	}
	return n
}
