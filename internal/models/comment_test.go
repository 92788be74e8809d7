// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package models

import (
	"testing"

	"github.com/tomtom215/oyonews/internal/cms"
)

func TestBuildThreads(t *testing.T) {
	t.Parallel()

	raw := []cms.RawComment{
		{ID: 1, Parent: 0, AuthorName: "Ada"},
		{ID: 2, Parent: 1, AuthorName: "Bob"},
		{ID: 3, Parent: 0},
		{ID: 4, Parent: 2},
		{ID: 5, Parent: 42}, // parent not in page
		{ID: 6, Parent: 1},
		{ID: 1, Parent: 0}, // duplicate
	}

	roots := BuildThreads(raw)

	if len(roots) != 3 {
		t.Fatalf("roots = %d, want 3", len(roots))
	}
	if roots[0].ID != 1 || roots[1].ID != 3 || roots[2].ID != 5 {
		t.Errorf("root order = %d,%d,%d", roots[0].ID, roots[1].ID, roots[2].ID)
	}
	if len(roots[0].Replies) != 2 || roots[0].Replies[0].ID != 2 || roots[0].Replies[1].ID != 6 {
		t.Errorf("replies of 1 wrong: %+v", roots[0].Replies)
	}
	if len(roots[0].Replies[0].Replies) != 1 || roots[0].Replies[0].Replies[0].ID != 4 {
		t.Error("nested reply 4 not under 2")
	}
	if roots[1].AuthorName != UnknownAuthor {
		t.Errorf("AuthorName = %q, want %q", roots[1].AuthorName, UnknownAuthor)
	}
	if got := CountComments(roots); got != 6 {
		t.Errorf("CountComments() = %d, want 6", got)
	}
}

func TestNormalizeComment_Avatar(t *testing.T) {
	t.Parallel()

	c := NormalizeComment(cms.RawComment{ID: 1, AvatarURLs: map[string]string{"24": "s", "96": "m"}})
	if c.AvatarURL != "m" {
		t.Errorf("AvatarURL = %q, want 96px avatar", c.AvatarURL)
	}
}
