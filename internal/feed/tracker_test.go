// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package feed

import (
	"testing"

	"github.com/tomtom215/oyonews/internal/models"
)

func TestPerPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rank int
		want int
	}{
		{0, 10},
		{1, 2},
		{7, 2},
	}
	for _, tt := range tests {
		if got := PerPage(tt.rank, 10, 2); got != tt.want {
			t.Errorf("PerPage(%d) = %d, want %d", tt.rank, got, tt.want)
		}
	}
}

func TestTracker_Gate(t *testing.T) {
	t.Parallel()

	tr := NewTracker(models.Category{ID: 1}, 1, 2)
	if tr.Page() != 1 {
		t.Fatalf("Page() = %d, want 1", tr.Page())
	}
	if !tr.NeedsFetch() {
		t.Fatal("empty tracker should need a fetch")
	}

	tr.Record(2, posts(1, 2))
	if tr.NeedsFetch() {
		t.Error("tracker at depth p*k should not need a fetch")
	}

	tr.Advance()
	if tr.Page() != 2 || !tr.NeedsFetch() {
		t.Errorf("after Advance: page=%d needs=%v, want 2/true", tr.Page(), tr.NeedsFetch())
	}
}

func TestTracker_OverfullPageIsGated(t *testing.T) {
	t.Parallel()

	// Sticky posts make the first page longer than per_page.
	tr := NewTracker(models.Category{ID: 1}, 1, 2)
	tr.Record(4, posts(1, 2, 3, 4))
	tr.Advance()

	if tr.NeedsFetch() {
		t.Errorf("len=%d page=%d perPage=2 should be gated", tr.Len(), tr.Page())
	}
	tr.Advance()
	if !tr.NeedsFetch() {
		t.Error("page 3 should need a fetch")
	}
}

func TestTracker_Exhaustion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rawCount int
		want     bool
	}{
		{"full page", 10, false},
		{"short page", 3, true},
		{"empty page", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tr := NewTracker(models.Category{ID: 1}, 0, 10)
			tr.Record(tt.rawCount, nil)
			if tr.Exhausted() != tt.want {
				t.Errorf("Exhausted() = %v, want %v", tr.Exhausted(), tt.want)
			}
			tr.Advance()
			if tt.want && tr.NeedsFetch() {
				t.Error("exhausted tracker must not need a fetch")
			}
		})
	}
}

func TestTracker_DuplicatesDoNotCount(t *testing.T) {
	t.Parallel()

	tr := NewTracker(models.Category{ID: 1}, 1, 2)
	tr.Record(2, posts(1, 2))
	tr.Advance()
	added := tr.Record(2, posts(2, 3))

	if added != 1 || tr.Len() != 3 {
		t.Errorf("added=%d len=%d, want 1/3", added, tr.Len())
	}
	if tr.Exhausted() {
		t.Error("a full page of partly known posts is not exhaustion")
	}
}
