// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package feed

import (
	"reflect"
	"testing"

	"github.com/tomtom215/oyonews/internal/models"
)

func posts(ids ...int) []models.Post {
	out := make([]models.Post, len(ids))
	for i, id := range ids {
		out[i] = models.Post{ID: id, TitleHTML: "v1"}
	}
	return out
}

func ids(ps []models.Post) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestBuffer_Merge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pages     [][]models.Post
		wantIDs   []int
		wantAdded []int
	}{
		{"single page", [][]models.Post{posts(1, 2, 3)}, []int{1, 2, 3}, []int{3}},
		{"disjoint pages append", [][]models.Post{posts(1, 2), posts(3, 4)}, []int{1, 2, 3, 4}, []int{2, 2}},
		{"overlap keeps first position", [][]models.Post{posts(1, 2, 3), posts(3, 2, 5)}, []int{1, 2, 3, 5}, []int{3, 1}},
		{"duplicate inside one page", [][]models.Post{posts(7, 7, 8)}, []int{7, 8}, []int{2}},
		{"empty page", [][]models.Post{posts(1), nil}, []int{1}, []int{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewBuffer()
			for i, page := range tt.pages {
				if got := b.Merge(page); got != tt.wantAdded[i] {
					t.Errorf("Merge(page %d) added %d, want %d", i, got, tt.wantAdded[i])
				}
			}
			if got := ids(b.Items()); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("Items() = %v, want %v", got, tt.wantIDs)
			}
			if b.Len() != len(tt.wantIDs) {
				t.Errorf("Len() = %d, want %d", b.Len(), len(tt.wantIDs))
			}
		})
	}
}

func TestBuffer_LastWriteWinsContent(t *testing.T) {
	t.Parallel()

	b := NewBuffer()
	b.Merge(posts(1, 2))
	b.Merge([]models.Post{{ID: 1, TitleHTML: "v2"}})

	items := b.Items()
	if items[0].ID != 1 || items[0].TitleHTML != "v2" {
		t.Errorf("items[0] = %+v, want id 1 with refreshed title", items[0])
	}
	if b.IndexOf(1) != 0 || b.IndexOf(2) != 1 || b.IndexOf(3) != -1 {
		t.Error("IndexOf wrong after refresh")
	}
}

func TestBuffer_MergeIdempotent(t *testing.T) {
	t.Parallel()

	page := posts(4, 5, 6)

	once := NewBuffer()
	once.Merge(posts(1, 2))
	once.Merge(page)

	twice := NewBuffer()
	twice.Merge(posts(1, 2))
	twice.Merge(page)
	twice.Merge(page)

	if !reflect.DeepEqual(once.Items(), twice.Items()) {
		t.Errorf("merging twice %v differs from once %v", ids(twice.Items()), ids(once.Items()))
	}
}

func TestBuffer_PositionStability(t *testing.T) {
	t.Parallel()

	b := NewBuffer()
	b.Merge(posts(10, 20, 30))
	before := map[int]int{10: b.IndexOf(10), 20: b.IndexOf(20), 30: b.IndexOf(30)}

	for _, page := range [][]models.Post{posts(30, 40), posts(20, 10, 50), posts(50, 60, 10)} {
		prevLen := b.Len()
		b.Merge(page)
		if b.Len() < prevLen {
			t.Fatalf("Len shrank from %d to %d", prevLen, b.Len())
		}
	}

	for id, idx := range before {
		if got := b.IndexOf(id); got != idx {
			t.Errorf("IndexOf(%d) = %d, want %d", id, got, idx)
		}
	}
}

func TestBuffer_ItemsIsACopy(t *testing.T) {
	t.Parallel()

	b := NewBuffer()
	b.Merge(posts(1))
	items := b.Items()
	items[0].TitleHTML = "mutated"

	if b.Items()[0].TitleHTML != "v1" {
		t.Error("Items() exposed internal storage")
	}
}

func TestMerge_Pure(t *testing.T) {
	t.Parallel()

	existing := posts(1, 2)
	incoming := posts(2, 3)
	got := Merge(existing, incoming)

	if want := []int{1, 2, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Merge() = %v, want %v", ids(got), want)
	}
	if len(existing) != 2 || len(incoming) != 2 {
		t.Error("Merge modified its arguments")
	}
}

func TestBuffer_Last(t *testing.T) {
	t.Parallel()

	b := NewBuffer()
	if _, ok := b.Last(); ok {
		t.Error("Last() on empty buffer returned ok")
	}
	b.Merge(posts(1, 2))
	b.Merge(posts(1))
	if last, ok := b.Last(); !ok || last.ID != 2 {
		t.Errorf("Last() = %d, %v, want 2", last.ID, ok)
	}
}
