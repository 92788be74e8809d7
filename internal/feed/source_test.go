// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tomtom215/oyonews/internal/cms"
)

var errUpstream = errors.New("upstream unavailable")

// fakeSource serves per-category post lists in pages and records requests.
type fakeSource struct {
	mu      sync.Mutex
	cats    []cms.RawCategory
	catErr  error
	posts   map[int][]cms.RawPost
	pages   map[int]map[int][]cms.RawPost // explicit page overrides
	fail    map[int]error
	calls   map[int][]int
	block   chan struct{}
	started chan int
}

func newFakeSource(cats ...cms.RawCategory) *fakeSource {
	f := &fakeSource{
		cats:    cats,
		posts:   make(map[int][]cms.RawPost),
		pages:   make(map[int]map[int][]cms.RawPost),
		fail:    make(map[int]error),
		calls:   make(map[int][]int),
		started: make(chan int, 64),
	}
	for _, c := range cats {
		f.posts[c.ID] = rawPosts(c.ID, c.Count)
	}
	return f
}

func rawPosts(catID, n int) []cms.RawPost {
	out := make([]cms.RawPost, n)
	for i := range out {
		id := catID*1000 + i + 1
		out[i] = cms.RawPost{
			ID:         id,
			Slug:       fmt.Sprintf("post-%d", id),
			Title:      cms.Rendered{Rendered: fmt.Sprintf("Post %d", id)},
			Categories: []int{catID},
		}
	}
	return out
}

func (f *fakeSource) ListCategories(_ context.Context) ([]cms.RawCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.catErr != nil {
		return nil, f.catErr
	}
	return f.cats, nil
}

func (f *fakeSource) ListPosts(_ context.Context, q cms.PostQuery) ([]cms.RawPost, error) {
	f.mu.Lock()
	f.calls[q.CategoryID] = append(f.calls[q.CategoryID], q.Page)
	block := f.block
	f.mu.Unlock()

	f.started <- q.CategoryID
	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[q.CategoryID]; err != nil {
		return nil, err
	}
	if page, ok := f.pages[q.CategoryID][q.Page]; ok {
		return page, nil
	}
	all := f.posts[q.CategoryID]
	lo := (q.Page - 1) * q.PerPage
	if lo >= len(all) {
		return nil, nil
	}
	hi := min(lo+q.PerPage, len(all))
	return all[lo:hi], nil
}

func (f *fakeSource) setBlock(ch chan struct{}) {
	f.mu.Lock()
	f.block = ch
	f.mu.Unlock()
}

func (f *fakeSource) setFail(catID int, err error) {
	f.mu.Lock()
	if err == nil {
		delete(f.fail, catID)
	} else {
		f.fail[catID] = err
	}
	f.mu.Unlock()
}

func (f *fakeSource) setPage(catID, page int, posts []cms.RawPost) {
	f.mu.Lock()
	if f.pages[catID] == nil {
		f.pages[catID] = make(map[int][]cms.RawPost)
	}
	f.pages[catID][page] = posts
	f.mu.Unlock()
}

func (f *fakeSource) callsFor(catID int) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.calls[catID]...)
}

// drain empties the started channel.
func (f *fakeSource) drain() {
	for {
		select {
		case <-f.started:
		default:
			return
		}
	}
}
