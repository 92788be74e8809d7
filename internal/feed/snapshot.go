// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package feed

import "github.com/tomtom215/oyonews/internal/models"

// Section is the rendered state of one category.
type Section struct {
	Category  models.Category
	Rank      int
	Page      int
	PerPage   int
	Exhausted bool
	Posts     []models.Post
}

// Snapshot is a consistent copy of a feed view.
type Snapshot struct {
	Version  uint64
	Loaded   bool
	Loading  bool
	Error    string
	Sections []Section

	// SentinelCategoryID and SentinelPostID locate the post whose visibility
	// triggers the next pass: the last post of the lowest-ranked category
	// that has any posts. Both are 0 when nothing is loaded.
	SentinelCategoryID int
	SentinelPostID     int
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		Version:  c.version,
		Loaded:   c.loaded,
		Loading:  c.inFlight,
		Error:    c.errMsg,
		Sections: make([]Section, len(c.trackers)),
	}
	for i, t := range c.trackers {
		s.Sections[i] = Section{
			Category:  t.Category(),
			Rank:      t.Rank(),
			Page:      t.Page(),
			PerPage:   t.PerPageSize(),
			Exhausted: t.Exhausted(),
			Posts:     t.Items(),
		}
	}
	for i := len(c.trackers) - 1; i >= 0; i-- {
		if last, ok := c.trackers[i].items.Last(); ok {
			s.SentinelCategoryID = c.trackers[i].Category().ID
			s.SentinelPostID = last.ID
			break
		}
	}
	return s
}

// Subscribe returns a channel that receives the latest snapshot after each
// change, and a function that cancels the subscription. Slow readers only
// see the newest snapshot. The channel is closed on Teardown.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if !c.mounted {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			close(sub)
			delete(c.subs, id)
		}
	}
}

// Subscribers returns the number of open subscriptions.
func (c *Controller) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// changedLocked bumps the version and pushes a snapshot to subscribers.
func (c *Controller) changedLocked() {
	c.version++
	if len(c.subs) == 0 {
		return
	}
	s := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// TotalPosts returns the number of loaded posts across all sections.
func (s Snapshot) TotalPosts() int {
	n := 0
	for _, sec := range s.Sections {
		n += len(sec.Posts)
	}
	return n
}
