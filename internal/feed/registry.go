// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package feed

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/oyonews/internal/logging"
	"github.com/tomtom215/oyonews/internal/metrics"
)

// View is one reader's feed, addressed by ID from the page it was rendered
// into.
type View struct {
	ID   string
	ctrl *Controller
	now  func() time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// Controller returns the controller backing the view.
func (v *View) Controller() *Controller {
	return v.ctrl
}

// OnSentinelVisible marks the view used and forwards the trigger.
func (v *View) OnSentinelVisible(ctx context.Context) bool {
	v.touch(v.now())
	return v.ctrl.OnSentinelVisible(ctx)
}

// Subscribe marks the view used and subscribes to its snapshots.
func (v *View) Subscribe() (<-chan Snapshot, func()) {
	v.touch(v.now())
	return v.ctrl.Subscribe()
}

// Snapshot marks the view used and returns the current snapshot.
func (v *View) Snapshot() Snapshot {
	v.touch(v.now())
	return v.ctrl.Snapshot()
}

func (v *View) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

func (v *View) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// Registry holds the live feed views of the process.
type Registry struct {
	src  PostSource
	opts Options
	ttl  time.Duration
	now  func() time.Time

	mu    sync.Mutex
	views map[string]*View
}

// NewRegistry returns a registry whose views expire after ttl without use.
func NewRegistry(src PostSource, opts Options, ttl time.Duration) *Registry {
	return &Registry{
		src:   src,
		opts:  opts,
		ttl:   ttl,
		now:   time.Now,
		views: make(map[string]*View),
	}
}

// Open creates a view, loads its categories and runs the initial pass. The
// view is returned even when loading failed so the page can show the error,
// but only successfully started views are kept.
func (r *Registry) Open(ctx context.Context) (*View, error) {
	v := &View{ID: uuid.New().String(), ctrl: NewController(r.src, r.opts), now: r.now}
	v.touch(r.now())

	if err := v.ctrl.Start(ctx); err != nil {
		v.ctrl.Teardown()
		return v, err
	}

	r.mu.Lock()
	r.views[v.ID] = v
	n := len(r.views)
	r.mu.Unlock()
	metrics.FeedActiveViews.Set(float64(n))
	return v, nil
}

// Get returns a live view and marks it used.
func (r *Registry) Get(id string) (*View, bool) {
	r.mu.Lock()
	v, ok := r.views[id]
	r.mu.Unlock()
	if ok {
		v.touch(r.now())
	}
	return v, ok
}

// Close tears a view down and forgets it.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	n := len(r.views)
	r.mu.Unlock()

	if ok {
		v.ctrl.Teardown()
		metrics.FeedActiveViews.Set(float64(n))
	}
	return ok
}

// Sweep tears down views idle for longer than the TTL and returns how many
// were removed. Views with a live subscriber are never idle.
func (r *Registry) Sweep(_ context.Context) int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []*View
	for id, v := range r.views {
		if v.ctrl.Subscribers() == 0 && v.idleSince().Before(cutoff) {
			expired = append(expired, v)
			delete(r.views, id)
		}
	}
	n := len(r.views)
	r.mu.Unlock()

	for _, v := range expired {
		v.ctrl.Teardown()
	}
	metrics.FeedActiveViews.Set(float64(n))
	if len(expired) > 0 {
		logging.Debug().Int("expired", len(expired)).Int("remaining", n).Msg("Swept idle feed views")
	}
	return len(expired)
}

// Len returns the number of live views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// CloseAll tears down every view. Used at shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*View)
	r.mu.Unlock()

	for _, v := range views {
		v.ctrl.Teardown()
	}
	metrics.FeedActiveViews.Set(0)
}
