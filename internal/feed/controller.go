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
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/oyonews/internal/cms"
	"github.com/tomtom215/oyonews/internal/logging"
	"github.com/tomtom215/oyonews/internal/metrics"
	"github.com/tomtom215/oyonews/internal/models"
)

// Messages shown to readers when loading fails.
const (
	ErrMsgPosts      = "Failed to load posts."
	ErrMsgCategories = "Failed to load categories."
)

// ErrTornDown is returned by Start on a view that was already discarded.
var ErrTornDown = errors.New("feed: view torn down")

// PostSource is the part of the CMS the feed reads from.
type PostSource interface {
	ListCategories(ctx context.Context) ([]cms.RawCategory, error)
	ListPosts(ctx context.Context, q cms.PostQuery) ([]cms.RawPost, error)
}

// Options sizes the feed.
type Options struct {
	TopPerPage    int
	PerPage       int
	MaxConcurrent int
}

// DefaultOptions gives the top category 10 posts per page and the rest 2.
func DefaultOptions() Options {
	return Options{TopPerPage: 10, PerPage: 2, MaxConcurrent: 8}
}

// Controller owns the feed state of one view. All state changes go through
// its mutex, and the inFlight flag admits one fetch pass at a time.
type Controller struct {
	src    PostSource
	opts   Options
	logger zerolog.Logger

	mu       sync.Mutex
	trackers []*Tracker
	loaded   bool
	inFlight bool
	mounted  bool
	errMsg   string
	version  uint64
	subs     map[int]chan Snapshot
	nextSub  int
}

// NewController returns a mounted controller with no categories loaded.
func NewController(src PostSource, opts Options) *Controller {
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}
	return &Controller{
		src:     src,
		opts:    opts,
		logger:  logging.WithComponent("feed"),
		mounted: true,
		subs:    make(map[int]chan Snapshot),
	}
}

// fetchJob is one category request planned for a pass.
type fetchJob struct {
	tracker *Tracker
	query   cms.PostQuery
}

// Start loads the categories once, seeds every category at page 1 and runs
// the initial pass. Calling it again after a successful load does nothing.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case !c.mounted:
		c.mu.Unlock()
		return ErrTornDown
	case c.loaded || c.inFlight:
		c.mu.Unlock()
		return nil
	}
	c.inFlight = true
	c.mu.Unlock()

	raw, err := c.src.ListCategories(ctx)
	if err != nil {
		c.mu.Lock()
		c.inFlight = false
		if c.mounted {
			c.errMsg = ErrMsgCategories
			c.changedLocked()
		}
		c.mu.Unlock()
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to load feed categories")
		return fmt.Errorf("load categories: %w", err)
	}
	cats := models.NormalizeCategories(raw)

	c.mu.Lock()
	if !c.mounted {
		c.inFlight = false
		c.mu.Unlock()
		return ErrTornDown
	}
	c.trackers = make([]*Tracker, len(cats))
	for rank, cat := range cats {
		c.trackers[rank] = NewTracker(cat, rank, PerPage(rank, c.opts.TopPerPage, c.opts.PerPage))
	}
	c.loaded = true
	jobs := c.planLocked()
	c.changedLocked()
	c.mu.Unlock()

	c.runPass(ctx, jobs)
	return nil
}

// OnSentinelVisible handles the reader reaching the sentinel post. When no
// pass is in flight it advances every category by one page and runs a pass,
// returning true once the pass has finished. Otherwise it returns false
// without doing anything. Once every category is exhausted the feed is
// complete and triggers leave pages and version untouched.
func (c *Controller) OnSentinelVisible(ctx context.Context) bool {
	c.mu.Lock()
	if !c.mounted || !c.loaded || c.inFlight || !c.hasMoreLocked() {
		c.mu.Unlock()
		metrics.RecordFeedPass("skipped", 0)
		return false
	}
	c.inFlight = true
	for _, t := range c.trackers {
		t.Advance()
	}
	jobs := c.planLocked()
	c.changedLocked()
	c.mu.Unlock()

	c.runPass(ctx, jobs)
	return true
}

func (c *Controller) hasMoreLocked() bool {
	for _, t := range c.trackers {
		if !t.Exhausted() {
			return true
		}
	}
	return false
}

// planLocked picks the categories that need a fetch for their current page.
func (c *Controller) planLocked() []fetchJob {
	jobs := make([]fetchJob, 0, len(c.trackers))
	for _, t := range c.trackers {
		switch {
		case t.Exhausted():
			metrics.FeedCategoryFetches.WithLabelValues("exhausted").Inc()
		case !t.NeedsFetch():
			metrics.FeedCategoryFetches.WithLabelValues("gated").Inc()
		default:
			jobs = append(jobs, fetchJob{
				tracker: t,
				query: cms.PostQuery{
					CategoryID: t.Category().ID,
					Page:       t.Page(),
					PerPage:    t.PerPageSize(),
				},
			})
		}
	}
	return jobs
}

// runPass fetches every job concurrently and merges each result as it
// arrives. One category failing never stops the others. The in-flight flag
// is cleared when all jobs have returned.
func (c *Controller) runPass(ctx context.Context, jobs []fetchJob) {
	// Requests are not cancelled when the triggering request or the view
	// goes away; late results are dropped by apply instead.
	ctx = context.WithoutCancel(ctx)
	log := logging.Ctx(ctx).With().Str("component", "feed").Logger()
	start := time.Now()

	var (
		failMu sync.Mutex
		failed int
	)

	var g errgroup.Group
	g.SetLimit(c.opts.MaxConcurrent)
	for _, job := range jobs {
		g.Go(func() error {
			raw, err := c.src.ListPosts(ctx, job.query)
			if err != nil {
				metrics.FeedCategoryFetches.WithLabelValues("error").Inc()
				log.Warn().Err(err).
					Int("category_id", job.query.CategoryID).
					Int("page", job.query.Page).
					Msg("Category fetch failed")
				failMu.Lock()
				failed++
				failMu.Unlock()
				return nil
			}
			metrics.FeedCategoryFetches.WithLabelValues("fetched").Inc()
			c.apply(job, raw)
			return nil
		})
	}
	_ = g.Wait()

	result := "ok"
	if failed > 0 {
		result = "partial"
	}
	metrics.RecordFeedPass(result, time.Since(start))

	c.mu.Lock()
	c.inFlight = false
	if c.mounted {
		if failed > 0 {
			c.errMsg = ErrMsgPosts
		} else {
			c.errMsg = ""
		}
		c.changedLocked()
	}
	c.mu.Unlock()

	log.Debug().
		Int("categories", len(jobs)).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("Feed pass finished")
}

// apply is the single write path for fetched posts. It always merges into
// the tracker's current state and drops results for a torn down view.
func (c *Controller) apply(job fetchJob, raw []cms.RawPost) {
	posts := models.NormalizePosts(raw)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return
	}
	job.tracker.Record(len(raw), posts)
	c.changedLocked()
}

// Teardown discards the view. In-flight results are ignored afterwards and
// subscriber channels are closed.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return
	}
	c.mounted = false
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
}

// Mounted reports whether the view is still live.
func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// InFlight reports whether a pass is running.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}
