// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package services

import (
	"context"
	"time"

	"github.com/tomtom215/oyonews/internal/cache"
	"github.com/tomtom215/oyonews/internal/logging"
	"github.com/tomtom215/oyonews/internal/metrics"
)

// Task is one housekeeping job. Run returns how many items it removed.
type Task interface {
	Name() string
	Run(ctx context.Context) (int, error)
}

type funcTask struct {
	name string
	fn   func(ctx context.Context) (int, error)
}

func (t funcTask) Name() string                         { return t.name }
func (t funcTask) Run(ctx context.Context) (int, error) { return t.fn(ctx) }

// TaskFunc adapts fn into a Task.
func TaskFunc(name string, fn func(ctx context.Context) (int, error)) Task {
	return funcTask{name: name, fn: fn}
}

// CacheTask evicts expired entries from a cache.
func CacheTask(c cache.Cleaner) Task {
	return TaskFunc("cache:"+c.Name(), func(context.Context) (int, error) {
		return c.Cleanup(), nil
	})
}

// JanitorService runs its tasks on a fixed interval. A failing task is
// logged and counted; the others still run.
type JanitorService struct {
	interval time.Duration
	tasks    []Task
	name     string
}

// NewJanitorService creates the janitor. A non-positive interval means one
// minute.
func NewJanitorService(interval time.Duration, tasks ...Task) *JanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &JanitorService{interval: interval, tasks: tasks, name: "janitor"}
}

// Serve implements suture.Service.
func (j *JanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce runs every task once and returns the total removed.
func (j *JanitorService) RunOnce(ctx context.Context) int {
	total := 0
	for _, task := range j.tasks {
		if ctx.Err() != nil {
			return total
		}
		n, err := task.Run(ctx)
		if err != nil {
			metrics.JanitorErrors.WithLabelValues(task.Name()).Inc()
			logging.Ctx(ctx).Warn().Err(err).Str("task", task.Name()).Msg("Janitor task failed")
			continue
		}
		if n > 0 {
			metrics.JanitorRemoved.WithLabelValues(task.Name()).Add(float64(n))
			logging.Ctx(ctx).Debug().Str("task", task.Name()).Int("removed", n).Msg("Janitor task removed items")
		}
		total += n
	}
	return total
}

// String names the service in supervisor events.
func (j *JanitorService) String() string {
	return j.name
}
