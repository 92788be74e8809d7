// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package cms

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/oyonews/internal/logging"
	"github.com/tomtom215/oyonews/internal/metrics"
)

// BreakerSettings tunes the circuit breaker.
type BreakerSettings struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// MinRequests and FailureRatio decide when the circuit opens.
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerSettings opens after 60% failures over at least 10 requests
// in a one minute window and probes again after 30 seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "cms-api",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// CircuitBreakerClient guards a ContentAPI with a circuit breaker. Answers
// that prove the CMS is up (4xx, ErrNotFound, caller cancellation) do not
// count as failures.
type CircuitBreakerClient struct {
	client ContentAPI
	cb     *gobreaker.CircuitBreaker[any]
	name   string
}

var _ ContentAPI = (*CircuitBreakerClient)(nil)

// NewCircuitBreakerClient wraps client.
func NewCircuitBreakerClient(client ContentAPI, s BreakerSettings) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= s.FailureRatio {
				logging.Warn().
					Str("breaker", s.Name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("Opening circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
		IsSuccessful: isHealthyOutcome,
	})

	return &CircuitBreakerClient{client: client, cb: cb, name: s.Name}
}

// isHealthyOutcome reports whether err still shows a working CMS.
func isHealthyOutcome(err error) bool {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) {
		return true
	}
	if ne, ok := AsNetworkError(err); ok && ne.IsClientError() {
		return true
	}
	return false
}

// State returns the breaker state name for health reporting.
func (c *CircuitBreakerClient) State() string {
	return stateToString(c.cb.State())
}

func (c *CircuitBreakerClient) execute(fn func() (any, error)) (any, error) {
	result, err := c.cb.Execute(fn)
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", c.name).Msg("CMS request rejected by circuit breaker")
			return nil, &NetworkError{Op: "circuit_breaker", Err: err}
		case isHealthyOutcome(err):
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(float64(c.cb.Counts().ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(0)
	return result, nil
}

// call runs fn through the breaker and restores its static result type.
func call[T any](c *CircuitBreakerClient, fn func() (T, error)) (T, error) {
	result, err := c.execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, _ := result.(T)
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func (c *CircuitBreakerClient) ListPosts(ctx context.Context, q PostQuery) ([]RawPost, error) {
	return call(c, func() ([]RawPost, error) { return c.client.ListPosts(ctx, q) })
}

func (c *CircuitBreakerClient) ListCategories(ctx context.Context) ([]RawCategory, error) {
	return call(c, func() ([]RawCategory, error) { return c.client.ListCategories(ctx) })
}

func (c *CircuitBreakerClient) CategoryBySlug(ctx context.Context, slug string) (*RawCategory, error) {
	return call(c, func() (*RawCategory, error) { return c.client.CategoryBySlug(ctx, slug) })
}

func (c *CircuitBreakerClient) PostBySlug(ctx context.Context, slug string) (*RawPost, error) {
	return call(c, func() (*RawPost, error) { return c.client.PostBySlug(ctx, slug) })
}

func (c *CircuitBreakerClient) ListComments(ctx context.Context, postID int) ([]RawComment, error) {
	return call(c, func() ([]RawComment, error) { return c.client.ListComments(ctx, postID) })
}

func (c *CircuitBreakerClient) CreateComment(ctx context.Context, token string, nc NewComment) (*RawComment, error) {
	return call(c, func() (*RawComment, error) { return c.client.CreateComment(ctx, token, nc) })
}

func (c *CircuitBreakerClient) IssueToken(ctx context.Context, username, password string) (*TokenResponse, error) {
	return call(c, func() (*TokenResponse, error) { return c.client.IssueToken(ctx, username, password) })
}

func (c *CircuitBreakerClient) Register(ctx context.Context, username, email, password string) (*RegisterResponse, error) {
	return call(c, func() (*RegisterResponse, error) { return c.client.Register(ctx, username, email, password) })
}

func (c *CircuitBreakerClient) CurrentUser(ctx context.Context, token string) (*RawUser, error) {
	return call(c, func() (*RawUser, error) { return c.client.CurrentUser(ctx, token) })
}

func (c *CircuitBreakerClient) SiteSettings(ctx context.Context) (SiteSettings, error) {
	return call(c, func() (SiteSettings, error) { return c.client.SiteSettings(ctx) })
}

func (c *CircuitBreakerClient) Subscribe(ctx context.Context, email string) (string, error) {
	return call(c, func() (string, error) { return c.client.Subscribe(ctx, email) })
}
