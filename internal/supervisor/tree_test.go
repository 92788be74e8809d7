// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingService runs until canceled, failing the first failures runs.
type countingService struct {
	name     string
	failures int32
	starts   atomic.Int32
	started  chan struct{}
}

func newCountingService(name string, failures int32) *countingService {
	return &countingService{name: name, failures: failures, started: make(chan struct{}, 16)}
}

func (s *countingService) Serve(ctx context.Context) error {
	n := s.starts.Add(1)
	select {
	case s.started <- struct{}{}:
	default:
	}
	if n <= s.failures {
		return errors.New("simulated crash")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *countingService) String() string { return s.name }

func waitStarts(t *testing.T, s *countingService, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.started:
		case <-time.After(2 * time.Second):
			t.Fatalf("%s started %d times, want %d", s.name, s.starts.Load(), n)
		}
	}
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{FailureBackoff: time.Second})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}
	want := DefaultTreeConfig()
	want.FailureBackoff = time.Second
	if tree.config != want {
		t.Errorf("config = %+v, want %+v", tree.config, want)
	}
	if tree.Root() == nil {
		t.Error("nil root")
	}
}

func TestSupervisorTree_RunsBothLayers(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}
	janitor := newCountingService("janitor", 0)
	server := newCountingService("http", 0)
	tree.AddMaintenanceService(janitor)
	tree.AddAPIService(server)

	ctx, cancel := context.WithCancel(context.Background())
	done := tree.ServeBackground(ctx)
	waitStarts(t, janitor, 1)
	waitStarts(t, server, 1)
	cancel()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not stop")
	}
	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) != 0 {
		t.Errorf("unstopped services: %v", report)
	}
}

func TestSupervisorTree_RestartIsolatedToLayer(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}
	janitor := newCountingService("janitor", 2)
	server := newCountingService("http", 0)
	tree.AddMaintenanceService(janitor)
	tree.AddAPIService(server)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := tree.ServeBackground(ctx)

	waitStarts(t, janitor, 3)
	waitStarts(t, server, 1)
	if n := server.starts.Load(); n != 1 {
		t.Errorf("http server restarted %d times by a janitor crash", n-1)
	}

	cancel()
	<-done
}
