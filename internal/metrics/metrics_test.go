// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/category/{slug}", "200"))

	RecordAPIRequest("GET", "/category/{slug}", "200", 25*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/category/{slug}", "200"))
	if after != before+1 {
		t.Errorf("requests_total = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)

	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("active requests = %v, want %v", got, base+1)
	}
	TrackActiveRequest(false)
}

func TestRecordCMSRequest_Outcomes(t *testing.T) {
	tests := []struct {
		status  int
		outcome string
	}{
		{200, "ok"},
		{201, "ok"},
		{0, "transport_error"},
		{404, "4xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		c := CMSRequestsTotal.WithLabelValues("list_posts", tt.outcome)
		before := testutil.ToFloat64(c)
		RecordCMSRequest("list_posts", tt.status, time.Millisecond)
		if got := testutil.ToFloat64(c); got != before+1 {
			t.Errorf("status %d: %s counter = %v, want %v", tt.status, tt.outcome, got, before+1)
		}
	}
}

func TestRecordFeedPass(t *testing.T) {
	ok := FeedPassesTotal.WithLabelValues("ok")
	skipped := FeedPassesTotal.WithLabelValues("skipped")
	okBefore := testutil.ToFloat64(ok)
	skippedBefore := testutil.ToFloat64(skipped)

	RecordFeedPass("ok", 100*time.Millisecond)
	RecordFeedPass("skipped", 0)

	if got := testutil.ToFloat64(ok); got != okBefore+1 {
		t.Errorf("ok passes = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(skipped); got != skippedBefore+1 {
		t.Errorf("skipped passes = %v, want %v", got, skippedBefore+1)
	}
}

func TestRecordAuthAttempt(t *testing.T) {
	c := AuthAttempts.WithLabelValues("login", "failure")
	before := testutil.ToFloat64(c)

	RecordAuthAttempt("login", false)

	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("login failures = %v, want %v", got, before+1)
	}
}

func TestMetricsLint(t *testing.T) {
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		if strings.HasPrefix(p.Metric, "oyonews_") {
			t.Errorf("lint problem on %s: %s", p.Metric, p.Text)
		}
	}
}
