// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/oyonews/internal/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFromSecurity(&config.SecurityConfig{
		CORSOrigins:     []string{"https://oyonews.ng"},
		RateLimitReqs:   7,
		RateLimitWindow: 30 * time.Second,
	})
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://oyonews.ng" {
		t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRequests != 7 || cfg.RateLimitWindow != 30*time.Second {
		t.Errorf("limit = %d per %v", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	def := ChiMiddlewareConfigFromSecurity(nil)
	if def.RateLimitRequests != 100 || def.RateLimitWindow != time.Minute {
		t.Errorf("defaults = %d per %v", def.RateLimitRequests, def.RateLimitWindow)
	}
}

func TestRateLimit_RejectsWithEnvelope(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	h := NewChiMiddleware(cfg).RateLimit()(okHandler)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		h.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/", nil))
		if i < 2 && last.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, last.Code)
		}
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", last.Code)
	}

	var resp APIResponse
	if err := json.Unmarshal(last.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.RateLimitDisabled = true
	h := NewChiMiddleware(cfg).RateLimitCustom(RateLimitAuthForms)(okHandler)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		forwarded string
		wantHSTS  bool
	}{
		{"plain http", "", false},
		{"behind TLS proxy", "https", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-Proto", tt.forwarded)
			}
			rec := httptest.NewRecorder()
			SecurityHeaders()(okHandler).ServeHTTP(rec, req)

			if rec.Header().Get("X-Content-Type-Options") != "nosniff" || rec.Header().Get("X-Frame-Options") != "DENY" {
				t.Errorf("headers = %v", rec.Header())
			}
			if got := rec.Header().Get("Strict-Transport-Security") != ""; got != tt.wantHSTS {
				t.Errorf("HSTS present = %v, want %v", got, tt.wantHSTS)
			}
		})
	}
}

func TestAPIRoutesAreUncacheable(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/banner", nil)
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q", got)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}
