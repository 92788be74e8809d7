// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package cms

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/oyonews/internal/config"
	"github.com/tomtom215/oyonews/internal/metrics"
)

// ContentAPI is everything OyoNews asks of the CMS.
// Both Client and CircuitBreakerClient implement it.
type ContentAPI interface {
	ListPosts(ctx context.Context, q PostQuery) ([]RawPost, error)
	ListCategories(ctx context.Context) ([]RawCategory, error)
	CategoryBySlug(ctx context.Context, slug string) (*RawCategory, error)
	PostBySlug(ctx context.Context, slug string) (*RawPost, error)
	ListComments(ctx context.Context, postID int) ([]RawComment, error)
	CreateComment(ctx context.Context, token string, c NewComment) (*RawComment, error)
	IssueToken(ctx context.Context, username, password string) (*TokenResponse, error)
	Register(ctx context.Context, username, email, password string) (*RegisterResponse, error)
	CurrentUser(ctx context.Context, token string) (*RawUser, error)
	SiteSettings(ctx context.Context) (SiteSettings, error)
	Subscribe(ctx context.Context, email string) (string, error)
}

var _ ContentAPI = (*Client)(nil)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client calls the CMS REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a client for cfg.BaseURL, the wp-json root.
func NewClient(cfg *config.CMSConfig) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	}
}

// BaseURL returns the wp-json root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one CMS call.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   interface{}
	token  string
}

// do performs req and decodes a 2xx JSON answer into out (which may be nil).
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &NetworkError{Op: req.op, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader = http.NoBody
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("cms %s: encode request: %w", req.op, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("cms %s: create request: %w", req.op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.RecordCMSRequest(req.op, 0, time.Since(start))
		return &NetworkError{Op: req.op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordCMSRequest(req.op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(req.op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: req.op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// statusError turns a non-2xx response into a *NetworkError, keeping the
// CMS error code and message when the body carries them.
func statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	ne := &NetworkError{Op: op, StatusCode: resp.StatusCode}

	var wp wpError
	if err := json.Unmarshal(raw, &wp); err == nil && wp.Message != "" {
		ne.Code = wp.Code
		ne.Message = wp.Message
		return ne
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) <= 200 {
		ne.Message = text
	}
	return ne
}
