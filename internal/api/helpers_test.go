// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/oyonews/internal/auth"
	"github.com/tomtom215/oyonews/internal/cms"
	"github.com/tomtom215/oyonews/internal/config"
	"github.com/tomtom215/oyonews/internal/feed"
)

const (
	testAdminURL = "https://cms.example/wp-admin"
	testSecret   = "api-test-secret-0123456789abcdef0123"
)

type fakeUser struct {
	password string
	user     cms.RawUser
}

// fakeCMS is an in-memory ContentAPI. Category 1 holds posts 1001-1025 and
// category 2 holds posts 2001-2003.
type fakeCMS struct {
	mu         sync.Mutex
	categories []cms.RawCategory
	posts      []cms.RawPost
	comments   map[int][]cms.RawComment
	created    []cms.NewComment
	users      map[string]*fakeUser
	tokens     map[string]cms.RawUser
	banner     cms.SiteSettings
	subscribed []string
	nextUserID int

	failCategories bool
	failPosts      bool
	failBanner     bool
	subscribeErr   error
	postCalls      int
}

func newFakeCMS() *fakeCMS {
	f := &fakeCMS{
		categories: []cms.RawCategory{
			{ID: 2, Name: "Sports", Slug: "sports", Count: 3},
			{ID: 1, Name: "News &amp; Politics", Slug: "news", Count: 25},
		},
		comments:   make(map[int][]cms.RawComment),
		users:      make(map[string]*fakeUser),
		tokens:     make(map[string]cms.RawUser),
		banner:     cms.SiteSettings(`{"top_banner":{"url":"https://cdn.example/banner.png"}}`),
		nextUserID: 100,
	}
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	add := func(id, cat int) {
		f.posts = append(f.posts, cms.RawPost{
			ID:         id,
			Slug:       fmt.Sprintf("story-%d", id),
			Date:       base.Add(time.Duration(id) * time.Minute).Format("2006-01-02T15:04:05"),
			Title:      cms.Rendered{Rendered: fmt.Sprintf("Story %d", id)},
			Excerpt:    cms.Rendered{Rendered: fmt.Sprintf("<p>Excerpt %d</p>", id)},
			Content:    cms.Rendered{Rendered: fmt.Sprintf("<p>Body %d</p><script>alert(%d)</script>", id, id)},
			Categories: []int{cat},
		})
	}
	for id := 1001; id <= 1025; id++ {
		add(id, 1)
	}
	for id := 2001; id <= 2003; id++ {
		add(id, 2)
	}

	f.addUser("reader", "reader@example.com", "secret1", "subscriber")
	f.addUser("boss", "boss@example.com", "secret2", "administrator")
	return f
}

func (f *fakeCMS) addUser(username, email, password, role string) cms.RawUser {
	f.nextUserID++
	u := cms.RawUser{ID: f.nextUserID, Name: strings.ToUpper(username[:1]) + username[1:], Username: username, Email: email, Roles: []string{role}}
	fu := &fakeUser{password: password, user: u}
	f.users[username] = fu
	f.users[email] = fu
	return u
}

func serverError(op string) error {
	return &cms.NetworkError{Op: op, StatusCode: http.StatusInternalServerError, Message: "boom"}
}

func (f *fakeCMS) ListPosts(_ context.Context, q cms.PostQuery) ([]cms.RawPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postCalls++
	if f.failPosts {
		return nil, serverError("list_posts")
	}

	var matched []cms.RawPost
	for _, p := range f.posts {
		if q.CategoryID != 0 && p.Categories[0] != q.CategoryID {
			continue
		}
		excluded := false
		for _, id := range q.Exclude {
			excluded = excluded || id == p.ID
		}
		if !excluded {
			matched = append(matched, p)
		}
	}

	page, per := q.Page, q.PerPage
	if page < 1 {
		page = 1
	}
	if per < 1 {
		per = 10
	}
	start := (page - 1) * per
	if start >= len(matched) {
		return []cms.RawPost{}, nil
	}
	end := start + per
	if end > len(matched) {
		end = len(matched)
	}
	return append([]cms.RawPost(nil), matched[start:end]...), nil
}

func (f *fakeCMS) ListCategories(context.Context) ([]cms.RawCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCategories {
		return nil, serverError("list_categories")
	}
	return append([]cms.RawCategory(nil), f.categories...), nil
}

func (f *fakeCMS) CategoryBySlug(_ context.Context, slug string) (*cms.RawCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.Slug == slug {
			c := c
			return &c, nil
		}
	}
	return nil, cms.ErrNotFound
}

func (f *fakeCMS) PostBySlug(_ context.Context, slug string) (*cms.RawPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == slug {
			p := p
			return &p, nil
		}
	}
	return nil, cms.ErrNotFound
}

func (f *fakeCMS) ListComments(_ context.Context, postID int) ([]cms.RawComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]cms.RawComment(nil), f.comments[postID]...), nil
}

func (f *fakeCMS) CreateComment(_ context.Context, token string, nc cms.NewComment) (*cms.RawComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tokens[token]; !ok {
		return nil, &cms.NetworkError{Op: "create_comment", StatusCode: http.StatusUnauthorized, Message: "Sorry, you are not allowed to do that."}
	}
	f.created = append(f.created, nc)
	c := cms.RawComment{ID: 5000 + len(f.created), Post: nc.Post, Parent: nc.Parent, AuthorName: nc.AuthorName, Content: cms.Rendered{Rendered: nc.Content}}
	f.comments[nc.Post] = append(f.comments[nc.Post], c)
	return &c, nil
}

func (f *fakeCMS) IssueToken(_ context.Context, username, password string) (*cms.TokenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok || u.password != password {
		return nil, &cms.NetworkError{Op: "issue_token", StatusCode: http.StatusForbidden, Message: "<strong>Error:</strong> Bad password"}
	}
	token := "tok-" + u.user.Username
	f.tokens[token] = u.user
	return &cms.TokenResponse{Token: token, UserEmail: u.user.Email}, nil
}

func (f *fakeCMS) Register(_ context.Context, username, email, password string) (*cms.RegisterResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, taken := f.users[username]; taken {
		return nil, &cms.NetworkError{Op: "register", StatusCode: http.StatusBadRequest, Message: "Username already exists."}
	}
	u := f.addUser(username, email, password, "subscriber")
	return &cms.RegisterResponse{User: &u, Token: "registered"}, nil
}

func (f *fakeCMS) CurrentUser(_ context.Context, token string) (*cms.RawUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.tokens[token]
	if !ok {
		return nil, &cms.NetworkError{Op: "current_user", StatusCode: http.StatusUnauthorized}
	}
	return &u, nil
}

func (f *fakeCMS) SiteSettings(context.Context) (cms.SiteSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failBanner {
		return nil, serverError("site_settings")
	}
	return f.banner, nil
}

func (f *fakeCMS) Subscribe(_ context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subscribeErr != nil {
		return "", f.subscribeErr
	}
	f.subscribed = append(f.subscribed, email)
	return "Thanks for subscribing!", nil
}

func (f *fakeCMS) set(fn func(f *fakeCMS)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

type staticReadiness string

func (s staticReadiness) State() string { return string(s) }

type testEnv struct {
	cms     *fakeCMS
	handler *Handler
	feeds   *feed.Registry
	store   *auth.MemorySessionStore
	server  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, newFakeCMS(), nil)
}

func newTestEnvWith(t *testing.T, fake *fakeCMS, ready ReadinessChecker) *testEnv {
	t.Helper()

	cfg := &config.Config{
		CMS:   config.CMSConfig{AdminURL: testAdminURL},
		Feed:  config.FeedConfig{TopPerPage: 10, PerPage: 2, MaxConcurrentFetches: 4, ViewTTL: time.Minute},
		Cache: config.CacheConfig{TTL: time.Minute, BannerTTL: time.Minute},
		Security: config.SecurityConfig{
			JWTSecret:         testSecret,
			SessionTimeout:    time.Hour,
			RateLimitDisabled: true,
		},
	}

	store := auth.NewMemorySessionStore()
	svc := auth.NewService(fake, store, nil, &cfg.Security)
	cookies, err := auth.NewCookieManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewCookieManager: %v", err)
	}
	sessions := auth.NewMiddleware(svc, cookies)

	feeds := feed.NewRegistry(fake, feed.Options{TopPerPage: 10, PerPage: 2, MaxConcurrent: 4}, time.Minute)
	t.Cleanup(feeds.CloseAll)

	h, err := NewHandler(HandlerDeps{Config: cfg, CMS: fake, Feeds: feeds, Auth: svc, Sessions: sessions, Ready: ready})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	router := NewRouter(h, sessions, ChiMiddlewareConfigFromSecurity(&cfg.Security))

	return &testEnv{cms: fake, handler: h, feeds: feeds, store: store, server: router.SetupChi()}
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postForm(t *testing.T, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

// login signs username in and returns the session cookie.
func (e *testEnv) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rec := e.postForm(t, "/login", url.Values{"username": {username}, "password": {password}})
	assertStatus(t, rec, http.StatusSeeOther)
	return sessionCookie(t, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "oyonews_session" && c.Value != "" {
			return c
		}
	}
	t.Fatalf("no session cookie in %v", rec.Result().Cookies())
	return nil
}

var viewIDPattern = regexp.MustCompile(`data-view-id="([^"]+)"`)

func viewIDFrom(t *testing.T, body string) string {
	t.Helper()
	m := viewIDPattern.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no feed view id in page")
	}
	return m[1]
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q", want)
		}
	}
}

func assertNotContains(t *testing.T, body string, unwanted ...string) {
	t.Helper()
	for _, s := range unwanted {
		if strings.Contains(body, s) {
			t.Errorf("body unexpectedly contains %q", s)
		}
	}
}
