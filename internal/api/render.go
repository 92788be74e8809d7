// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package api

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/tomtom215/oyonews/internal/auth"
	"github.com/tomtom215/oyonews/internal/logging"
	"github.com/tomtom215/oyonews/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	pageHome     = "home.html"
	pageCategory = "category.html"
	pagePost     = "post.html"
	pageSearch   = "search.html"
	pageLogin    = "login.html"
	pageSignup   = "signup.html"
	pageError    = "error.html"
)

var pageNames = []string{pageHome, pageCategory, pagePost, pageSearch, pageLogin, pageSignup, pageError}

// Renderer executes the page templates. CMS HTML passes through a UGC
// sanitizer before it is trusted.
type Renderer struct {
	pages  map[string]*template.Template
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		pages:  make(map[string]*template.Template, len(pageNames)),
		ugc:    bluemonday.UGCPolicy(),
		strict: bluemonday.StrictPolicy(),
	}

	funcs := template.FuncMap{
		"cmsHTML": r.cmsHTML,
		"text":    r.text,
		"date":    formatDate,
		"add":     func(a, b int) int { return a + b },
	}

	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/partials.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// cmsHTML sanitizes CMS markup for direct output.
func (r *Renderer) cmsHTML(s string) template.HTML {
	return template.HTML(r.ugc.Sanitize(s)) //nolint:gosec // G203: sanitized by the UGC policy
}

// text flattens CMS markup to plain text, for titles in attributes and
// headings.
func (r *Renderer) text(s string) string {
	return strings.TrimSpace(html.UnescapeString(r.strict.Sanitize(s)))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// Render writes page with status. Output is buffered so a template error
// still produces a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, page string, data interface{}) {
	t, ok := r.pages[page]
	if !ok {
		logging.Ctx(req.Context()).Error().Str("page", page).Msg("Unknown page template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.Ctx(req.Context()).Error().Err(err).Str("page", page).Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// layoutData is embedded in every page.
type layoutData struct {
	Title      string
	Session    *auth.Session
	Categories []models.Category
	Query      string
}

// LoggedIn reports whether a reader is signed in.
func (l layoutData) LoggedIn() bool {
	return l.Session != nil
}

type errorPage struct {
	layoutData
	Status  int
	Message string
}

type homePage struct {
	layoutData
	BannerURL     string
	BannerLink    string
	Latest        []models.Post
	LatestError   string
	Trending      []models.Post
	TrendingError string
	ViewID        string
	Feed          feedPayload
}

type categoryPage struct {
	layoutData
	Category models.Category
	Posts    []models.Post
	Error    string
}

type postPage struct {
	layoutData
	Post          models.Post
	Related       []models.Post
	Comments      []commentNode
	CommentCount  int
	CommentsError string
	CommentError  string
	CommentDraft  string
}

type searchPage struct {
	layoutData
	Category   string
	Results    []models.Post
	Searched   bool
	Error      string
	AllSlug    string
	FormErrors map[string]string
}

type authPage struct {
	layoutData
	Username string
	Email    string
	Error    string
	Fields   map[string]string
}

// commentNode is a comment with what its reply form needs.
type commentNode struct {
	Comment  *models.Comment
	Slug     string
	CanReply bool
	Replies  []commentNode
}

func commentNodes(threads []*models.Comment, slug string, canReply bool) []commentNode {
	out := make([]commentNode, len(threads))
	for i, c := range threads {
		out[i] = commentNode{
			Comment:  c,
			Slug:     slug,
			CanReply: canReply,
			Replies:  commentNodes(c.Replies, slug, canReply),
		}
	}
	return out
}
