// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/oyonews/internal/auth"
	"github.com/tomtom215/oyonews/internal/cms"
	"github.com/tomtom215/oyonews/internal/logging"
	"github.com/tomtom215/oyonews/internal/models"
	"github.com/tomtom215/oyonews/internal/validation"
)

const (
	msgPostsFailed    = "Error fetching posts"
	msgCommentsFailed = "Failed to load comments."
	msgPostFailed     = "Failed to load the story. Please try again."
	msgCategoryFailed = "Failed to load the category. Please try again."
)

// Home renders the banner, the latest and trending lists and a new feed
// view. The four loads run concurrently and fail independently.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.Ctx(ctx)
	page := homePage{layoutData: h.layout(r, ""), BannerLink: bannerLink}

	var g errgroup.Group
	g.Go(func() error {
		posts, err := h.content.Latest(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to load latest posts")
			page.LatestError = msgPostsFailed
			return nil
		}
		page.Latest = posts
		return nil
	})
	g.Go(func() error {
		posts, err := h.content.Trending(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to load trending posts")
			page.TrendingError = msgPostsFailed
			return nil
		}
		page.Trending = posts
		return nil
	})
	g.Go(func() error {
		settings, err := h.content.Banner(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("No banner")
			return nil
		}
		page.BannerURL = bannerImageURL(settings)
		return nil
	})
	g.Go(func() error {
		view, err := h.feeds.Open(ctx)
		if view == nil {
			return nil
		}
		if err == nil {
			page.ViewID = view.ID
		}
		page.Feed = h.encodeFeed(page.ViewID, view.Controller().Snapshot())
		return nil
	})
	_ = g.Wait()

	h.views.Render(w, r, http.StatusOK, pageHome, page)
}

// Category renders the posts of one category.
func (h *Handler) Category(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	raw, err := h.cms.CategoryBySlug(ctx, slug)
	switch {
	case isNotFound(err):
		h.notFound(w, r)
		return
	case err != nil:
		logging.Ctx(ctx).Error().Err(err).Str("slug", slug).Msg("Failed to load category")
		h.renderError(w, r, http.StatusBadGateway, msgCategoryFailed)
		return
	}

	cat := models.NormalizeCategory(*raw)
	page := categoryPage{layoutData: h.layout(r, h.views.text(cat.Name)), Category: cat}
	posts, err := h.content.Posts(ctx, cms.PostQuery{CategoryID: cat.ID})
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int("category_id", cat.ID).Msg("Failed to load category posts")
		page.Error = msgPostsFailed
	}
	page.Posts = posts

	h.views.Render(w, r, http.StatusOK, pageCategory, page)
}

// Post renders a story with its related posts and comment threads.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	h.renderPost(w, r, http.StatusOK, "", "")
}

// renderPost renders the post page, optionally with a comment form error
// and the rejected draft.
func (h *Handler) renderPost(w http.ResponseWriter, r *http.Request, status int, commentErr, draft string) {
	ctx := r.Context()
	log := logging.Ctx(ctx)
	slug := chi.URLParam(r, "slug")

	raw, err := h.cms.PostBySlug(ctx, slug)
	switch {
	case isNotFound(err):
		h.notFound(w, r)
		return
	case err != nil:
		log.Error().Err(err).Str("slug", slug).Msg("Failed to load post")
		h.renderError(w, r, http.StatusBadGateway, msgPostFailed)
		return
	}

	post := models.NormalizePost(*raw)
	page := postPage{
		layoutData:   h.layout(r, h.views.text(post.TitleHTML)),
		Post:         post,
		CommentError: commentErr,
		CommentDraft: draft,
	}

	var g errgroup.Group
	if cid := post.PrimaryCategoryID(); cid != 0 {
		g.Go(func() error {
			raw, err := h.cms.ListPosts(ctx, cms.RelatedQuery(cid, post.ID, relatedListSize))
			if err != nil {
				log.Warn().Err(err).Int("post_id", post.ID).Msg("Failed to load related posts")
				return nil
			}
			page.Related = make([]models.Post, len(raw))
			for i := range raw {
				page.Related[i] = models.NormalizePostWith(raw[i], models.SmallPlaceholderImage)
			}
			return nil
		})
	}
	g.Go(func() error {
		raw, err := h.cms.ListComments(ctx, post.ID)
		if err != nil {
			log.Error().Err(err).Int("post_id", post.ID).Msg("Failed to load comments")
			page.CommentsError = msgCommentsFailed
			return nil
		}
		threads := models.BuildThreads(raw)
		page.Comments = commentNodes(threads, post.Slug, page.LoggedIn())
		page.CommentCount = models.CountComments(threads)
		return nil
	})
	_ = g.Wait()

	h.views.Render(w, r, status, pagePost, page)
}

// Search filters the newest posts by text and category.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := validation.SearchQuery{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}
	q.Normalize()

	page := searchPage{layoutData: h.layout(r, "Search"), Category: q.Category, AllSlug: models.AllCategories}
	page.Query = q.Query

	if err := validation.ValidateStruct(&q); err != nil {
		if ve, ok := validation.AsRequestValidationError(err); ok {
			page.FormErrors = ve.FieldMessages()
		}
		h.views.Render(w, r, http.StatusBadRequest, pageSearch, page)
		return
	}

	categoryID := 0
	if q.Category != "" && q.Category != models.AllCategories {
		id, err := h.categoryIDBySlug(ctx, q.Category)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Search category filter unavailable")
		}
		categoryID = id
	}

	posts, err := h.content.Posts(ctx, cms.PostQuery{PerPage: searchCorpus})
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to load search corpus")
		page.Error = msgPostsFailed
		h.views.Render(w, r, http.StatusOK, pageSearch, page)
		return
	}

	page.Searched = true
	page.Results = models.SearchPosts(posts, q.Query, categoryID)
	h.views.Render(w, r, http.StatusOK, pageSearch, page)
}

// sessionOf returns the request's session, if any.
func sessionOf(r *http.Request) (*auth.Session, bool) {
	return auth.SessionFromContext(r.Context())
}
