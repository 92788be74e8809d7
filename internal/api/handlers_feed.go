// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/oyonews/internal/feed"
	"github.com/tomtom215/oyonews/internal/logging"
	ws "github.com/tomtom215/oyonews/internal/websocket"
)

const msgViewNotFound = "Feed view not found. Reload the page."

// feedPayload is a feed snapshot as pages and scripts see it. Titles and
// excerpts are plain text.
type feedPayload struct {
	ViewID             string        `json:"view_id,omitempty"`
	Version            uint64        `json:"version"`
	Loading            bool          `json:"loading"`
	Error              string        `json:"error,omitempty"`
	SentinelCategoryID int           `json:"sentinel_category_id"`
	SentinelPostID     int           `json:"sentinel_post_id"`
	TotalPosts         int           `json:"total_posts"`
	Sections           []feedSection `json:"sections"`
}

type feedSection struct {
	CategoryID int        `json:"category_id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	Rank       int        `json:"rank"`
	Page       int        `json:"page"`
	Exhausted  bool       `json:"exhausted"`
	Posts      []feedPost `json:"posts"`
}

type feedPost struct {
	ID           int    `json:"id"`
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Excerpt      string `json:"excerpt"`
	Image        string `json:"image"`
	Author       string `json:"author"`
	Date         string `json:"date"`
	CommentCount int    `json:"comment_count"`
	Sentinel     bool   `json:"sentinel,omitempty"`
}

type feedMoreResponse struct {
	Started bool        `json:"started"`
	Feed    feedPayload `json:"feed"`
}

// encodeFeed converts a snapshot and marks the sentinel post.
func (h *Handler) encodeFeed(viewID string, s feed.Snapshot) feedPayload {
	out := feedPayload{
		ViewID:             viewID,
		Version:            s.Version,
		Loading:            s.Loading,
		Error:              s.Error,
		SentinelCategoryID: s.SentinelCategoryID,
		SentinelPostID:     s.SentinelPostID,
		TotalPosts:         s.TotalPosts(),
		Sections:           make([]feedSection, len(s.Sections)),
	}
	for i, sec := range s.Sections {
		fs := feedSection{
			CategoryID: sec.Category.ID,
			Name:       h.views.text(sec.Category.Name),
			Slug:       sec.Category.Slug,
			Rank:       sec.Rank,
			Page:       sec.Page,
			Exhausted:  sec.Exhausted,
			Posts:      make([]feedPost, len(sec.Posts)),
		}
		for j, p := range sec.Posts {
			fs.Posts[j] = feedPost{
				ID:           p.ID,
				Slug:         p.Slug,
				Title:        h.views.text(p.TitleHTML),
				Excerpt:      h.views.text(p.ExcerptHTML),
				Image:        p.FeaturedImageURL,
				Author:       p.AuthorName,
				Date:         formatDate(p.PublishedAt),
				CommentCount: p.CommentCount,
				Sentinel:     sec.Category.ID == s.SentinelCategoryID && p.ID == s.SentinelPostID,
			}
		}
		out.Sections[i] = fs
	}
	return out
}

// FeedMore reports the sentinel as visible and returns the grown feed. A
// pass already in flight makes this a no-op with started=false.
func (h *Handler) FeedMore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	view, ok := h.feeds.Get(id)
	if !ok {
		NewResponseWriter(w, r).NotFound(msgViewNotFound)
		return
	}

	ctrl := view.Controller()
	started := ctrl.OnSentinelVisible(r.Context())
	WriteSuccess(w, r, feedMoreResponse{Started: started, Feed: h.encodeFeed(id, ctrl.Snapshot())})
}

// FeedSocket upgrades to a WebSocket that carries sentinel events in and
// snapshots out. Closing the socket tears the view down.
func (h *Handler) FeedSocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	view, ok := h.feeds.Get(id)
	if !ok {
		NewResponseWriter(w, r).NotFound(msgViewNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	encode := func(s feed.Snapshot) (interface{}, error) {
		return h.encodeFeed(id, s), nil
	}
	client := ws.NewClient(conn, view, encode, func() {
		h.feeds.Close(id)
	})
	client.Run(r.Context())
}

// FeedClose tears a view down.
func (h *Handler) FeedClose(w http.ResponseWriter, r *http.Request) {
	if !h.feeds.Close(chi.URLParam(r, "viewID")) {
		NewResponseWriter(w, r).NotFound(msgViewNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
