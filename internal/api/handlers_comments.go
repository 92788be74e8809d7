// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/oyonews/internal/auth"
	"github.com/tomtom215/oyonews/internal/cms"
	"github.com/tomtom215/oyonews/internal/logging"
	"github.com/tomtom215/oyonews/internal/validation"
)

const msgCommentFailed = "Failed to post comment."

// PostComment submits a comment or reply as the signed-in reader. An empty
// comment is dropped and the reader is sent back to the thread.
func (h *Handler) PostComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	back := "/" + slug + "#comments"

	session, ok := sessionOf(r)
	if !ok {
		err := &auth.AuthError{Op: "comment", Message: auth.MsgLoginRequired, Err: auth.ErrNoSession}
		h.renderPost(w, r, http.StatusUnauthorized, auth.UserMessage(err), "")
		return
	}

	form := validation.CommentForm{Content: r.PostFormValue("content")}
	if p := r.PostFormValue("parent"); p != "" {
		parent, err := strconv.Atoi(p)
		if err != nil {
			parent = -1
		}
		form.Parent = parent
	}
	if form.Empty() {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	if err := validation.ValidateStruct(&form); err != nil {
		h.renderPost(w, r, http.StatusBadRequest, err.Error(), form.Content)
		return
	}

	raw, err := h.cms.PostBySlug(ctx, slug)
	switch {
	case isNotFound(err):
		h.notFound(w, r)
		return
	case err != nil:
		logging.Ctx(ctx).Error().Err(err).Str("slug", slug).Msg("Failed to load post for comment")
		h.renderError(w, r, http.StatusBadGateway, msgPostFailed)
		return
	}

	_, err = h.cms.CreateComment(ctx, session.Token, cms.NewComment{
		Post:       raw.ID,
		Content:    form.Content,
		Parent:     form.Parent,
		AuthorName: session.Name,
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("post_id", raw.ID).Msg("Comment rejected")
		status, msg := http.StatusBadGateway, msgCommentFailed
		if ne, ok := cms.AsNetworkError(err); ok && ne.IsClientError() {
			status = http.StatusBadRequest
			if text := h.views.text(ne.Message); text != "" {
				msg = text
			}
		}
		h.renderPost(w, r, status, msg, form.Content)
		return
	}

	http.Redirect(w, r, back, http.StatusSeeOther)
}
