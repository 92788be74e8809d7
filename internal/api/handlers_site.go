// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/oyonews/internal/cms"
	"github.com/tomtom215/oyonews/internal/logging"
	"github.com/tomtom215/oyonews/internal/validation"
)

const (
	msgSubscribeFailed = "Subscription failed. Please try again."
	msgSubscribed      = "Subscription successful!"

	maxJSONBody = 4 << 10
)

// Banner proxies the site-settings ACF fields. Its error body predates the
// API envelope and is kept for existing embeds.
func (h *Handler) Banner(w http.ResponseWriter, r *http.Request) {
	settings, err := h.content.Banner(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Error fetching banner")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(settings)
}

// Newsletter subscribes an email address.
func (h *Handler) Newsletter(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var form validation.NewsletterForm
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&form); err != nil {
		rw.BadRequest("Invalid request body")
		return
	}
	form.Normalize()
	if err := validation.ValidateStruct(&form); err != nil {
		if ve, ok := validation.AsRequestValidationError(err); ok {
			rw.ValidationError(ve.Error(), ve.Details())
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	msg, err := h.cms.Subscribe(r.Context(), form.Email)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Newsletter subscription failed")
		if ne, ok := cms.AsNetworkError(err); ok && ne.IsClientError() {
			text := h.views.text(ne.Message)
			if text == "" {
				text = msgSubscribeFailed
			}
			rw.Error(http.StatusBadRequest, ErrCodeBadRequest, text)
			return
		}
		rw.Error(http.StatusBadGateway, ErrCodeExternalServiceFail, msgSubscribeFailed)
		return
	}

	if msg = h.views.text(msg); msg == "" {
		msg = msgSubscribed
	}
	rw.Success(map[string]string{"message": msg})
}
