// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/oyonews/internal/auth"
	"github.com/tomtom215/oyonews/internal/logging"
	"github.com/tomtom215/oyonews/internal/validation"
)

// LoginPage renders the login form. Signed-in readers go home.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessionOf(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.views.Render(w, r, http.StatusOK, pageLogin, authPage{layoutData: h.layout(r, "Log in")})
}

// Login exchanges the submitted credentials for a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	form := validation.LoginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	form.Normalize()
	page := authPage{layoutData: h.layout(r, "Log in"), Username: form.Username}

	if err := validation.ValidateStruct(&form); err != nil {
		if ve, ok := validation.AsRequestValidationError(err); ok {
			page.Fields = ve.FieldMessages()
		}
		h.views.Render(w, r, http.StatusBadRequest, pageLogin, page)
		return
	}

	session, err := h.auth.Login(r.Context(), form.Username, form.Password, clientIP(r))
	if err != nil {
		page.Error = auth.UserMessage(err)
		h.views.Render(w, r, authFailureStatus(err, http.StatusUnauthorized), pageLogin, page)
		return
	}
	h.establish(w, r, session)
}

// SignupPage renders the signup form.
func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessionOf(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.views.Render(w, r, http.StatusOK, pageSignup, authPage{layoutData: h.layout(r, "Sign up")})
}

// Signup registers an account and signs it in.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	form := validation.SignupForm{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	form.Normalize()
	page := authPage{layoutData: h.layout(r, "Sign up"), Username: form.Username, Email: form.Email}

	if err := validation.ValidateStruct(&form); err != nil {
		page.Error = validation.MsgSignupIncomplete
		if ve, ok := validation.AsRequestValidationError(err); ok {
			page.Fields = ve.FieldMessages()
		}
		h.views.Render(w, r, http.StatusBadRequest, pageSignup, page)
		return
	}

	session, err := h.auth.Signup(r.Context(), form.Username, form.Email, form.Password, clientIP(r))
	if err != nil {
		page.Error = auth.UserMessage(err)
		h.views.Render(w, r, authFailureStatus(err, http.StatusBadRequest), pageSignup, page)
		return
	}
	h.establish(w, r, session)
}

// Logout destroys the session and goes home.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to destroy session")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// establish sets the session cookie and sends administrators to the CMS.
func (h *Handler) establish(w http.ResponseWriter, r *http.Request, session *auth.Session) {
	if err := h.sessions.Establish(w, r, session); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to set session cookie")
		h.renderError(w, r, http.StatusInternalServerError, auth.UserMessage(err))
		return
	}

	target := "/"
	if session.IsAdmin() && h.cfg.CMS.AdminURL != "" {
		target = h.cfg.CMS.AdminURL
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// authFailureStatus returns status for a rejected form and 500 for anything
// that is not an AuthError.
func authFailureStatus(err error, status int) int {
	var ae *auth.AuthError
	if errors.As(err, &ae) {
		return status
	}
	return http.StatusInternalServerError
}
