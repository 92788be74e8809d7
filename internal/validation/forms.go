// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package validation

import "strings"

// MsgSignupIncomplete is shown when the signup form fails validation.
const MsgSignupIncomplete = "Please complete all fields correctly."

// LoginForm is the login page form. The CMS accepts a username or an email
// address as login name.
type LoginForm struct {
	Username string `form:"username" validate:"notblank,max=254"`
	Password string `form:"password" validate:"required,max=256"`
}

// SignupForm is the signup page form.
type SignupForm struct {
	Username string `form:"username" validate:"notblank,max=60"`
	Email    string `form:"email" validate:"required,email,max=254"`
	Password string `form:"password" validate:"min=6,max=256"`
}

// CommentForm is a comment or reply submitted under a post.
type CommentForm struct {
	Content string `form:"content" validate:"max=5000"`
	Parent  int    `form:"parent" validate:"gte=0"`
}

// Empty reports a comment with nothing but whitespace, which is dropped
// without an error.
func (f *CommentForm) Empty() bool {
	return strings.TrimSpace(f.Content) == ""
}

// NewsletterForm is the newsletter subscription body.
type NewsletterForm struct {
	Email string `form:"email" json:"email" validate:"required,email,max=254"`
}

// SearchQuery is the search page query string.
type SearchQuery struct {
	Query    string `form:"q" validate:"max=200"`
	Category string `form:"category" validate:"omitempty,slug,max=200"`
}

// Normalize trims the inputs before validation.
func (f *LoginForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
}

// Normalize trims the inputs before validation.
func (f *SignupForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
}

// Normalize trims the inputs before validation.
func (f *NewsletterForm) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

// Normalize trims the inputs before validation.
func (q *SearchQuery) Normalize() {
	q.Query = strings.TrimSpace(q.Query)
	q.Category = strings.TrimSpace(q.Category)
}
