// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package auth

import (
	"errors"
	"fmt"
)

// Messages shown next to the login and signup forms.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgProfileFailed      = "Failed to fetch user info"
	MsgRegistrationFailed = "Registration failed"
	MsgLoginRequired      = "You must be logged in to comment."
)

// ErrNoSession is returned when an operation needs a logged-in reader.
var ErrNoSession = errors.New("no active session")

// AuthError is an authentication failure with a message fit for the reader.
type AuthError struct {
	Op      string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text to render next to the form.
func UserMessage(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "An unexpected error occurred"
}
