// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package cms

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned by single-item lookups that match nothing.
var ErrNotFound = errors.New("cms: not found")

// NetworkError reports a CMS call that failed in transport or returned a
// non-2xx status. StatusCode is 0 when no response arrived.
type NetworkError struct {
	Op         string
	StatusCode int
	// Code and Message come from the CMS error body when it has one.
	Code    string
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("cms %s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("cms %s: status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("cms %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("cms %s: status %d", e.Op, e.StatusCode)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether the CMS rejected the request itself, as
// opposed to being unreachable or failing internally.
func (e *NetworkError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsUnauthorized reports a 401 or 403 answer.
func (e *NetworkError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// AsNetworkError unwraps err into a *NetworkError.
func AsNetworkError(err error) (*NetworkError, bool) {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne, true
	}
	return nil, false
}
