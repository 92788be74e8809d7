// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package cms

import (
	"context"
	"net/http"
)

// IssueToken exchanges credentials for a bearer token. username may be an
// email address.
func (c *Client) IssueToken(ctx context.Context, username, password string) (*TokenResponse, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var tok TokenResponse
	req := request{op: "issue_token", method: http.MethodPost, path: "/jwt-auth/v1/token", body: body}
	if err := c.do(ctx, req, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Register creates an account and returns the new user with a token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*RegisterResponse, error) {
	body := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{username, email, password}

	var out RegisterResponse
	req := request{op: "register", method: http.MethodPost, path: "/oyonews/v1/register", body: body}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser returns the owner of token.
func (c *Client) CurrentUser(ctx context.Context, token string) (*RawUser, error) {
	var u RawUser
	req := request{op: "current_user", method: http.MethodGet, path: "/wp/v2/users/me", token: token}
	if err := c.do(ctx, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Subscribe adds email to the newsletter and returns the CMS message.
func (c *Client) Subscribe(ctx context.Context, email string) (string, error) {
	body := struct {
		Email string `json:"email"`
	}{email}

	var out struct {
		Message string `json:"message"`
	}
	req := request{op: "subscribe", method: http.MethodPost, path: "/newsletter/subscribe", body: body}
	if err := c.do(ctx, req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
