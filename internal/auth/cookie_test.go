// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/oyonews/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCookies(t *testing.T) *CookieManager {
	t.Helper()
	m, err := NewCookieManager(&config.SecurityConfig{JWTSecret: testSecret, CookieName: "sid"})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNewCookieManager_RequiresSecret(t *testing.T) {
	t.Parallel()
	if _, err := NewCookieManager(&config.SecurityConfig{}); err == nil {
		t.Error("empty secret accepted")
	}
}

func TestCookieManager_SignParse(t *testing.T) {
	t.Parallel()

	m := newTestCookies(t)
	signed, err := m.Sign("abc", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	id, err := m.Parse(signed)
	if err != nil || id != "abc" {
		t.Errorf("Parse() = %q, %v", id, err)
	}
}

func TestCookieManager_ParseRejects(t *testing.T) {
	t.Parallel()

	m := newTestCookies(t)
	expired, _ := m.Sign("abc", time.Now().Add(-time.Minute))

	other, _ := NewCookieManager(&config.SecurityConfig{JWTSecret: strings.Repeat("z", 32)})
	forged, _ := other.Sign("abc", time.Now().Add(time.Hour))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &CookieClaims{SessionID: "abc"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	noSID, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &CookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: cookieIssuer},
	}).SignedString([]byte(testSecret))

	tests := map[string]string{
		"expired":   expired,
		"forged":    forged,
		"alg none":  unsigned,
		"no sid":    noSID,
		"malformed": "a.b.c",
	}
	for name, value := range tests {
		if _, err := m.Parse(value); err == nil {
			t.Errorf("%s: Parse() accepted the cookie", name)
		}
	}
}

func TestCookieManager_SetReadClear(t *testing.T) {
	t.Parallel()

	m := newTestCookies(t)
	rec := httptest.NewRecorder()
	if err := m.Set(rec, &Session{ID: "abc", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := m.Read(req); err != ErrNoCookie {
		t.Errorf("Read() without cookie error = %v", err)
	}
	req.AddCookie(cookies[0])
	if id, err := m.Read(req); err != nil || id != "abc" {
		t.Errorf("Read() = %q, %v", id, err)
	}

	rec = httptest.NewRecorder()
	m.Clear(rec)
	if c := rec.Result().Cookies(); len(c) != 1 || c[0].MaxAge >= 0 {
		t.Errorf("Clear() cookies = %+v", c)
	}
}
