// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package cms

import (
	"errors"
	"strings"
	"testing"
)

func checkIntEqual(t *testing.T, field string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", field, want, got)
	}
}

func checkStringEqual(t *testing.T, field, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %q, got %q", field, want, got)
	}
}

func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func checkNetworkError(t *testing.T, err error, wantStatus int) *NetworkError {
	t.Helper()
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *NetworkError, got %T (%v)", err, err)
	}
	if ne.StatusCode != wantStatus {
		t.Errorf("StatusCode: expected %d, got %d", wantStatus, ne.StatusCode)
	}
	return ne
}

func checkErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("expected error containing %q, got %q", substr, err.Error())
	}
}
