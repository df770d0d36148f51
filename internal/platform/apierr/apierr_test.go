package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")
	cases := []struct {
		name       string
		err        *Error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: Validation("missing_fields", cause), wantStatus: http.StatusBadRequest, wantCode: "missing_fields"},
		{name: "auth", err: Auth("invalid_token", cause), wantStatus: http.StatusUnauthorized, wantCode: "invalid_token"},
		{name: "not_found", err: NotFound("task_not_found", cause), wantStatus: http.StatusNotFound, wantCode: "task_not_found"},
		{name: "internal", err: Internal(cause), wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
		{name: "new", err: New(http.StatusConflict, "conflict", cause), wantStatus: http.StatusConflict, wantCode: "conflict"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Status != tc.wantStatus || tc.err.Code != tc.wantCode {
				t.Fatalf("status=%d code=%q, want %d %q", tc.err.Status, tc.err.Code, tc.wantStatus, tc.wantCode)
			}
			if !errors.Is(tc.err, cause) {
				t.Fatalf("constructor must wrap the cause")
			}
		})
	}
}

func TestStatusOfAndCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("fetch user: %w", NotFound("user_not_found", fmt.Errorf("no row")))
	if StatusOf(wrapped) != http.StatusNotFound || CodeOf(wrapped) != "user_not_found" {
		t.Fatalf("wrapped error resolved to %d %q", StatusOf(wrapped), CodeOf(wrapped))
	}

	plain := fmt.Errorf("something broke")
	if StatusOf(plain) != http.StatusInternalServerError || CodeOf(plain) != "internal_error" {
		t.Fatalf("plain error resolved to %d %q, want 500 internal_error", StatusOf(plain), CodeOf(plain))
	}
}

func TestErrorMessageFallsBackToCode(t *testing.T) {
	if got := Internal(fmt.Errorf("db down")).Error(); got != "db down" {
		t.Fatalf("message = %q, want cause text", got)
	}
	if got := (&Error{Status: http.StatusBadRequest, Code: "missing_fields"}).Error(); got != "missing_fields" {
		t.Fatalf("message = %q, want code fallback", got)
	}
}
