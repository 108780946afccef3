package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestUpstreamCarriesCodeAndStatus(t *testing.T) {
	err := Upstream(CodeAuthRejected, 401, "unauthorized", ErrUnauthorized)
	wrapped := fmt.Errorf("search: %w", err)

	if got := GetCode(wrapped); got != CodeAuthRejected {
		t.Errorf("GetCode = %q, want %q", got, CodeAuthRejected)
	}
	if got := GetStatus(wrapped); got != 401 {
		t.Errorf("GetStatus = %d, want 401", got)
	}
	if !IsUnauthorized(wrapped) {
		t.Error("expected IsUnauthorized")
	}
	if got := GetMessage(wrapped); got != "unauthorized" {
		t.Errorf("GetMessage = %q", got)
	}
}

func TestPlainErrorHasNoCode(t *testing.T) {
	err := errors.New("boom")
	if GetCode(err) != "" {
		t.Error("plain error should have no code")
	}
	if GetStatus(err) != 0 {
		t.Error("plain error should have no status")
	}
	if GetMessage(err) != "boom" {
		t.Errorf("GetMessage = %q", GetMessage(err))
	}
}

func TestWrapNil(t *testing.T) {
	if WrapWithCode(nil, CodeNetwork, "x") != nil {
		t.Error("WrapWithCode(nil) should be nil")
	}
}

func TestErrorString(t *testing.T) {
	err := WrapWithCode(errors.New("dial tcp: timeout"), CodeNetwork, "request failed")
	if got := err.Error(); got != "request failed: dial tcp: timeout" {
		t.Errorf("Error() = %q", got)
	}
	if got := NewWithCode(CodeMissingCredential, "no key").Error(); got != "no key" {
		t.Errorf("Error() = %q", got)
	}
}
