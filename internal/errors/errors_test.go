package errors

import (
	"errors"
	"testing"
)

type customError struct {
	Msg string
}

func (e customError) Error() string { return e.Msg }

func TestNew(t *testing.T) {
	err := New("test error")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := err.Error(); got != "test error" {
		t.Errorf("expected 'test error', got '%s'", got)
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("base error")

	wrapped := Wrap(base, "wrapped")
	if wrapped == nil {
		t.Fatal("expected wrapped error, got nil")
	}
	if got := wrapped.Error(); got != "wrapped: base error" {
		t.Errorf("unexpected message: %s", got)
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base through the chain")
	}

	if got := Wrap(nil, "wrapped"); got != nil {
		t.Errorf("wrapping nil should return nil, got %v", got)
	}
}

func TestWrapf(t *testing.T) {
	base := errors.New("base error")

	wrapped := Wrapf(base, "chunk %d failed", 3)
	if wrapped == nil {
		t.Fatal("expected wrapped error, got nil")
	}
	if got := wrapped.Error(); got != "chunk 3 failed: base error" {
		t.Errorf("unexpected message: %s", got)
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base through the chain")
	}

	if got := Wrapf(nil, "chunk %d failed", 3); got != nil {
		t.Errorf("wrapping nil should return nil, got %v", got)
	}
}

func TestIs(t *testing.T) {
	wrapped := Wrap(ErrIntegrity, "chunk 3")
	if !Is(wrapped, ErrIntegrity) {
		t.Error("expected Is to match ErrIntegrity through the wrap chain")
	}
	if Is(wrapped, ErrNotFound) {
		t.Error("expected Is to not match unrelated sentinel")
	}
}

func TestAs(t *testing.T) {
	wrapped := Wrap(customError{Msg: "custom"}, "context")

	var target customError
	if !As(wrapped, &target) {
		t.Fatal("expected As to find customError in the chain")
	}
	if target.Msg != "custom" {
		t.Errorf("expected 'custom', got '%s'", target.Msg)
	}
}
