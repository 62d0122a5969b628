package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestUnauthorized(t *testing.T) {
	err := Unauthorized("")

	if err.Code != ErrCodeUnauthorized {
		t.Errorf("expected code %s, got %s", ErrCodeUnauthorized, err.Code)
	}
	if err.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", err.HTTPStatus)
	}
	if err.Message == "" {
		t.Error("expected a default message")
	}
}

func TestValidation(t *testing.T) {
	err := Validation("kind is required")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidInput, err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", err.HTTPStatus)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Internal(cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_Error(t *testing.T) {
	err := Validation("bad input")
	want := "INVALID_INPUT: bad input"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	wrapped := Validation("bad input").WithCause(fmt.Errorf("boom"))
	if wrapped.Error() != "INVALID_INPUT: bad input (cause: boom)" {
		t.Errorf("unexpected wrapped message: %q", wrapped.Error())
	}
}

func TestToResponse(t *testing.T) {
	err := MissingField("kind")
	resp := err.ToResponse()

	if resp.Error.Code != ErrCodeMissingField {
		t.Errorf("expected code %s, got %s", ErrCodeMissingField, resp.Error.Code)
	}
	if resp.Error.Details["field"] != "kind" {
		t.Errorf("expected field detail 'kind', got %v", resp.Error.Details["field"])
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("subscriber", "user_42")
	wrapped := fmt.Errorf("lookup failed: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed on wrapped error")
	}
	if got.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, got.Code)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("expected AsAppError to fail on plain error")
	}
}
