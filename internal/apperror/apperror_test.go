package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("add item: %w", NotFound("cart item not found"))

	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected errors.Is(err, ErrNotFound)")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatal("not found must not match conflict")
	}
	if errors.Is(err, NotFound("other message")) {
		t.Fatal("only message-less sentinels match by kind")
	}
}

func TestFromWrapsForeignErrors(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := From(cause)

	if appErr.Kind != KindPersistence {
		t.Fatalf("Kind = %s, want persistence", appErr.Kind)
	}
	if appErr.Message != "internal server error" {
		t.Fatalf("Message = %q", appErr.Message)
	}
	if !errors.Is(appErr, ErrPersistence) {
		t.Fatal("expected errors.Is(appErr, ErrPersistence)")
	}
	if !errors.Is(appErr, cause) {
		t.Fatal("cause lost")
	}
}

func TestPersistenceRetryable(t *testing.T) {
	if !Persistence("x", context.DeadlineExceeded).Retryable {
		t.Error("deadline exceeded should be retryable")
	}
	if Persistence("x", errors.New("syntax error")).Retryable {
		t.Error("plain error should not be retryable")
	}
}

func TestKindHTTPStatus(t *testing.T) {
	tests := map[Kind]int{
		KindValidation:  http.StatusBadRequest,
		KindAuth:        http.StatusUnauthorized,
		KindNotFound:    http.StatusNotFound,
		KindConflict:    http.StatusConflict,
		KindPersistence: http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := kind.HTTPStatus(); got != want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", kind, got, want)
		}
	}
}
