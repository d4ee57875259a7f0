package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(401, "unauthorized access")
	if err.GetCode() != 401 {
		t.Errorf("expected code 401, got %d", err.GetCode())
	}
	if err.GetMessage() != "unauthorized access" {
		t.Errorf("expected message 'unauthorized access', got %s", err.GetMessage())
	}

	formatted := New(404, "user %d not found", 7)
	if formatted.GetMessage() != "user 7 not found" {
		t.Errorf("expected formatted message, got %s", formatted.GetMessage())
	}

	// Messages carrying verbs are passed as an argument.
	verbatim := New(400, "%s", "100% of quota used")
	if verbatim.GetMessage() != "100% of quota used" {
		t.Errorf("expected verbatim message, got %s", verbatim.GetMessage())
	}
}

func TestErrorString(t *testing.T) {
	err := New(404, "not found").
		WithMetadata(map[string]string{"path": "/users/1", "method": "GET"}).
		WithCause(errors.New("missing"))

	want := "code=404, message=not found, metadata={method=GET, path=/users/1}, cause=missing"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWithMetadata(t *testing.T) {
	err := New(401, "unauthorized")

	if err2 := err.WithMetadata(map[string]string{}); err != err2 {
		t.Error("WithMetadata with empty map should return same instance")
	}

	err3 := err.WithMetadata(map[string]string{"user": "john", "action": "login"})
	if err == err3 {
		t.Error("WithMetadata should return new instance")
	}
	if err.GetMetadata() != nil {
		t.Error("original error must stay untouched")
	}

	metadata := err3.GetMetadata()
	if metadata["user"] != "john" || metadata["action"] != "login" {
		t.Errorf("metadata not set correctly: %v", metadata)
	}

	metadata["user"] = "mallory"
	if err3.GetMetadata()["user"] != "john" {
		t.Error("GetMetadata must return a copy")
	}
}

func TestWithCause(t *testing.T) {
	originalErr := errors.New("database connection failed")
	err := New(500, "internal server error").WithCause(originalErr)

	if err.GetCause() != originalErr {
		t.Error("cause not set correctly")
	}
	if !errors.Is(err, originalErr) {
		t.Error("errors.Is should find the cause")
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFound("not found"))
	if !errors.Is(err, NotFound("not found")) {
		t.Error("errors.Is should match on code and message")
	}
	if errors.Is(err, NotFound("gone")) {
		t.Error("errors.Is should not match a different message")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil) != nil {
		t.Error("FromError(nil) should be nil")
	}

	stdErr := errors.New("standard error")
	wrappedErr := FromError(stdErr)
	if wrappedErr.GetCode() != UnknownCode {
		t.Errorf("expected code %d, got %d", UnknownCode, wrappedErr.GetCode())
	}
	if !errors.Is(wrappedErr, stdErr) {
		t.Error("wrapped error should keep the original as cause")
	}

	existingErr := New(404, "not found")
	if FromError(existingErr) != existingErr {
		t.Error("FromError should return same instance for *Error")
	}

	chained := fmt.Errorf("outer: %w", existingErr)
	if FromError(chained) != existingErr {
		t.Error("FromError should find *Error in the chain")
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "coded", err: Conflict("exists"), want: 409},
		{name: "wrapped", err: fmt.Errorf("x: %w", BadGateway("upstream")), want: 502},
		{name: "plain", err: errors.New("boom"), want: UnknownCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code() = %d, want %d", got, tt.want)
			}
		})
	}

	if !IsClientError(Forbidden("no")) || IsClientError(Internal("boom")) {
		t.Error("IsClientError classification wrong")
	}
	if !IsServerError(ServiceUnavailable("down")) || IsServerError(BadRequest("bad")) {
		t.Error("IsServerError classification wrong")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, 500, "x") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if WrapWithMetadata(nil, 500, nil, "x") != nil {
		t.Error("WrapWithMetadata(nil) should be nil")
	}

	dbErr := errors.New("connection timeout")
	apiErr := WrapWithMetadata(dbErr, 503, map[string]string{"endpoint": "/api/users"}, "service unavailable")
	if apiErr.GetCode() != 503 || apiErr.GetMetadata()["endpoint"] != "/api/users" {
		t.Errorf("unexpected wrapped error: %s", apiErr)
	}
	if !errors.Is(apiErr, dbErr) {
		t.Error("wrapped error should unwrap to the cause")
	}
}

func BenchmarkErrorString(b *testing.B) {
	err := New(500, "internal server error").
		WithMetadata(map[string]string{"service": "api", "version": "v1"}).
		WithCause(errors.New("database error"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = err.Error()
	}
}
