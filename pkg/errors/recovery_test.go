package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		panic("test panic message")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.Operation != "TestOperation" {
		t.Errorf("Expected operation 'TestOperation', got '%s'", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}
	if got, want := panicErr.Error(), "panic in TestOperation: test panic message"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		return nil
	}

	if err := testFunc(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		err = originalErr
		panic("panic after error")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected an error, got nil")
	}
	if !Is(err, originalErr) {
		t.Errorf("original error should still be reachable: %v", err)
	}
	if !strings.Contains(fmt.Sprintf("%+v", err), "panic in TestOperation") {
		t.Errorf("verbose output should mention the panic: %+v", err)
	}
}

func TestSafeExecute(t *testing.T) {
	err := SafeExecute("index", func() error {
		var s []int
		_ = s[3]
		return nil
	})

	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T (%v)", err, err)
	}
	if !strings.Contains(panicErr.String(), "Stack trace:") {
		t.Error("String() should include the stack trace")
	}

	if err := SafeExecute("ok", func() error { return nil }); err != nil {
		t.Errorf("SafeExecute() = %v, want nil", err)
	}
}
