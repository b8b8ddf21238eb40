package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "LogisticRegression.Fit")
		panic("mat: dimension mismatch")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.Operation != "LogisticRegression.Fit" {
		t.Errorf("Expected operation 'LogisticRegression.Fit', got '%s'", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}

	expectedMsg := "panic in LogisticRegression.Fit: mat: dimension mismatch"
	if panicErr.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, panicErr.Error())
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
		t.Fatal("Expected error from recovered panic with existing error, got nil")
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "panic in TestOperation") {
		t.Errorf("Error message should contain panic info: %s", errMsg)
	}
	if !strings.Contains(errMsg, "original error") {
		t.Errorf("Error message should contain original error: %s", errMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("Should be able to identify original error with errors.Is")
	}
}

func TestSafeExecute(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		if err := SafeExecute("op", func() error { return nil }); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	})

	t.Run("function error", func(t *testing.T) {
		originalErr := fmt.Errorf("function error")
		if err := SafeExecute("op", func() error { return originalErr }); err != originalErr {
			t.Fatalf("Expected original error, got: %v", err)
		}
	})

	t.Run("panic", func(t *testing.T) {
		err := SafeExecute("op", func() error { panic("boom") })
		var panicErr *PanicError
		if !errors.As(err, &panicErr) {
			t.Fatalf("Expected PanicError, got %T", err)
		}
		if panicErr.PanicValue != "boom" {
			t.Errorf("Expected panic value 'boom', got '%v'", panicErr.PanicValue)
		}
	})
}

func TestPanicError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := SafeExecute("op", func() error { panic(cause) })

	if !errors.Is(err, cause) {
		t.Error("error panic values should be reachable through Unwrap")
	}

	str := NewPanicError("TestOp", "value").String()
	if !strings.Contains(str, "Stack trace:") {
		t.Error("String() should include stack trace information")
	}
	if NewPanicError("TestOp", "value").Unwrap() != nil {
		t.Error("non-error panic values should unwrap to nil")
	}
}

func TestRecover_DifferentPanicTypes(t *testing.T) {
	testCases := []struct {
		name       string
		panicValue interface{}
	}{
		{"string panic", "string panic"},
		{"int panic", 42},
		{"error panic", fmt.Errorf("error as panic")},
		{"struct panic", struct{ Msg string }{"struct message"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testFunc := func() (err error) {
				defer Recover(&err, "TypeTest")
				panic(tc.panicValue)
			}

			var panicErr *PanicError
			if !errors.As(testFunc(), &panicErr) {
				t.Fatal("Expected PanicError")
			}
			if fmt.Sprintf("%v", panicErr.PanicValue) != fmt.Sprintf("%v", tc.panicValue) {
				t.Errorf("Expected panic value %v, got %v", tc.panicValue, panicErr.PanicValue)
			}
		})
	}
}

func BenchmarkRecover_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		func() (err error) {
			defer Recover(&err, "BenchmarkOp")
			return nil
		}()
	}
}
