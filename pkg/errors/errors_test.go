// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/sandbox/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "duplicate_module",
			code:    errors.ErrDuplicateModule,
			message: "module already registered",
			wantStr: "[DUPLICATE_MODULE] module already registered",
		},
		{
			name:    "context_conflict",
			code:    errors.ErrContextConflict,
			message: "key in conflict",
			wantStr: "[CONTEXT_CONFLICT] key in conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrUnknownModule, "module %q could not be started", "Mailer")
	if err.Message != `module "Mailer" could not be started` {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("boom")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFactory, "factory failed")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[FACTORY] factory failed: boom"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrFactory, "factory failed"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if err := errors.Wrapf(nil, errors.ErrInit, "init %s", "x"); err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrCyclicDependency, "cycle").
		WithDetail("module", "A").
		WithDetails(map[string]interface{}{"path": []string{"A", "B", "A"}})

	if err.Details["module"] != "A" {
		t.Errorf("WithDetail() module = %v", err.Details["module"])
	}
	if _, ok := err.Details["path"]; !ok {
		t.Error("WithDetails() should add path")
	}

	details := errors.GetErrorDetails(fmt.Errorf("outer: %w", err))
	if details["module"] != "A" {
		t.Errorf("GetErrorDetails() through wrapping = %v", details)
	}
	if errors.GetErrorDetails(stderrors.New("plain")) != nil {
		t.Error("GetErrorDetails() should be nil for foreign errors")
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotFound, "error 1")
	err2 := errors.New(errors.ErrNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match on code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrRun, "x"), errors.ErrRun, true},
		{"different_code", errors.New(errors.ErrRun, "x"), errors.ErrInternal, false},
		{"fmt_wrapped", fmt.Errorf("ctx: %w", errors.New(errors.ErrUnknownModule, "x")), errors.ErrUnknownModule, true},
		{"foreign_error", stderrors.New("standard error"), errors.ErrNotFound, false},
		{"nil_error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrExtensionConflict, "x")); got != errors.ErrExtensionConflict {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(stderrors.New("x")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() foreign = %v", got)
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	factoryErr := errors.Wrap(rootCause, errors.ErrFactory, "factory for Mailer failed")
	startErr := errors.Wrap(factoryErr, errors.ErrInit, "init for App failed")

	if !errors.IsErrorCode(startErr, errors.ErrInit) {
		t.Error("Top level should have ErrInit code")
	}

	var inner *errors.SandboxError
	if !stderrors.As(startErr.Unwrap(), &inner) || inner.Code != errors.ErrFactory {
		t.Error("Middle error should have ErrFactory code")
	}

	if !stderrors.Is(startErr, rootCause) {
		t.Error("Should find root cause with errors.Is")
	}
}
