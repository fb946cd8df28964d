package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "not found error type", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
		{name: "render error type", errType: ErrTypeRender, expected: "RENDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    NewAppError(ErrTypeParsing, "bad header", nil),
			wantMessage: "[PARSING] bad header",
		},
		{
			name:        "error with cause",
			appError:    NewStorageError("write report", fmt.Errorf("disk full")),
			wantMessage: "[STORAGE] write report: disk full",
		},
		{
			name:        "not found error",
			appError:    NewNotFoundError("content/deliveries.csv"),
			wantMessage: "[NOT_FOUND] content/deliveries.csv not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewRenderError("draw page", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeParsing, Message: "bad row"}
	err.WithContext("line", 12).WithContext("column", "over")

	require.NotNil(t, err.Context)
	assert.Equal(t, 12, err.Context["line"])
	assert.Equal(t, "over", err.Context["column"])
}

func TestIsType(t *testing.T) {
	notFound := NewNotFoundError("deliveries.csv")
	wrapped := fmt.Errorf("resolve input: %w", notFound)
	nested := NewConfigError("load", NewParsingError("yaml", nil))

	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
	assert.True(t, IsType(nested, ErrTypeConfig))
	assert.True(t, IsType(nested, ErrTypeParsing))
	assert.False(t, IsType(nested, ErrTypeStorage))
}

func TestContextValue(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewNotFoundError("report.pdf"))

	v, ok := ContextValue(err, "resource")
	require.True(t, ok)
	assert.Equal(t, "report.pdf", v)

	_, ok = ContextValue(errors.New("plain"), "resource")
	assert.False(t, ok)
}
