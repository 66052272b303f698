package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	// Verify all expected error codes exist
	codes := []string{
		ErrConfig,
		ErrFetch,
		ErrParse,
		ErrRender,
		ErrExec,
	}

	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
	}

	// Verify codes are unique
	seen := make(map[string]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .volt.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "fetch error",
			code:       ErrFetch,
			message:    "Battery command not found",
			suggestion: "Check commands.battery in your config",
		},
		{
			name:       "parse error",
			code:       ErrParse,
			message:    "Unrecognizable battery output",
			suggestion: "Run the command manually to inspect its output",
		},
		{
			name:       "render error",
			code:       ErrRender,
			message:    "Dashboard terminated unexpectedly",
			suggestion: "Make sure you are running in an interactive terminal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	err := New(ErrConfig, "Something broke", "Try this fix")
	msg := err.Error()

	assert.True(t, strings.HasPrefix(msg, "✗ Something broke"))
	assert.Contains(t, msg, "Try this fix")
}

func TestErrorFormattingWithCause(t *testing.T) {
	cause := errors.New("underlying problem")
	err := WrapWithCode(cause, ErrFetch, "Fetch failed", "Check the command")
	msg := err.Error()

	assert.Contains(t, msg, "✗ Fetch failed")
	assert.Contains(t, msg, "underlying problem")
	assert.Contains(t, msg, "Check the command")

	// Cause appears before suggestion
	assert.Less(t, strings.Index(msg, "underlying problem"), strings.Index(msg, "Check the command"))
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, "operation failed")

	assert.Equal(t, ErrExec, err.Code)
	assert.Equal(t, cause, err.Cause)
	assert.ErrorIs(t, err, cause)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapWithCode(cause, ErrParse, "parse failed", "")

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "bad config", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrFetch))
	assert.False(t, IsCode(nil, ErrConfig))
	assert.False(t, IsCode(errors.New("plain"), ErrConfig))

	// Works through wrapping
	wrapped := WrapWithCode(err, ErrFetch, "outer", "")
	assert.True(t, IsCode(wrapped, ErrFetch))
}
