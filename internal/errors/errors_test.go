package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := map[string]struct {
		err      *CLIError
		category ErrorCategory
	}{
		"argument":      {err: NewArgumentError("bad flag", "fix it"), category: Argument},
		"configuration": {err: NewConfigError("bad config"), category: Configuration},
		"validation":    {err: NewValidationError("bad changelog"), category: Validation},
		"runtime":       {err: NewRuntimeError("io failure"), category: Runtime},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	wrapped := Wrap(cause, Runtime, "free some space")

	assert.Equal(t, Runtime, wrapped.Category)
	assert.Equal(t, "disk full", wrapped.Message)
	assert.Equal(t, []string{"free some space"}, wrapped.Remediation)
	assert.ErrorIs(t, wrapped, cause)

	assert.Nil(t, Wrap(nil, Runtime))
}

func TestWrapWithMessage(t *testing.T) {
	cause := stderrors.New("no such file")
	wrapped := WrapWithMessage(cause, Configuration, "loading configuration")

	assert.Equal(t, "loading configuration: no such file", wrapped.Message)
	assert.ErrorIs(t, wrapped, cause)

	assert.Nil(t, WrapWithMessage(nil, Configuration, "x"))
}

func TestAsCLIError(t *testing.T) {
	direct := NewArgumentError("direct")
	assert.Equal(t, direct, AsCLIError(direct))

	nested := fmt.Errorf("outer: %w", direct)
	assert.Equal(t, direct, AsCLIError(nested))

	assert.Nil(t, AsCLIError(stderrors.New("plain")))
	assert.Nil(t, AsCLIError(nil))
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "Argument Error", Argument.String())
	assert.Equal(t, "Verification Error", Verification.String())
	assert.Equal(t, "Runtime Error", Runtime.String())
}

func TestFormatError(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	err := &CLIError{
		Category:    Argument,
		Message:     "invalid bump type",
		Usage:       "relkit bump --type <major|minor|patch>",
		Remediation: []string{"use one of: major, minor, patch"},
	}

	out := FormatError(err)
	assert.Contains(t, out, "Error [Argument Error]: invalid bump type")
	assert.Contains(t, out, "Usage: relkit bump --type")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "• use one of: major, minor, patch")

	assert.Empty(t, FormatError(nil))
}

func TestFormatError_MinimalError(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	out := FormatError(NewRuntimeError("boom"))
	require.Contains(t, out, "boom")
	assert.NotContains(t, out, "Usage:")
	assert.NotContains(t, out, "To fix this:")
}
