package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrapf(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "wrapped: %d", 42)

	assert.Contains(t, wrapped.Error(), "wrapped: 42")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "try this fix")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"parse", Wrap(ErrParse, "input.swift:3:1"), IsParseError},
		{"invariant", NewInvariantError("unbalanced %s", "("), IsInvariantError},
		{"not found", NewNotFoundError("file %s", "a.swift"), IsNotFoundError},
		{"invalid request", NewInvalidRequestError("missing %q", "source"), IsInvalidRequestError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(nil))
			assert.False(t, tt.check(fmt.Errorf("plain")))
		})
	}
}

func TestNewInvariantErrorMessage(t *testing.T) {
	err := NewInvariantError("no closing %s", ")")
	assert.Contains(t, err.Error(), "no closing )")
	assert.Contains(t, err.Error(), "translation invariant violated")
}
