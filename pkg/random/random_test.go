package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShortCode_Length(t *testing.T) {
	for _, length := range []int{1, 4, 8, 16} {
		code, err := NewShortCode(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
	}
}

func TestNewShortCode_URLSafeAlphabet(t *testing.T) {
	code, err := NewShortCode(8)
	require.NoError(t, err)

	for _, c := range code {
		ok := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
		assert.True(t, ok, "unexpected character %q in code %q", c, code)
	}
}

func TestNewShortCode_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := NewShortCode(8)
		require.NoError(t, err)
		assert.False(t, seen[code], "generated duplicate code %q", code)
		seen[code] = true
	}
}

func TestNewShortCode_InvalidLength(t *testing.T) {
	_, err := NewShortCode(0)
	assert.Error(t, err)

	_, err = NewShortCode(-3)
	assert.Error(t, err)
}
