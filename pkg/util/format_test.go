package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrDash(t *testing.T) {
	assert.Equal(t, "-", OrDash(""))
	assert.Equal(t, "x", OrDash("x"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		max      int
		expected string
	}{
		{"Example Domain", 40, "Example Domain"},
		{"Example Domain", 8, "Example…"},
		{"百度一下，你就知道", 5, "百度一下…"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.in, tt.max))
		})
	}
}
