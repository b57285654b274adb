package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "cuts at the fifth word boundary",
			text:     "one two three four five six seven",
			expected: "one two three four five ...",
		},
		{
			name:     "short text passes through",
			text:     "just a few words",
			expected: "just a few words",
		},
		{
			name:     "exactly five words pass through",
			text:     "one two three four five",
			expected: "one two three four five",
		},
		{
			name:     "empty text passes through",
			text:     "",
			expected: "",
		},
		{
			name:     "six words get cut",
			text:     "one two three four five six",
			expected: "one two three four five ...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.text, ShortTextSpaces))
		})
	}
}

func TestTruncateZeroSpaces(t *testing.T) {
	assert.Equal(t, "anything goes", Truncate("anything goes", 0))
}

func TestPostShortDescription(t *testing.T) {
	post := Post{Description: "a b c d e f g"}
	assert.Equal(t, "a b c d e ...", post.ShortDescription())
}

func TestPostPublished(t *testing.T) {
	draft := Post{Status: StatusDraft}
	published := Post{Status: StatusPublished}
	assert.False(t, draft.Published())
	assert.True(t, published.Published())
}
