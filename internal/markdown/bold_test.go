package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitBold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		expected []Segment
	}{
		{
			name:     "no span",
			line:     "nothing here",
			expected: []Segment{{Text: "nothing here"}},
		},
		{
			name:     "whole line",
			line:     "**Recommend for Interview**",
			expected: []Segment{{Text: "Recommend for Interview", Emphasized: true}},
		},
		{
			name: "text on both sides",
			line: "before **mid** after",
			expected: []Segment{
				{Text: "before "},
				{Text: "mid", Emphasized: true},
				{Text: " after"},
			},
		},
		{
			name:     "empty inner text",
			line:     "****",
			expected: []Segment{{Text: "", Emphasized: true}},
		},
		{
			name: "underscores",
			line: "__x__!",
			expected: []Segment{
				{Text: "x", Emphasized: true},
				{Text: "!"},
			},
		},
		{
			name: "leftmost span wins regardless of delimiter",
			line: "__u__ **s**",
			expected: []Segment{
				{Text: "u", Emphasized: true},
				{Text: " **s**"},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, splitBold(testCase.line))
		})
	}
}

func TestHasBold(t *testing.T) {
	t.Parallel()

	assert.True(t, hasBold("a **b** c"))
	assert.True(t, hasBold("__b__"))
	assert.False(t, hasBold("**b__"))
	assert.False(t, hasBold("* b"))
	assert.False(t, hasBold(""))
}
