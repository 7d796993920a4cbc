package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailtemplated/pkg/sanitizer"
)

func TestStripTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips inline tags",
			input:    `<p>Hello <strong>User</strong></p>`,
			expected: "Hello User",
		},
		{
			name:     "block elements become lines",
			input:    `<h1>Welcome</h1><p>First</p><p>Second<br>line</p>`,
			expected: "Welcome\nFirst\nSecond\nline",
		},
		{
			name:     "drops script and style",
			input:    `<style>p{color:red}</style><p>Hi</p><script>alert('x')</script>`,
			expected: "Hi",
		},
		{
			name:     "drops head",
			input:    `<html><head><title>Mail</title></head><body><p>Body</p></body></html>`,
			expected: "Body",
		},
		{
			name:     "decodes entities",
			input:    `<p>Tom &amp; Jerry &lt;3</p>`,
			expected: "Tom & Jerry <3",
		},
		{
			name:     "keeps link text",
			input:    `<a href="https://example.com" class="btn">Get Started</a>`,
			expected: "Get Started",
		},
		{
			name:     "collapses blank lines",
			input:    "<p>One</p>\n\n\n\n<p>Two</p>",
			expected: "One\n\nTwo",
		},
		{
			name:     "plain text passes through",
			input:    "User, this is a plain text message.",
			expected: "User, this is a plain text message.",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripTags(tt.input))
		})
	}
}
