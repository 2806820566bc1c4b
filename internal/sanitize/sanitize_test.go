package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openbesluit/reportgen/internal/domain"
)

func TestHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "editor output passes unchanged",
			input:    `<div><p class="annotation">Tekst met <strong>nadruk</strong></p></div>`,
			expected: `<div><p class="annotation">Tekst met <strong>nadruk</strong></p></div>`,
		},
		{
			name:     "script tags are stripped",
			input:    `<p>Tekst</p><script>alert("x")</script>`,
			expected: `<p>Tekst</p>`,
		},
		{
			name:     "event handlers are stripped",
			input:    `<p onclick="steal()">Tekst</p>`,
			expected: `<p>Tekst</p>`,
		},
		{
			name:     "unknown tags are removed but their text kept",
			input:    `<marquee>Belangrijk</marquee>`,
			expected: `Belangrijk`,
		},
		{
			name:     "line breaks survive",
			input:    `regel een<br/>regel twee`,
			expected: `regel een<br/>regel twee`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, HTML(tc.input))
		})
	}
}

func TestParts(t *testing.T) {
	t.Parallel()

	parts := domain.ReportParts{
		Concerns:   `<p>Betreft<script>x()</script></p>`,
		Decision:   `<p>Beslissing</p>`,
		Annotation: "",
	}

	sanitized := Parts(parts)
	assert.Equal(t, "<p>Betreft</p>", sanitized.Concerns)
	assert.Equal(t, "<p>Beslissing</p>", sanitized.Decision)
	assert.Empty(t, sanitized.Annotation)

	// The input is untouched.
	assert.Contains(t, parts.Concerns, "script")
}
