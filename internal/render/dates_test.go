package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "friday in april",
			date:     time.Date(2024, time.April, 12, 0, 0, 0, 0, time.UTC),
			expected: "vrijdag 12 april 2024",
		},
		{
			name:     "sunday in january",
			date:     time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
			expected: "zondag 5 januari 2025",
		},
		{
			name:     "single digit day keeps no padding",
			date:     time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
			expected: "vrijdag 1 december 2023",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, FormatDate(tc.date))
		})
	}
}

func TestCapitalizeFirst(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Principiële goedkeuring", CapitalizeFirst("principiële goedkeuring"))
	assert.Equal(t, "Al hoofdletter", CapitalizeFirst("Al hoofdletter"))
	assert.Equal(t, "", CapitalizeFirst(""))
}
