package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openbesluit/reportgen/internal/domain"
)

func TestConcernsHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		detail    domain.AgendaItemDetail
		documents string
		expected  string
	}{
		{
			name:     "short title only",
			detail:   domain.AgendaItemDetail{ShortTitle: "Wijziging decreet basisonderwijs"},
			expected: "<div><p>Wijziging decreet basisonderwijs</p></div>",
		},
		{
			name: "title on a second line",
			detail: domain.AgendaItemDetail{
				ShortTitle: "Wijziging decreet basisonderwijs",
				Title:      "Ontwerp van decreet tot wijziging van het decreet basisonderwijs",
			},
			expected: "<div><p>Wijziging decreet basisonderwijs" +
				"<br/>Ontwerp van decreet tot wijziging van het decreet basisonderwijs</p></div>",
		},
		{
			name: "note appends the capitalized procedure step",
			detail: domain.AgendaItemDetail{
				ShortTitle:        "Wijziging decreet basisonderwijs",
				ProcedureStepName: "principiële goedkeuring",
				IsNote:            true,
			},
			expected: "<div><p>Wijziging decreet basisonderwijs" +
				"<br/>Principiële goedkeuring</p></div>",
		},
		{
			name: "announcement ignores the procedure step",
			detail: domain.AgendaItemDetail{
				ShortTitle:        "Wijziging decreet basisonderwijs",
				ProcedureStepName: "principiële goedkeuring",
				IsNote:            false,
			},
			expected: "<div><p>Wijziging decreet basisonderwijs</p></div>",
		},
		{
			name:      "documents line wrapped in parentheses",
			detail:    domain.AgendaItemDetail{ShortTitle: "Wijziging decreet basisonderwijs"},
			documents: "47/2024, 48 en 12/2025 bis",
			expected: "<div><p>Wijziging decreet basisonderwijs" +
				"<br/>(47/2024, 48 en 12/2025 bis)</p></div>",
		},
		{
			name: "newlines become breaks",
			detail: domain.AgendaItemDetail{
				ShortTitle: "Regel een\nRegel twee",
			},
			expected: "<div><p>Regel een<br />Regel twee</p></div>",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ConcernsHTML(&tc.detail, tc.documents))
		})
	}
}
