package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportPartsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		parts    ReportParts
		expected error
	}{
		{
			name:  "complete parts",
			parts: ReportParts{Concerns: "betreft", Decision: "beslissing"},
		},
		{
			name:  "annotation is optional",
			parts: ReportParts{Concerns: "betreft", Decision: "beslissing", Annotation: "nota"},
		},
		{
			name:     "missing concerns",
			parts:    ReportParts{Decision: "beslissing"},
			expected: ErrMissingConcerns,
		},
		{
			name:     "missing decision",
			parts:    ReportParts{Concerns: "betreft"},
			expected: ErrMissingDecision,
		},
		{
			name:     "empty parts",
			parts:    ReportParts{},
			expected: ErrMissingConcerns,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.parts.Validate()
			if tc.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
			}
		})
	}
}
