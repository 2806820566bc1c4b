// Package sanitize cleans stored rich-text content against a fixed
// allow-list before it is rendered into a document. Unknown tags and
// attributes are stripped, not rejected: content authored through the
// editor passes unchanged, anything else (notably script-bearing markup)
// is removed.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/openbesluit/reportgen/internal/domain"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	// Standard user-generated-content allow-list plus the few layout
	// elements the document editor emits.
	p := bluemonday.UGCPolicy()
	p.AllowElements("div", "span", "br")
	p.AllowAttrs("class").OnElements("p", "div", "span")
	return p
}

// HTML sanitizes a single rich-text fragment.
func HTML(fragment string) string {
	return policy.Sanitize(fragment)
}

// Parts sanitizes every rich-text section of a report. The input is not
// mutated.
func Parts(parts domain.ReportParts) domain.ReportParts {
	sanitized := domain.ReportParts{
		Concerns: HTML(parts.Concerns),
		Decision: HTML(parts.Decision),
	}
	if parts.Annotation != "" {
		sanitized.Annotation = HTML(parts.Annotation)
	}
	return sanitized
}
