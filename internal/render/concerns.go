package render

import (
	"strings"

	"github.com/openbesluit/reportgen/internal/domain"
)

// ConcernsHTML rebuilds the "Betreft" section of a report from the
// agenda item it covers. The documents argument is the already
// formatted citation line; when empty no documents line is rendered.
// The result is wrapped the way the rich-text editor would have stored
// it, so regenerated sections render identically to authored ones.
func ConcernsHTML(detail *domain.AgendaItemDetail, documents string) string {
	var b strings.Builder
	b.WriteString(detail.ShortTitle)
	if detail.Title != "" {
		b.WriteString("<br/>")
		b.WriteString(detail.Title)
	}
	if detail.IsNote && detail.ProcedureStepName != "" {
		b.WriteString("<br/>")
		b.WriteString(CapitalizeFirst(detail.ProcedureStepName))
	}
	if documents != "" {
		b.WriteString("<br/>(")
		b.WriteString(documents)
		b.WriteString(")")
	}

	content := strings.ReplaceAll(b.String(), "\n", "<br />")
	return "<div><p>" + content + "</p></div>"
}
