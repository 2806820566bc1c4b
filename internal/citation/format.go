package citation

import (
	"strings"

	"github.com/openbesluit/reportgen/internal/domain"
)

// Citation sequences the pieces and renders the compact citation string
// that appears inside a generated report. An empty input yields an empty
// string; a single unparseable name is returned verbatim.
func Citation(pieces []domain.Piece, minutesApproval bool) string {
	ordered := Sequence(pieces, minutesApproval)
	names := make([]string, len(ordered))
	for i, piece := range ordered {
		names[i] = piece.Name
	}
	return FormatList(Compact(names, minutesApproval))
}

// Compact renders each name in its short citation form, keeping the
// given order. For the general grammar, when two consecutive names share
// the same year the second one drops its year; an unparseable name is
// rendered verbatim and resets that folding. Minutes names are never
// folded.
func Compact(names []string, minutesApproval bool) []string {
	short := make([]string, 0, len(names))

	if minutesApproval {
		for _, name := range names {
			if parsed, ok := ParseMinutesName(name); ok {
				short = append(short, parsed.ShortForm())
			} else {
				short = append(short, name)
			}
		}
		return short
	}

	var previous *DocumentName
	for _, name := range names {
		parsed, ok := ParseDocumentName(name)
		if !ok {
			short = append(short, name)
			previous = nil
			continue
		}
		if previous != nil && previous.Year == parsed.Year {
			short = append(short, parsed.WithoutYear())
		} else {
			short = append(short, parsed.ShortForm())
		}
		previous = &parsed
	}
	return short
}

// FormatList joins citation entries with commas, the last two with the
// conjunction "en".
func FormatList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " en " + items[len(items)-1]
	}
}
