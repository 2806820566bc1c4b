package render

import (
	"fmt"
	"time"
	"unicode"
)

var weekdayNames = [...]string{
	"zondag",
	"maandag",
	"dinsdag",
	"woensdag",
	"donderdag",
	"vrijdag",
	"zaterdag",
}

var monthNames = [...]string{
	"januari",
	"februari",
	"maart",
	"april",
	"mei",
	"juni",
	"juli",
	"augustus",
	"september",
	"oktober",
	"november",
	"december",
}

// FormatDate renders a date the way it appears in document headings,
// e.g. "vrijdag 12 april 2024".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d",
		weekdayNames[t.Weekday()],
		t.Day(),
		monthNames[t.Month()-1],
		t.Year(),
	)
}

// CapitalizeFirst upper-cases the first rune of a sentence fragment.
func CapitalizeFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
