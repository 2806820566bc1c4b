package citation

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DocumentName is the decomposition of a well-formed legal reference
// name of the form "VR <year> <number>[ <suffix>][ - <free text>]",
// e.g. "VR 2024 0047 bis - Ontwerpbesluit begroting".
type DocumentName struct {
	Year       int
	Number     int
	Repetition int // occurrence count, 1 when no suffix is present
	Rest       string
}

// MinutesName is the decomposition of a minutes reference name of the
// form "VR PV <year>/<number>[ <suffix>]", e.g. "VR PV 2024/21 ter".
// The minutes grammar is independent of the general document grammar: a
// name valid under one is not implicitly valid under the other.
type MinutesName struct {
	Year       int
	Number     int
	Repetition int
}

var (
	documentNameRe = regexp.MustCompile(
		`^VR (\d{4}) (\d{1,4})(?: (` + suffixAlternation() + `))?(?: - (.*\S))?$`,
	)
	minutesNameRe = regexp.MustCompile(
		`^VR PV (\d{4})/(\d{1,4})(?: (` + suffixAlternation() + `))?$`,
	)
)

// suffixAlternation builds a regexp alternation over the repetition
// table, longest token first so "ter decies" wins over "ter".
func suffixAlternation() string {
	tokens := make([]string, 0, len(countsBySuffix))
	for suffix := range countsBySuffix {
		if suffix != "" {
			tokens = append(tokens, suffix)
		}
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})
	for i, token := range tokens {
		tokens[i] = regexp.QuoteMeta(token)
	}
	return strings.Join(tokens, "|")
}

// ParseDocumentName parses a piece name under the general legal-reference
// grammar. The second return value is false when the name does not
// follow the grammar; callers branch on it rather than on an error.
func ParseDocumentName(name string) (DocumentName, bool) {
	m := documentNameRe.FindStringSubmatch(name)
	if m == nil {
		return DocumentName{}, false
	}

	year, _ := strconv.Atoi(m[1])
	number, _ := strconv.Atoi(m[2])
	repetition, ok := CountForSuffix(m[3])
	if !ok {
		return DocumentName{}, false
	}

	return DocumentName{
		Year:       year,
		Number:     number,
		Repetition: repetition,
		Rest:       m[4],
	}, true
}

// ParseMinutesName parses a piece name under the minutes grammar.
func ParseMinutesName(name string) (MinutesName, bool) {
	m := minutesNameRe.FindStringSubmatch(name)
	if m == nil {
		return MinutesName{}, false
	}

	year, _ := strconv.Atoi(m[1])
	number, _ := strconv.Atoi(m[2])
	repetition, ok := CountForSuffix(m[3])
	if !ok {
		return MinutesName{}, false
	}

	return MinutesName{
		Year:       year,
		Number:     number,
		Repetition: repetition,
	}, true
}

// Compare orders document names by year, then sequence number, then
// repetition count, all ascending.
func (n DocumentName) Compare(other DocumentName) int {
	if n.Year != other.Year {
		return n.Year - other.Year
	}
	if n.Number != other.Number {
		return n.Number - other.Number
	}
	return n.Repetition - other.Repetition
}

// Compare orders minutes names chronologically by meeting reference,
// then by repetition count.
func (n MinutesName) Compare(other MinutesName) int {
	if n.Year != other.Year {
		return n.Year - other.Year
	}
	if n.Number != other.Number {
		return n.Number - other.Number
	}
	return n.Repetition - other.Repetition
}

// ShortForm renders the compact citation form "<number>/<year>" plus the
// repetition suffix when present.
func (n DocumentName) ShortForm() string {
	return appendSuffix(fmt.Sprintf("%d/%d", n.Number, n.Year), n.Repetition)
}

// WithoutYear renders the compact form with the year omitted, used when
// the preceding citation already names the same year.
func (n DocumentName) WithoutYear() string {
	return appendSuffix(strconv.Itoa(n.Number), n.Repetition)
}

// ShortForm renders the compact minutes citation "PV <year>/<number>"
// plus the repetition suffix when present.
func (n MinutesName) ShortForm() string {
	return appendSuffix(fmt.Sprintf("PV %d/%d", n.Year, n.Number), n.Repetition)
}

func appendSuffix(s string, repetition int) string {
	suffix, ok := SuffixForCount(repetition)
	if !ok || suffix == "" {
		return s
	}
	return s + " " + suffix
}
