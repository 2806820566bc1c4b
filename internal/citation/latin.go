package citation

// Latin ordinal adverbs marking the Nth occurrence of a reference within
// a year. The table is closed and exact: counts 1 through 15, where the
// first occurrence carries no suffix. Tokens outside this table are not
// repetition suffixes.
var suffixesByCount = map[int]string{
	1:  "",
	2:  "bis",
	3:  "ter",
	4:  "quater",
	5:  "quinquies",
	6:  "sexies",
	7:  "septies",
	8:  "octies",
	9:  "novies",
	10: "decies",
	11: "undecies",
	12: "duodecies",
	13: "ter decies",
	14: "quater decies",
	15: "quindecies",
}

var countsBySuffix = invert(suffixesByCount)

func invert(m map[int]string) map[string]int {
	inverted := make(map[string]int, len(m))
	for count, suffix := range m {
		inverted[suffix] = count
	}
	return inverted
}

// SuffixForCount returns the repetition suffix for the given occurrence
// count. The second return value is false for counts outside 1..15.
func SuffixForCount(count int) (string, bool) {
	suffix, ok := suffixesByCount[count]
	return suffix, ok
}

// CountForSuffix returns the occurrence count encoded by a repetition
// suffix. The empty suffix maps to 1. The second return value is false
// for tokens outside the table.
func CountForSuffix(suffix string) (int, bool) {
	count, ok := countsBySuffix[suffix]
	return count, ok
}
