package autocomplete

import (
	"regexp"
	"strings"
)

// A query is an optional leading alphabetic day token and an optional
// trailing time token starting with a digit, e.g. "tue 930".
var queryRegex = regexp.MustCompile(`^([a-z]+)?\s*(\d[a-z0-9]*)?$`)

// SplitQuery lower-cases and trims a raw query and splits it into day
// and time tokens. A query that doesn't fit the grammar yields empty
// tokens, which match everything.
func SplitQuery(query string) (full, day, clock string) {
	full = strings.ToLower(strings.TrimSpace(query))

	m := queryRegex.FindStringSubmatch(full)
	if m == nil {
		return full, "", ""
	}
	return full, m[1], m[2]
}
