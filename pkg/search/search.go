// Package search implements case-insensitive substring search over parsed
// tables and table names.
//
// Matching uses full Unicode case folding: "ÉCOLE" matches "école" and
// "STRASSE" matches "straße". NULL cells never match.
package search

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/leapstack-labs/dumpnav/pkg/core"
)

// Rows returns the ascending indices of rows in t where at least one
// non-NULL cell contains query, ignoring case. An empty query returns nil;
// callers treat that as clearing the search.
func Rows(t *core.Table, query string) []int {
	folder := cases.Fold()
	needle := folder.String(query)
	if needle == "" || t == nil {
		return nil
	}

	matches := []int{}
	for i, row := range t.Rows {
		if rowContains(folder, row, needle) {
			matches = append(matches, i)
		}
	}
	return matches
}

func rowContains(folder cases.Caser, row core.Row, needle string) bool {
	for _, cell := range row {
		if cell.IsNull() {
			continue
		}
		if strings.Contains(folder.String(cell.Text), needle) {
			return true
		}
	}
	return false
}

// Match reports whether text contains query, ignoring case.
func Match(text, query string) bool {
	folder := cases.Fold()
	return strings.Contains(folder.String(text), folder.String(query))
}

// Tables returns the names containing query, ignoring case, in their
// original order. An empty query returns names unchanged.
func Tables(names []string, query string) []string {
	folder := cases.Fold()
	needle := folder.String(query)
	if needle == "" {
		return names
	}
	out := []string{}
	for _, name := range names {
		if strings.Contains(folder.String(name), needle) {
			out = append(out, name)
		}
	}
	return out
}

// Highlights returns the byte ranges [start, end) of text covered by
// non-overlapping case-insensitive occurrences of query, left to right.
// Ranges always fall on rune boundaries of text.
func Highlights(text, query string) [][2]int {
	folder := cases.Fold()
	needle := folder.String(query)
	if needle == "" || text == "" {
		return nil
	}

	// folded holds text folded rune by rune; origin maps each folded byte
	// back to the start of the source rune it came from.
	var folded strings.Builder
	origin := make([]int, 0, len(text)+1)
	for i, r := range text {
		f := folder.String(string(r))
		folded.WriteString(f)
		for range len(f) {
			origin = append(origin, i)
		}
	}
	origin = append(origin, len(text))
	haystack := folded.String()

	var ranges [][2]int
	for from := 0; from <= len(haystack)-len(needle); {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			break
		}
		start := from + idx
		end := start + len(needle)
		srcEnd := runeEnd(text, origin, end)
		ranges = append(ranges, [2]int{origin[start], srcEnd})

		// A rune folded into several bytes must not start another match.
		from = end
		for origin[from] < srcEnd {
			from++
		}
	}
	return ranges
}

// runeEnd maps a folded end offset to the end of the source rune that
// produced the last matched folded byte.
func runeEnd(text string, origin []int, end int) int {
	if end >= len(origin)-1 {
		return len(text)
	}
	last := origin[end-1]
	_, size := utf8.DecodeRuneInString(text[last:])
	return last + size
}
