package parser

import "strings"

// Helpers for scanning inside a single statement's text. Offsets are byte
// offsets into that text.

// skipSpaces returns the first offset at or after i that is not whitespace.
func skipSpaces(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

// matchKeyword matches kw case-insensitively at offset i, requiring a word
// boundary after it. It returns the offset after the keyword.
func matchKeyword(s string, i int, kw string) (int, bool) {
	end := i + len(kw)
	if end > len(s) || !strings.EqualFold(s[i:end], kw) {
		return i, false
	}
	if end < len(s) && isIdentChar(s[end]) {
		return i, false
	}
	return end, true
}

// matchKeywords matches a whitespace-separated keyword sequence starting at i.
func matchKeywords(s string, i int, kws ...string) (int, bool) {
	pos := i
	for _, kw := range kws {
		pos = skipSpaces(s, pos)
		next, ok := matchKeyword(s, pos, kw)
		if !ok {
			return i, false
		}
		pos = next
	}
	return pos, true
}

// matchOptional consumes kws if present and returns the new offset either way.
func matchOptional(s string, i int, kws ...string) int {
	if next, ok := matchKeywords(s, i, kws...); ok {
		return next
	}
	return i
}

// matchCreateTable matches CREATE [TEMPORARY] TABLE [IF NOT EXISTS] and
// returns the offset of the table name.
func matchCreateTable(s string) (int, bool) {
	i, ok := matchKeywords(s, 0, "CREATE")
	if !ok {
		return 0, false
	}
	i = matchOptional(s, i, "TEMPORARY")
	i, ok = matchKeywords(s, i, "TABLE")
	if !ok {
		return 0, false
	}
	i = matchOptional(s, i, "IF", "NOT", "EXISTS")
	return skipSpaces(s, i), true
}

// matchInsert matches INSERT [LOW_PRIORITY|DELAYED|HIGH_PRIORITY] [IGNORE]
// INTO and returns the offset of the table name.
func matchInsert(s string) (int, bool) {
	i, ok := matchKeywords(s, 0, "INSERT")
	if !ok {
		return 0, false
	}
	for _, modifier := range []string{"LOW_PRIORITY", "DELAYED", "HIGH_PRIORITY"} {
		if next, ok := matchKeywords(s, i, modifier); ok {
			i = next
			break
		}
	}
	i = matchOptional(s, i, "IGNORE")
	i, ok = matchKeywords(s, i, "INTO")
	if !ok {
		return 0, false
	}
	return skipSpaces(s, i), true
}

// readIdentifier reads a backtick-quoted or bare identifier at offset i.
// A qualified name (`db`.`table`) yields its last part. ok is false when no
// identifier starts at i; an unterminated backtick returns ok with next == -1.
func readIdentifier(s string, i int) (name string, next int, ok bool) {
	name, next, ok = readIdentifierPart(s, i)
	for ok && next >= 0 && next < len(s) && s[next] == '.' {
		part, after, partOK := readIdentifierPart(s, next+1)
		if !partOK {
			break
		}
		name, next = part, after
	}
	return name, next, ok
}

func readIdentifierPart(s string, i int) (string, int, bool) {
	if i >= len(s) {
		return "", i, false
	}
	if s[i] == '`' {
		end, closed := skipQuotedAt(s, i)
		if !closed {
			return "", -1, true
		}
		return strings.ReplaceAll(s[i+1:end-1], "``", "`"), end, true
	}
	j := i
	for j < len(s) && isIdentChar(s[j]) {
		j++
	}
	if j == i {
		return "", i, false
	}
	return s[i:j], j, true
}

// skipQuotedAt skips a quoted run that opens at s[i] and returns the offset
// just past its closing quote. Backslash escapes apply inside ' and "; a
// doubled quote is a literal quote in all three forms. closed is false when
// the input ends first.
func skipQuotedAt(s string, i int) (end int, closed bool) {
	quote := s[i]
	j := i + 1
	for j < len(s) {
		switch {
		case s[j] == '\\' && quote != '`':
			j += 2
		case s[j] == quote && j+1 < len(s) && s[j+1] == quote:
			j += 2
		case s[j] == quote:
			return j + 1, true
		default:
			j++
		}
	}
	return len(s), false
}

// findClosingParen returns the offset of the ')' matching the '(' at s[i],
// skipping quoted runs. ok is false for unbalanced input; quoteErr is the
// offset of an unterminated quote, or -1.
func findClosingParen(s string, i int) (end int, quoteErr int, ok bool) {
	depth := 0
	for j := i; j < len(s); {
		switch s[j] {
		case '\'', '"', '`':
			next, closed := skipQuotedAt(s, j)
			if !closed {
				return 0, j, false
			}
			j = next
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j, -1, true
			}
		}
		j++
	}
	return 0, -1, false
}

func isQuote(ch byte) bool {
	return ch == '\'' || ch == '"' || ch == '`'
}

func isIdentChar(ch byte) bool {
	return ch == '_' || ch == '$' || ch >= 0x80 ||
		('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// tracker converts byte offsets within a statement into dump positions.
// Lookups are expected to move forward; a backward lookup restarts from base.
type tracker struct {
	text string
	base Position
	pos  Position
	off  int
}

func newTracker(text string, base Position) *tracker {
	return &tracker{text: text, base: base, pos: base}
}

// at returns the position of text[off].
func (t *tracker) at(off int) Position {
	if off < t.off {
		t.pos, t.off = t.base, 0
	}
	t.pos = t.pos.Advance(t.text[t.off:off])
	t.off = off
	return t.pos
}
