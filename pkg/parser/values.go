package parser

import (
	"strings"

	"github.com/leapstack-labs/dumpnav/pkg/core"
	"github.com/leapstack-labs/dumpnav/pkg/token"
)

// segment is one top-level piece of a comma-separated list.
type segment struct {
	Text string // trimmed text
	Pos  Position
}

// splitTopLevel splits s on commas that are outside quotes, backticks and
// parentheses. Each segment is trimmed of surrounding whitespace; base is the
// position of s[0] and is used to position segments and errors. Blank input
// yields no segments.
func splitTopLevel(s string, base Position) ([]segment, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var segs []segment
	tr := newTracker(s, base)
	emit := func(start, end int) {
		for start < end && isSpace(s[start]) {
			start++
		}
		segs = append(segs, segment{
			Text: trimRightSpace(s[start:end]),
			Pos:  tr.at(start),
		})
	}

	depth, start := 0, 0
	for i := 0; i < len(s); {
		switch ch := s[i]; {
		case isQuote(ch):
			next, closed := skipQuotedAt(s, i)
			if !closed {
				msg := errUnterminatedString
				if ch == '`' {
					msg = errUnterminatedIdent
				}
				return nil, &MalformedLiteralError{Pos: tr.at(i), Message: msg}
			}
			i = next
			continue
		case ch == '(':
			depth++
		case ch == ')':
			if depth > 0 {
				depth--
			}
		case ch == ',' && depth == 0:
			emit(start, i)
			start = i + 1
		}
		i++
	}
	emit(start, len(s))
	return segs, nil
}

// SplitValues splits the inside of one VALUES tuple into raw value tokens.
// Commas inside quoted strings do not split. Blank input yields zero
// tokens; an empty token (as in "1,,2") or an unterminated quote is a
// MalformedLiteralError.
func SplitValues(inner string) ([]string, error) {
	segs, err := splitValues(inner, token.Begin())
	if err != nil {
		return nil, err
	}
	out := make([]string, len(segs))
	for i, seg := range segs {
		out[i] = seg.Text
	}
	return out, nil
}

func splitValues(inner string, base Position) ([]segment, error) {
	segs, err := splitTopLevel(inner, base)
	if err != nil {
		return nil, err
	}
	for _, seg := range segs {
		if seg.Text == "" {
			return nil, &MalformedLiteralError{Pos: seg.Pos, Message: errEmptyValue}
		}
	}
	return segs, nil
}

// ClassifyValue turns one raw value token into a cell:
// NULL (any case) is a NULL cell, a numeric literal is a number cell kept as
// written, a single quoted string is unquoted and unescaped, and anything
// else is kept verbatim as a string.
func ClassifyValue(raw string) core.Cell {
	switch {
	case strings.EqualFold(raw, core.NullLiteral):
		return core.Null()
	case isNumericLiteral(raw):
		return core.Number(raw)
	}
	if s, ok := Unquote(raw); ok {
		return core.String(s)
	}
	return core.String(raw)
}

// Unquote resolves a single-quoted SQL string literal. The escapes \', \\
// and \" and the doubled quote '' are resolved; any other backslash
// sequence is kept verbatim. ok is false when raw is not exactly one
// single-quoted literal.
func Unquote(raw string) (string, bool) {
	if len(raw) < 2 || raw[0] != '\'' {
		return "", false
	}
	if end, closed := skipQuotedAt(raw, 0); !closed || end != len(raw) {
		return "", false
	}

	inner := raw[1 : len(raw)-1]
	if !strings.ContainsAny(inner, `\'`) {
		return inner, true
	}

	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		ch := inner[i]
		switch {
		case ch == '\\' && i+1 < len(inner):
			switch next := inner[i+1]; next {
			case '\'', '\\', '"':
				b.WriteByte(next)
			default:
				b.WriteByte(ch)
				b.WriteByte(next)
			}
			i++
		case ch == '\'' && i+1 < len(inner) && inner[i+1] == '\'':
			b.WriteByte('\'')
			i++
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), true
}

// isNumericLiteral reports whether s is an optionally signed decimal with an
// optional fraction and exponent, such as 42, -3.5, .5 or 1e10.
func isNumericLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}
