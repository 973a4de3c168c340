package parser

import (
	"strings"

	"github.com/leapstack-labs/dumpnav/pkg/core"
	"github.com/leapstack-labs/dumpnav/pkg/token"
)

// constraintKeywords start a definition line that is not a column.
var constraintKeywords = map[string]bool{
	"PRIMARY":    true,
	"KEY":        true,
	"INDEX":      true,
	"UNIQUE":     true,
	"CONSTRAINT": true,
	"FOREIGN":    true,
	"FULLTEXT":   true,
	"SPATIAL":    true,
	"CHECK":      true,
}

// typeStopKeywords end the declared type of a column definition.
var typeStopKeywords = map[string]bool{
	"NOT":            true,
	"NULL":           true,
	"DEFAULT":        true,
	"AUTO_INCREMENT": true,
	"PRIMARY":        true,
	"UNIQUE":         true,
	"KEY":            true,
	"COMMENT":        true,
	"COLLATE":        true,
	"CHARACTER":      true,
	"CHARSET":        true,
	"GENERATED":      true,
	"AS":             true,
	"ON":             true,
	"REFERENCES":     true,
	"CHECK":          true,
	"VISIBLE":        true,
	"INVISIBLE":      true,
	"STORED":         true,
	"VIRTUAL":        true,
	"SRID":           true,
	"COLUMN_FORMAT":  true,
	"STORAGE":        true,
	"CONSTRAINT":     true,
}

// ParseCreateTable reads the table name and ordered column definitions from
// the text of one CREATE TABLE statement. The returned table has no rows.
func ParseCreateTable(text string) (*core.Table, error) {
	return parseCreateTable(text, token.Begin())
}

func parseCreateTable(text string, base Position) (*core.Table, error) {
	tr := newTracker(text, base)

	i, ok := matchCreateTable(text)
	if !ok {
		return nil, &SchemaParseError{Pos: base, Message: "not a CREATE TABLE statement"}
	}
	name, next, ok := readIdentifier(text, i)
	if next < 0 {
		return nil, &MalformedLiteralError{Pos: tr.at(i), Message: errUnterminatedIdent}
	}
	if !ok {
		return nil, &SchemaParseError{Pos: tr.at(i), Message: "missing table name"}
	}

	open := skipSpaces(text, next)
	if open >= len(text) || text[open] != '(' {
		return nil, &SchemaParseError{Pos: tr.at(open), Table: name, Message: "missing column definitions"}
	}
	end, quoteAt, ok := findClosingParen(text, open)
	if quoteAt >= 0 {
		return nil, &MalformedLiteralError{Pos: tr.at(quoteAt), Table: name, Message: errUnterminatedString}
	}
	if !ok {
		return nil, &SchemaParseError{Pos: tr.at(open), Table: name, Message: errUnbalancedParens}
	}

	defs, err := splitTopLevel(text[open+1:end], tr.at(open+1))
	if err != nil {
		return nil, withTable(err, name)
	}

	table := &core.Table{Name: name}
	for _, def := range defs {
		if col, ok := parseColumnDef(def.Text); ok {
			table.Columns = append(table.Columns, col)
		}
	}
	if len(table.Columns) == 0 {
		return nil, &SchemaParseError{Pos: base, Table: name, Message: "no column definitions found"}
	}
	return table, nil
}

// parseColumnDef reads one definition line. ok is false for index and
// constraint lines. A line starting with a backtick-quoted name is always a
// column; a bare leading word is a column unless it is a constraint keyword.
func parseColumnDef(line string) (core.Column, bool) {
	if line == "" {
		return core.Column{}, false
	}
	name, next, ok := readIdentifierPart(line, 0)
	if !ok || next < 0 {
		return core.Column{}, false
	}
	if line[0] != '`' && constraintKeywords[strings.ToUpper(name)] {
		return core.Column{}, false
	}
	return core.Column{Name: name, Type: declaredType(line[next:])}, true
}

// declaredType returns the type words at the start of s, with their
// parenthesized modifiers, up to the first column attribute keyword.
func declaredType(s string) string {
	i := skipSpaces(s, 0)
	start, end := i, i
	for i < len(s) {
		switch {
		case isSpace(s[i]):
			i = skipSpaces(s, i)
			continue
		case s[i] == '(':
			closeAt, _, ok := findClosingParen(s, i)
			if !ok {
				return s[start:end]
			}
			i = closeAt + 1
			end = i
			continue
		}

		j := i
		for j < len(s) && isIdentChar(s[j]) {
			j++
		}
		if j == i || typeStopKeywords[strings.ToUpper(s[i:j])] {
			break
		}
		i, end = j, j
	}
	return s[start:end]
}

// withTable fills in the table name on errors raised below statement level.
func withTable(err error, table string) error {
	switch e := err.(type) {
	case *MalformedLiteralError:
		if e.Table == "" {
			e.Table = table
		}
	case *RowParseError:
		if e.Table == "" {
			e.Table = table
		}
	}
	return err
}
