package parser

import (
	"fmt"

	"github.com/leapstack-labs/dumpnav/pkg/core"
	"github.com/leapstack-labs/dumpnav/pkg/token"
)

// Tuple is one parenthesized value list with its raw, unclassified tokens.
type Tuple struct {
	Values []string
	Pos    Position // position of the opening '('
}

// Insert is one INSERT INTO statement before it is matched to a table.
type Insert struct {
	Table   string
	Columns []string // explicit column list; nil when omitted
	Tuples  []Tuple
	Pos     Position
}

// ParseInsert reads the table name, optional column list and value tuples
// from the text of one INSERT INTO statement. Parsing ends at the end of the
// text or at an ON DUPLICATE KEY UPDATE clause.
func ParseInsert(text string) (*Insert, error) {
	return parseInsert(text, token.Begin())
}

func parseInsert(text string, base Position) (*Insert, error) {
	tr := newTracker(text, base)

	i, ok := matchInsert(text)
	if !ok {
		return nil, &RowParseError{Pos: base, Message: "not an INSERT INTO statement"}
	}
	name, next, ok := readIdentifier(text, i)
	if next < 0 {
		return nil, &MalformedLiteralError{Pos: tr.at(i), Message: errUnterminatedIdent}
	}
	if !ok {
		return nil, &RowParseError{Pos: tr.at(i), Message: "missing table name"}
	}
	ins := &Insert{Table: name, Pos: base}

	j := skipSpaces(text, next)
	if j < len(text) && text[j] == '(' {
		cols, end, err := parseColumnList(text, j, tr)
		if err != nil {
			return nil, withTable(err, name)
		}
		ins.Columns = cols
		j = end
	}

	after, ok := matchKeywords(text, j, "VALUES")
	if !ok {
		after, ok = matchKeywords(text, j, "VALUE")
	}
	if !ok {
		return nil, &RowParseError{Pos: tr.at(skipSpaces(text, j)), Table: name, Message: "expected VALUES"}
	}

	for j = skipSpaces(text, after); ; j = skipSpaces(text, j) {
		if j >= len(text) || text[j] != '(' {
			return nil, &RowParseError{
				Pos:     tr.at(j),
				Table:   name,
				Tuple:   len(ins.Tuples) + 1,
				Message: "expected '(' to start a value tuple",
			}
		}
		end, quoteAt, ok := findClosingParen(text, j)
		if quoteAt >= 0 {
			return nil, &MalformedLiteralError{Pos: tr.at(quoteAt), Table: name, Message: errUnterminatedString}
		}
		if !ok {
			return nil, &RowParseError{Pos: tr.at(j), Table: name, Tuple: len(ins.Tuples) + 1, Message: errUnbalancedParens}
		}

		pos := tr.at(j)
		segs, err := splitValues(text[j+1:end], tr.at(j+1))
		if err != nil {
			return nil, withTable(err, name)
		}
		values := make([]string, len(segs))
		for k, seg := range segs {
			values[k] = seg.Text
		}
		ins.Tuples = append(ins.Tuples, Tuple{Values: values, Pos: pos})

		j = skipSpaces(text, end+1)
		if j >= len(text) {
			return ins, nil
		}
		if text[j] == ',' {
			j++
			continue
		}
		if _, ok := matchKeywords(text, j, "ON", "DUPLICATE", "KEY", "UPDATE"); ok {
			return ins, nil
		}
		return nil, &RowParseError{Pos: tr.at(j), Table: name, Message: "unexpected text after value tuple"}
	}
}

// parseColumnList reads `(a, b, ...)` starting at text[open] and returns the
// names and the offset after the closing paren.
func parseColumnList(text string, open int, tr *tracker) ([]string, int, error) {
	end, quoteAt, ok := findClosingParen(text, open)
	if quoteAt >= 0 {
		return nil, 0, &MalformedLiteralError{Pos: tr.at(quoteAt), Message: errUnterminatedIdent}
	}
	if !ok {
		return nil, 0, &RowParseError{Pos: tr.at(open), Message: errUnbalancedParens}
	}
	segs, err := splitTopLevel(text[open+1:end], tr.at(open+1))
	if err != nil {
		return nil, 0, err
	}
	if len(segs) == 0 {
		return nil, 0, &RowParseError{Pos: tr.at(open), Message: "empty column list"}
	}

	cols := make([]string, len(segs))
	for k, seg := range segs {
		name, next, ok := readIdentifierPart(seg.Text, 0)
		if !ok || next != len(seg.Text) {
			return nil, 0, &RowParseError{Pos: seg.Pos, Message: fmt.Sprintf("invalid column name %q", seg.Text)}
		}
		cols[k] = name
	}
	return cols, end + 1, nil
}

// Rows classifies every tuple into a row of t. Each tuple must have exactly
// as many values as the explicit column list, or as t has columns when the
// list is omitted. With a column list, cells are placed in t's column order
// and unlisted columns are NULL.
func (ins *Insert) Rows(t *core.Table) ([]core.Row, error) {
	expected := len(t.Columns)
	var targets []int
	if ins.Columns != nil {
		expected = len(ins.Columns)
		targets = make([]int, len(ins.Columns))
		for k, name := range ins.Columns {
			idx := t.ColumnIndex(name)
			if idx < 0 {
				return nil, &RowParseError{
					Pos:     ins.Pos,
					Table:   t.Name,
					Message: fmt.Sprintf("column `%s` is not declared in the table", name),
				}
			}
			targets[k] = idx
		}
	}

	rows := make([]core.Row, 0, len(ins.Tuples))
	for n, tuple := range ins.Tuples {
		if len(tuple.Values) != expected {
			return nil, &RowParseError{
				Pos:      tuple.Pos,
				Table:    t.Name,
				Tuple:    n + 1,
				Expected: expected,
				Got:      len(tuple.Values),
			}
		}

		row := make(core.Row, len(t.Columns))
		if targets == nil {
			for k, raw := range tuple.Values {
				row[k] = ClassifyValue(raw)
			}
		} else {
			for k := range row {
				row[k] = core.Null()
			}
			for k, raw := range tuple.Values {
				row[targets[k]] = ClassifyValue(raw)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
