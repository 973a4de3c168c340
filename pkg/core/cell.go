package core

import "fmt"

// NullLiteral is the fixed text shown for NULL cells.
const NullLiteral = "NULL"

// CellKind tags how a cell was written in the dump.
type CellKind uint8

// Cell kinds.
const (
	CellString CellKind = iota
	CellNumber
	CellNull
)

// String returns the lowercase kind name.
func (k CellKind) String() string {
	switch k {
	case CellString:
		return "string"
	case CellNumber:
		return "number"
	case CellNull:
		return "null"
	default:
		return fmt.Sprintf("CellKind(%d)", uint8(k))
	}
}

// Cell is one scalar value of a row.
// Text holds the display form: the unquoted, unescaped string for CellString,
// the literal as written for CellNumber, and is empty for CellNull.
type Cell struct {
	Kind CellKind
	Text string
}

// String returns a string cell.
func String(s string) Cell {
	return Cell{Kind: CellString, Text: s}
}

// Number returns a number cell holding the literal as written.
func Number(literal string) Cell {
	return Cell{Kind: CellNumber, Text: literal}
}

// Null returns a NULL cell.
func Null() Cell {
	return Cell{Kind: CellNull}
}

// IsNull reports whether the cell is NULL.
func (c Cell) IsNull() bool {
	return c.Kind == CellNull
}

// Display returns the text to render, substituting nullText for NULL cells.
func (c Cell) Display(nullText string) string {
	if c.Kind == CellNull {
		return nullText
	}
	return c.Text
}

// String implements fmt.Stringer using NullLiteral for NULL cells.
func (c Cell) String() string {
	return c.Display(NullLiteral)
}
