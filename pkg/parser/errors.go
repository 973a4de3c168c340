package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/dumpnav/pkg/token"
)

// Sentinel errors, one per failure class. Every concrete error below
// unwraps to exactly one of these.
var (
	ErrMalformedLiteral = errors.New("malformed literal")
	ErrSchemaParse      = errors.New("schema parse error")
	ErrRowParse         = errors.New("row parse error")
	ErrUnknownTable     = errors.New("unknown table")
	ErrNoTables         = errors.New("no tables found")
)

// MalformedLiteralError reports an unterminated quote or an empty value.
type MalformedLiteralError struct {
	Pos     Position
	Table   string // empty when the literal is outside a known table
	Message string
}

func (e *MalformedLiteralError) Error() string {
	return fmt.Sprintf("malformed literal%s at %s: %s", inTable(e.Table), e.Pos, e.Message)
}

// Unwrap returns ErrMalformedLiteral.
func (e *MalformedLiteralError) Unwrap() error { return ErrMalformedLiteral }

// SchemaParseError reports a CREATE TABLE statement that could not be read.
type SchemaParseError struct {
	Pos     Position
	Table   string
	Message string
}

func (e *SchemaParseError) Error() string {
	return fmt.Sprintf("schema parse error%s at %s: %s", inTable(e.Table), e.Pos, e.Message)
}

// Unwrap returns ErrSchemaParse.
func (e *SchemaParseError) Unwrap() error { return ErrSchemaParse }

// RowParseError reports an INSERT statement whose tuples do not fit the
// declared table. Tuple is the 1-based tuple number within the statement,
// zero when the error is not tied to one tuple.
type RowParseError struct {
	Pos      Position
	Table    string
	Tuple    int
	Expected int
	Got      int
	Message  string
}

func (e *RowParseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("tuple has %d values, expected %d", e.Got, e.Expected)
	}
	if e.Tuple > 0 {
		msg = fmt.Sprintf("tuple %d: %s", e.Tuple, msg)
	}
	return fmt.Sprintf("row parse error%s at %s: %s", inTable(e.Table), e.Pos, msg)
}

// Unwrap returns ErrRowParse.
func (e *RowParseError) Unwrap() error { return ErrRowParse }

// UnknownTableError reports an INSERT into a table with no preceding CREATE TABLE.
type UnknownTableError struct {
	Pos   Position
	Table string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown table `%s` at %s: INSERT INTO precedes any CREATE TABLE for it", e.Table, e.Pos)
}

// Unwrap returns ErrUnknownTable.
func (e *UnknownTableError) Unwrap() error { return ErrUnknownTable }

// DumpParseError reports a dump that yields no tables at all.
type DumpParseError struct {
	Statements int // statements scanned
	Message    string
}

func (e *DumpParseError) Error() string {
	return fmt.Sprintf("dump parse error: %s (%d statements scanned)", e.Message, e.Statements)
}

// Unwrap returns ErrNoTables.
func (e *DumpParseError) Unwrap() error { return ErrNoTables }

// Position is re-exported so callers of this package need not import token.
type Position = token.Position

func inTable(name string) string {
	if name == "" {
		return ""
	}
	return fmt.Sprintf(" in table `%s`", name)
}

// Common error messages
const (
	errUnterminatedString = "unterminated string literal"
	errUnterminatedIdent  = "unterminated quoted identifier"
	errEmptyValue         = "empty value"
	errUnbalancedParens   = "unbalanced parentheses"
)
