// Package parser turns MySQL dump text into a core.Database.
//
// The parser is deliberately narrow: it recognizes CREATE TABLE and
// INSERT INTO statements and skips everything else (comments, SET, LOCK
// TABLES, DROP TABLE, engine trailers).
//
// # Usage
//
//	db, err := parser.Parse(dump, parser.WithLogger(logger))
//	if err != nil {
//	    // *MalformedLiteralError, *SchemaParseError, *RowParseError,
//	    // *UnknownTableError or *DumpParseError
//	}
//
// # Pipeline
//
//	Scanner          splits the dump into top-level ';'-terminated statements
//	ParseCreateTable table name and columns from one CREATE TABLE
//	ParseInsert      table name, column list and raw tuples from one INSERT
//	SplitValues      raw value tokens of one tuple
//	ClassifyValue    NULL, number or unescaped string cell
package parser

import (
	"log/slog"

	"github.com/leapstack-labs/dumpnav/pkg/core"
)

// Option configures Parse.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger logs each table found and each INSERT applied at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Parse parses a whole dump. It stops at the first error. A dump with no
// CREATE TABLE statement fails with *DumpParseError.
func Parse(input string, opts ...Option) (*core.Database, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	db := core.NewDatabase()
	sc := NewScanner(input)
	statements := 0
	for {
		stmt, ok, err := sc.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		statements++

		switch stmt.Kind {
		case StatementCreateTable:
			if err := applyCreateTable(db, stmt, o.logger); err != nil {
				return nil, err
			}
		case StatementInsert:
			if err := applyInsert(db, stmt, o.logger); err != nil {
				return nil, err
			}
		}
	}

	if db.Len() == 0 {
		return nil, &DumpParseError{Statements: statements, Message: "no CREATE TABLE statements found"}
	}
	o.logger.Debug("parsed dump", "tables", db.Len(), "statements", statements)
	return db, nil
}

func applyCreateTable(db *core.Database, stmt Statement, logger *slog.Logger) error {
	table, err := parseCreateTable(stmt.Text, stmt.Pos)
	if err != nil {
		return err
	}
	if !db.Add(table) {
		return &SchemaParseError{
			Pos:     stmt.Pos,
			Table:   table.Name,
			Message: "table declared more than once",
		}
	}
	logger.Debug("found table",
		"table", table.Name,
		"columns", len(table.Columns),
		"line", stmt.Pos.Line)
	return nil
}

func applyInsert(db *core.Database, stmt Statement, logger *slog.Logger) error {
	ins, err := parseInsert(stmt.Text, stmt.Pos)
	if err != nil {
		return err
	}
	table, ok := db.Table(ins.Table)
	if !ok {
		return &UnknownTableError{Pos: stmt.Pos, Table: ins.Table}
	}
	rows, err := ins.Rows(table)
	if err != nil {
		return err
	}
	table.Rows = append(table.Rows, rows...)
	logger.Debug("inserted rows",
		"table", table.Name,
		"rows", len(rows),
		"total", len(table.Rows),
		"line", stmt.Pos.Line)
	return nil
}
