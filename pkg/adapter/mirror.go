// Package adapter mirrors a parsed dump into an in-memory SQLite database so
// it can be queried with ad-hoc, read-only SQL.
package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/dumpnav/pkg/core"

	// sqlite driver for the in-memory mirror.
	_ "modernc.org/sqlite"
)

// ErrNotConnected is returned by methods of a closed or zero Mirror.
var ErrNotConnected = errors.New("database connection not established")

// Mirror is an in-memory SQLite copy of a core.Database. Once opened it
// rejects writes.
type Mirror struct {
	DB     *sql.DB
	Logger *slog.Logger
}

// Open creates the mirror and loads every table of db into it.
func Open(ctx context.Context, db *core.Database, logger *slog.Logger) (*Mirror, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// Every connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)

	m := &Mirror{DB: conn, Logger: logger}
	if err := Load(ctx, conn, db, logger); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := m.Exec(ctx, "PRAGMA query_only = ON"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return m, nil
}

// Load creates one SQLite table per table of db and inserts its rows, one
// transaction per table.
func Load(ctx context.Context, conn *sql.DB, db *core.Database, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	for _, t := range db.Tables() {
		if _, err := conn.ExecContext(ctx, CreateTableSQL(t)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name, err)
		}
		if err := insertRows(ctx, conn, t); err != nil {
			return fmt.Errorf("failed to load table %s: %w", t.Name, err)
		}
		logger.Debug("mirrored table", "table", t.Name, "rows", len(t.Rows))
	}
	return nil
}

func insertRows(ctx context.Context, conn *sql.DB, t *core.Table) (err error) {
	if len(t.Rows) == 0 {
		return nil
	}
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, InsertSQL(t))
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range t.Rows {
		if _, err = stmt.ExecContext(ctx, RowArgs(row)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Close closes the database connection.
func (m *Mirror) Close() error {
	if m.DB != nil {
		if m.Logger != nil {
			m.Logger.Debug("closing mirror database")
		}
		return m.DB.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (m *Mirror) Exec(ctx context.Context, sqlStr string) error {
	if m.DB == nil {
		return ErrNotConnected
	}
	if _, err := m.DB.ExecContext(ctx, sqlStr); err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// Query executes a SQL statement that returns rows. The caller closes them
// and checks rows.Err.
func (m *Mirror) Query(ctx context.Context, sqlStr string, args ...any) (*sql.Rows, error) {
	if m.DB == nil {
		return nil, ErrNotConnected
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := m.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return rows, nil
}

// IsConnected returns true if the database connection is established.
func (m *Mirror) IsConnected() bool {
	return m.DB != nil
}

// CreateTableSQL returns the SQLite DDL for t.
func CreateTableSQL(t *core.Table) string {
	defs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		defs[i] = QuoteIdent(c.Name) + " " + Affinity(c.Type)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", QuoteIdent(t.Name), strings.Join(defs, ", "))
}

// InsertSQL returns a parameterized INSERT for one row of t.
func InsertSQL(t *core.Table) string {
	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = QuoteIdent(c.Name)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		QuoteIdent(t.Name), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

// RowArgs converts a row to statement arguments: nil for NULL, the literal
// text otherwise. SQLite column affinity turns numeric text into numbers.
func RowArgs(row core.Row) []any {
	args := make([]any, len(row))
	for i, c := range row {
		if c.IsNull() {
			args[i] = nil
			continue
		}
		args[i] = c.Text
	}
	return args
}

// Affinity maps a MySQL declared type to a SQLite column type.
func Affinity(declared string) string {
	switch baseType(declared) {
	case "int", "integer", "tinyint", "smallint", "mediumint", "bigint":
		return "INTEGER"
	case "dec", "decimal", "numeric", "fixed", "float", "double", "real":
		return "REAL"
	default:
		return "TEXT"
	}
}

// baseType returns the lower-cased type name before any "(", space or
// attribute, e.g. "bigint" for "bigint(20) unsigned".
func baseType(declared string) string {
	t := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexFunc(t, func(r rune) bool { return r < 'a' || r > 'z' }); i >= 0 {
		t = t[:i]
	}
	return t
}

// QuoteIdent quotes a SQLite identifier.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
