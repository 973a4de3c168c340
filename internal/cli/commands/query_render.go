package commands

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leapstack-labs/dumpnav/internal/cli/output"
	"github.com/leapstack-labs/dumpnav/pkg/adapter"
)

// renderResults drains rows and writes them with r.
func renderResults(r *output.Renderer, rows *sql.Rows, null string) error {
	res, err := resultTable(rows, null)
	if err != nil {
		return err
	}
	if len(res.Rows) == 0 && r.EffectiveMode() == output.ModeText {
		r.Muted("(0 rows)")
		return nil
	}
	return r.Table(res)
}

func resultTable(rows *sql.Rows, null string) (output.Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return output.Table{}, err
	}

	res := output.Table{Columns: cols, Null: null}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return output.Table{}, err
		}

		row := make([]*string, len(cols))
		for i, v := range values {
			if v == nil {
				continue
			}
			s := formatValue(v)
			row[i] = &s
		}
		res.Rows = append(res.Rows, row)
	}
	return res, rows.Err()
}

func formatValue(v any) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

func listTablesFromMirror(ctx context.Context, r *output.Renderer, m *adapter.Mirror) error {
	rows, err := m.Query(ctx, `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table'
		AND name NOT LIKE 'sqlite_%'
		ORDER BY rowid
	`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	return renderResults(r, rows, "")
}

func showSchemaFromMirror(ctx context.Context, r *output.Renderer, m *adapter.Mirror, tableName string) error {
	rows, err := m.Query(ctx, `SELECT name, type FROM pragma_table_info(?)`, tableName)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	res, err := resultTable(rows, "")
	if err != nil {
		return err
	}
	if len(res.Rows) == 0 {
		return fmt.Errorf("no table named %q", tableName)
	}
	res.Columns = []string{"column", "type"}
	return r.Table(res)
}
