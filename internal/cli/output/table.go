package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table is a rectangular result: column names and rows of display strings.
// A nil cell is NULL and is written as Null, or "NULL" when Null is empty.
type Table struct {
	Columns []string
	Rows    [][]*string
	Null    string
}

// Table writes t in the effective mode. JSON emits an array of objects
// keyed by column name with null for NULL cells.
func (r *Renderer) Table(t Table) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(t.Records())
	case ModeCSV:
		r.Println(prettyTable(t).RenderCSV())
	case ModeMarkdown:
		r.Println(prettyTable(t).RenderMarkdown())
	default:
		tw := prettyTable(t)
		tw.SetStyle(table.StyleLight)
		tw.Style().Format.Header = text.FormatDefault
		r.Println(tw.Render())
	}
	return nil
}

// Records converts t to one map per row for JSON output.
func (t Table) Records() []map[string]any {
	out := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) && row[i] != nil {
				rec[col] = *row[i]
			} else {
				rec[col] = nil
			}
		}
		out = append(out, rec)
	}
	return out
}

func prettyTable(t Table) table.Writer {
	null := t.Null
	if null == "" {
		null = "NULL"
	}
	tw := table.NewWriter()
	header := make(table.Row, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	tw.AppendHeader(header)
	for _, row := range t.Rows {
		r := make(table.Row, len(t.Columns))
		for i := range t.Columns {
			if i < len(row) && row[i] != nil {
				r[i] = *row[i]
			} else {
				r[i] = null
			}
		}
		tw.AppendRow(r)
	}
	return tw
}
