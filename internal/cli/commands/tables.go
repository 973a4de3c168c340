package commands

import (
	"strconv"

	"github.com/leapstack-labs/dumpnav/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables <file>",
		Short: "List the tables of a dump",
		Long: `List every table found in a MySQL dump, in dump order, with its
column and row counts.`,
		Example: `  dumpnav tables backup.sql
  dumpnav tables backup.sql.gz -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd, args[0])
			if err != nil {
				return err
			}
			return cc.Renderer.Table(tablesResult(cc))
		},
	}
}

func tablesResult(cc *CommandContext) output.Table {
	res := output.Table{Columns: []string{"table", "columns", "rows"}}
	for _, t := range cc.DB.Tables() {
		name := t.Name
		cols := strconv.Itoa(len(t.Columns))
		rows := strconv.Itoa(len(t.Rows))
		res.Rows = append(res.Rows, []*string{&name, &cols, &rows})
	}
	return res
}
