package commands

import (
	"github.com/leapstack-labs/dumpnav/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file> <table>",
		Short: "Show the columns of a table",
		Long:  `Show the column names and declared MySQL types of one table in a dump.`,
		Example: `  dumpnav schema backup.sql users
  dumpnav schema backup.sql users -o markdown`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := cc.table(args[1])
			if err != nil {
				return err
			}

			res := output.Table{Columns: []string{"column", "type"}}
			for _, c := range t.Columns {
				name, typ := c.Name, c.Type
				res.Rows = append(res.Rows, []*string{&name, &typ})
			}
			return cc.Renderer.Table(res)
		},
	}
}
