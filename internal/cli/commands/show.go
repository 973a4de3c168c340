package commands

import (
	"errors"

	"github.com/leapstack-labs/dumpnav/internal/cli/output"
	"github.com/leapstack-labs/dumpnav/pkg/core"
	"github.com/leapstack-labs/dumpnav/pkg/search"
	"github.com/spf13/cobra"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	Search string
	Offset int
	Limit  int
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <file> <table>",
		Short: "Print rows of a table",
		Long: `Print one page of rows from a table in the selected output format.

With --search only rows where some cell contains the query
(case-insensitive) are printed. --offset and --limit count rows after
filtering.`,
		Example: `  dumpnav show backup.sql users
  dumpnav show backup.sql users --search alice
  dumpnav show backup.sql orders --offset 100 --limit 50 -o csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Offset < 0 {
				return errors.New("--offset must not be negative")
			}
			if opts.Limit < 0 {
				return errors.New("--limit must not be negative")
			}
			cc, err := NewCommandContext(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := cc.table(args[1])
			if err != nil {
				return err
			}
			return cc.Renderer.Table(showResult(t, opts, cc.Cfg.NullDisplay))
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "Only rows containing this text")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Rows to skip")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum rows to print (0 for all)")

	return cmd
}

func showResult(t *core.Table, opts *ShowOptions, null string) output.Table {
	var rows []int
	if opts.Search != "" {
		rows = search.Rows(t, opts.Search)
	} else {
		rows = make([]int, len(t.Rows))
		for i := range rows {
			rows[i] = i
		}
	}

	start := min(opts.Offset, len(rows))
	end := len(rows)
	if opts.Limit > 0 {
		end = min(start+opts.Limit, end)
	}

	res := output.Table{Columns: t.ColumnNames(), Null: null}
	for _, i := range rows[start:end] {
		res.Rows = append(res.Rows, cellPtrs(t.Rows[i]))
	}
	return res
}
