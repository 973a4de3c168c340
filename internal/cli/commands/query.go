package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/dumpnav/internal/cli/output"
	"github.com/leapstack-labs/dumpnav/pkg/adapter"
	"github.com/spf13/cobra"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Input string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query <file> [SQL]",
		Short: "Run SQL over a dump",
		Long: `Load a dump into an in-memory SQLite database and run read-only SQL
against it.

Column types are mapped to SQLite affinities (INTEGER, REAL, TEXT) so
numeric comparisons and aggregates behave as expected. Statements that
would modify the data are rejected.

When invoked without SQL on a terminal, enters interactive REPL mode.`,
		Example: `  # Execute SQL directly
  dumpnav query backup.sql "SELECT count(*) FROM users"

  # Read SQL from a file
  dumpnav query backup.sql --input report.sql -o csv

  # Pipe SQL on stdin
  echo "SELECT * FROM orders LIMIT 5" | dumpnav query backup.sql

  # Interactive mode
  dumpnav query backup.sql`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	cc, err := NewCommandContext(cmd, args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	m, err := adapter.Open(ctx, cc.DB, cc.Logger)
	if err != nil {
		return fmt.Errorf("%s: %w", cc.Path, err)
	}
	defer func() { _ = m.Close() }()

	var sqlQuery string
	switch {
	case len(args) > 1:
		sqlQuery = strings.Join(args[1:], " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !isTerminal(cmd.InOrStdin()):
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	default:
		return runQueryREPL(cmd, cc, m)
	}

	return executeAndRender(ctx, cc.Renderer, m, sqlQuery, cc.Cfg.NullDisplay)
}

func executeAndRender(ctx context.Context, r *output.Renderer, m *adapter.Mirror, sqlQuery, null string) error {
	sqlQuery = strings.TrimSpace(sqlQuery)
	if sqlQuery == "" {
		return errors.New("no SQL given")
	}
	rows, err := m.Query(ctx, sqlQuery)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if err := renderResults(r, rows, null); err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	return nil
}

func isTerminal(v any) bool {
	return output.IsTerminal(v)
}
