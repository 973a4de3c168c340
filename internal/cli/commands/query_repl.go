package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/dumpnav/internal/plain"
	"github.com/leapstack-labs/dumpnav/pkg/adapter"
	"github.com/spf13/cobra"
)

const (
	replPrompt     = "dumpnav> "
	replContPrompt = "    ...> "
)

func runQueryREPL(cmd *cobra.Command, cc *CommandContext, m *adapter.Mirror) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile(),
		AutoComplete:    newTableCompleter(cc.DB.Names()),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	cc.Renderer.Printf("dumpnav query REPL (%s, %d tables)\n", cc.Path, cc.DB.Len())
	cc.Renderer.Println("Type .help for commands, .quit to exit")
	cc.Renderer.Println("")

	return repl(cmd.Context(), rl, cc, m)
}

// historyFile returns the REPL history path in the user's cache directory,
// or "" when there is none.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "dumpnav")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return ""
	}
	return filepath.Join(dir, "query_history")
}

// repl reads statements until .quit or EOF. SQL accumulates over lines
// until one ends with a semicolon.
func repl(ctx context.Context, rl plain.LineReader, cc *CommandContext, m *adapter.Mirror) error {
	var multiLineBuffer strings.Builder
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if multiLineBuffer.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(ctx, cc, m, line); quit {
				return nil
			}
			continue
		}

		multiLineBuffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			multiLineBuffer.WriteString(" ")
			rl.SetPrompt(replContPrompt)
			continue
		}
		rl.SetPrompt(replPrompt)

		query := strings.TrimSuffix(multiLineBuffer.String(), ";")
		multiLineBuffer.Reset()

		if err := executeAndRender(ctx, cc.Renderer, m, query, cc.Cfg.NullDisplay); err != nil {
			cc.Renderer.Error(err.Error())
		}
		cc.Renderer.Println("")
	}
}

// handleDotCommand runs a REPL command and reports whether the REPL should
// exit.
func handleDotCommand(ctx context.Context, cc *CommandContext, m *adapter.Mirror, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		cc.Renderer.Println(replHelp)

	case ".tables":
		if err := listTablesFromMirror(ctx, cc.Renderer, m); err != nil {
			cc.Renderer.Error(err.Error())
		}

	case ".schema":
		if len(parts) < 2 {
			cc.Renderer.Error("usage: .schema <table>")
			return false
		}
		if err := showSchemaFromMirror(ctx, cc.Renderer, m, parts[1]); err != nil {
			cc.Renderer.Error(err.Error())
		}

	default:
		cc.Renderer.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", command))
	}
	return false
}

const replHelp = `
Commands:
  .help           Show this help message
  .tables         List all tables
  .schema <name>  Show columns of a table
  .quit / .exit   Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for table names`

// newTableCompleter creates a readline completer for table names and
// dot-commands.
func newTableCompleter(tables []string) *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(tables)+5)
	for _, name := range tables {
		items = append(items, readline.PcItem(name))
	}

	schema := make([]readline.PrefixCompleterInterface, 0, len(tables))
	for _, name := range tables {
		schema = append(schema, readline.PcItem(name))
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".schema", schema...),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)

	return readline.NewPrefixCompleter(items...)
}
