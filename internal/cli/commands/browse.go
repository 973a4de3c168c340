package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/leapstack-labs/dumpnav/internal/cli/config"
	"github.com/leapstack-labs/dumpnav/internal/plain"
	"github.com/leapstack-labs/dumpnav/internal/tui"
	"github.com/leapstack-labs/dumpnav/pkg/navigator"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file>",
		Short: "Navigate a dump interactively",
		Long: `Open a MySQL dump and page through its tables.

The full-screen view is used on a terminal. With --plain, or when stdin or
stdout is not a terminal, a line-oriented prompt is used instead.

Keys (full-screen) and commands (plain):
  n / p     next / previous page
  l / r     scroll columns left / right
  j / k     move the selection (table list)
  /         search rows, or filter tables in the list
  c         clear the search
  s         choose another table
  q         quit`,
		Example: `  dumpnav browse backup.sql
  dumpnav browse backup.sql.zst --plain
  dumpnav backup.sql`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunBrowse(cmd, args[0])
		},
	}
}

// RunBrowse opens the dump at path and runs a navigation session on the
// command's input and output.
func RunBrowse(cmd *cobra.Command, path string) error {
	cc, err := NewCommandContext(cmd, path)
	if err != nil {
		return err
	}

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	interactive := cc.Cfg.Mode != config.ModePlain && isTerminal(in) && isTerminal(out)
	width, height := terminalSize(out)

	base := navigator.Config{
		Width:         width,
		Height:        height,
		MaxCellWidth:  cc.Cfg.MaxCellWidth,
		TablePageSize: cc.Cfg.TablePageSize,
		NullDisplay:   cc.Cfg.NullDisplay,
	}
	cc.Logger.Debug("starting session",
		"path", path,
		"tables", cc.DB.Len(),
		"interactive", interactive,
		"width", width,
		"height", height)

	if interactive {
		return runInteractive(cmd, cc, base)
	}
	return runPlain(cmd, cc, base, width)
}

func runInteractive(cmd *cobra.Command, cc *CommandContext, base navigator.Config) error {
	// stderr shares the screen with the full-screen view.
	logger := cc.Logger
	if cc.Cfg.LogFile == "" {
		logger = slog.New(slog.DiscardHandler)
	}

	eng := navigator.New(cc.DB, base)
	styles := tui.NewStyles(lipgloss.NewRenderer(cmd.OutOrStdout()), cc.Cfg.NoColor)
	return tui.Run(cmd.Context(), eng, styles, logger, tui.Options{
		Input:     cmd.InOrStdin(),
		Output:    cmd.OutOrStdout(),
		AltScreen: true,
	})
}

func runPlain(cmd *cobra.Command, cc *CommandContext, base navigator.Config, width int) error {
	eng := navigator.New(cc.DB, plain.EngineConfig(base, width, cc.Cfg.PageSize))

	in, closeIn, err := lineReader(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeIn()

	return plain.New(eng, in, cmd.OutOrStdout(), cc.Logger).Run(cmd.Context())
}

// lineReader uses readline on a terminal and a plain scanner otherwise.
func lineReader(in io.Reader, out io.Writer) (plain.LineReader, func(), error) {
	if !isTerminal(in) {
		return plain.NewScanReader(in, out), func() {}, nil
	}
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "q",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize prompt: %w", err)
	}
	return rl, func() { _ = rl.Close() }, nil
}

// terminalSize returns the size of w, or the navigator defaults when w is
// not a terminal.
func terminalSize(w io.Writer) (int, int) {
	if f, ok := w.(*os.File); ok {
		if width, height, err := term.GetSize(int(f.Fd())); err == nil { //nolint:gosec // fd fits in int
			return width, height
		}
	}
	return navigator.DefaultWidth, navigator.DefaultHeight
}
