// Package commands implements the dumpnav subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/dumpnav/internal/cli/config"
	"github.com/leapstack-labs/dumpnav/internal/cli/output"
	"github.com/leapstack-labs/dumpnav/internal/loader"
	"github.com/leapstack-labs/dumpnav/pkg/core"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	DB       *core.Database
	Path     string
}

// NewCommandContext loads the dump at path and builds a renderer for the
// configured output format.
func NewCommandContext(cmd *cobra.Command, path string) (*CommandContext, error) {
	cc := NewCommandContextWithoutDump(cmd)
	db, err := loader.Load(cmd.Context(), path, cc.Logger)
	if err != nil {
		return nil, err
	}
	cc.DB = db
	cc.Path = path
	return cc, nil
}

// NewCommandContextWithoutDump creates a CommandContext with no dump loaded.
func NewCommandContextWithoutDump(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	if cfg.NoColor {
		r.DisableColor()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// table looks up name, wrapping the miss with the dump path.
func (cc *CommandContext) table(name string) (*core.Table, error) {
	t, ok := cc.DB.Table(name)
	if !ok {
		return nil, fmt.Errorf("%s: no table named %q", cc.Path, name)
	}
	return t, nil
}

// cellPtrs converts a row to output cells, nil for NULL.
func cellPtrs(row core.Row) []*string {
	out := make([]*string, len(row))
	for i, c := range row {
		if c.IsNull() {
			continue
		}
		text := c.Text
		out[i] = &text
	}
	return out
}
