package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no dumpnav env vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("NO_COLOR", "")
	for _, key := range []string{"MODE", "VERBOSE", "OUTPUT", "MAX_CELL_WIDTH", "TABLE_PAGE_SIZE", "PAGE_SIZE", "NULL_DISPLAY", "NO_COLOR", "LOG_FILE"} {
		t.Setenv(EnvPrefix+key, "")
		require.NoError(t, os.Unsetenv(EnvPrefix+key))
	}
	ResetConfig()
	return dir
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("dumpnav", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.StringP("output", "o", "", "")
	fs.Bool("plain", false, "")
	fs.Int("max-cell-width", 0, "")
	fs.Int("page-size", 0, "")
	fs.String("null-display", "", "")
	fs.Bool("no-color", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_Precedence(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		env    map[string]string
		args   []string
		assert func(t *testing.T, cfg *Config)
	}{
		{
			name: "file overrides defaults",
			file: "max_cell_width: 40\noutput: json\nnull_display: \"∅\"\n",
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 40, cfg.MaxCellWidth)
				assert.Equal(t, OutputJSON, cfg.OutputFormat)
				assert.Equal(t, "∅", cfg.NullDisplay)
				assert.Equal(t, DefaultTablePageSize, cfg.TablePageSize)
			},
		},
		{
			name: "env overrides file",
			file: "max_cell_width: 40\n",
			env:  map[string]string{"DUMPNAV_MAX_CELL_WIDTH": "50", "DUMPNAV_MODE": "plain"},
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 50, cfg.MaxCellWidth)
				assert.Equal(t, ModePlain, cfg.Mode)
			},
		},
		{
			name: "flags override env",
			env:  map[string]string{"DUMPNAV_MAX_CELL_WIDTH": "50"},
			args: []string{"--max-cell-width=60", "-v", "--output", "CSV"},
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 60, cfg.MaxCellWidth)
				assert.True(t, cfg.Verbose)
				assert.Equal(t, OutputCSV, cfg.OutputFormat)
			},
		},
		{
			name: "plain flag sets mode",
			file: "mode: interactive\n",
			args: []string{"--plain"},
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ModePlain, cfg.Mode)
			},
		},
		{
			name: "unset flags do not override",
			file: "page_size: 7\n",
			args: []string{"--no-color"},
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7, cfg.PageSize)
				assert.True(t, cfg.NoColor)
			},
		},
		{
			name: "NO_COLOR",
			env:  map[string]string{"NO_COLOR": "1"},
			assert: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.NoColor)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if tt.file != "" {
				writeConfig(t, dir, "dumpnav.yaml", tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig("", testFlags(t, tt.args...))
			require.NoError(t, err)
			tt.assert(t, cfg)
			if tt.file != "" {
				assert.Equal(t, "dumpnav.yaml", GetConfigFileUsed())
			}
		})
	}
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "custom.yml", "table_page_size: 5\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.TablePageSize)
	assert.Equal(t, path, GetConfigFileUsed())

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		errSubstr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad mode", mutate: func(c *Config) { c.Mode = "curses" }, errSubstr: "invalid mode"},
		{name: "bad output", mutate: func(c *Config) { c.OutputFormat = "xml" }, errSubstr: "invalid output format"},
		{name: "narrow cells", mutate: func(c *Config) { c.MaxCellWidth = 3 }, errSubstr: "max_cell_width"},
		{name: "zero table page", mutate: func(c *Config) { c.TablePageSize = 0 }, errSubstr: "table_page_size"},
		{name: "negative page", mutate: func(c *Config) { c.PageSize = -1 }, errSubstr: "page_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	isolate(t)
	t.Setenv("DUMPNAV_OUTPUT", "xml")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()

	quiet, closeFn, err := NewLogger(&Config{}, os.Stderr)
	require.NoError(t, err)
	require.NoError(t, closeFn())
	assert.False(t, quiet.Enabled(ctx, slog.LevelDebug))
	assert.True(t, quiet.Enabled(ctx, slog.LevelWarn))

	path := filepath.Join(t.TempDir(), "dumpnav.log")
	verbose, closeFn, err := NewLogger(&Config{Verbose: true, LogFile: path}, os.Stderr)
	require.NoError(t, err)
	verbose.Debug("hello", "k", 1)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello k=1")
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	assert.NotNil(t, GetLogger(ctx))
	assert.Equal(t, Default(), GetConfig(ctx))

	logger := slog.New(slog.DiscardHandler)
	cfg := &Config{Mode: ModePlain}
	ctx = WithConfig(WithLogger(ctx, logger), cfg)
	assert.Same(t, logger, GetLogger(ctx))
	assert.Same(t, cfg, GetConfig(ctx))
}
