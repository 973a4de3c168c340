// Package config loads dumpnav settings from defaults, a YAML file, the
// environment and command-line flags, and carries the logger through the
// command context.
package config

// Modes.
const (
	ModeInteractive = "interactive"
	ModePlain       = "plain"
)

// Output formats.
const (
	OutputAuto     = "auto"
	OutputText     = "text"
	OutputMarkdown = "markdown"
	OutputJSON     = "json"
	OutputCSV      = "csv"
)

// Default configuration values.
const (
	DefaultMode          = ModeInteractive
	DefaultOutput        = OutputAuto // TTY=text, non-TTY=markdown
	DefaultMaxCellWidth  = 30
	DefaultTablePageSize = 20
	DefaultPageSize      = 10
	DefaultNullDisplay   = "NULL"
	MinCellWidth         = 4
)

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "DUMPNAV_"

// Config holds all CLI configuration options.
type Config struct {
	Mode          string `koanf:"mode"`
	Verbose       bool   `koanf:"verbose"`
	OutputFormat  string `koanf:"output"`
	MaxCellWidth  int    `koanf:"max_cell_width"`
	TablePageSize int    `koanf:"table_page_size"`
	PageSize      int    `koanf:"page_size"`
	NullDisplay   string `koanf:"null_display"`
	NoColor       bool   `koanf:"no_color"`
	LogFile       string `koanf:"log_file"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Mode:          DefaultMode,
		OutputFormat:  DefaultOutput,
		MaxCellWidth:  DefaultMaxCellWidth,
		TablePageSize: DefaultTablePageSize,
		PageSize:      DefaultPageSize,
		NullDisplay:   DefaultNullDisplay,
	}
}
