package config

import "fmt"

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeInteractive, ModePlain:
	default:
		return fmt.Errorf("invalid mode %q (want %s or %s)", c.Mode, ModeInteractive, ModePlain)
	}

	switch c.OutputFormat {
	case OutputAuto, OutputText, OutputMarkdown, OutputJSON, OutputCSV:
	default:
		return fmt.Errorf("invalid output format %q (want auto, text, markdown, json or csv)", c.OutputFormat)
	}

	if c.MaxCellWidth < MinCellWidth {
		return fmt.Errorf("max_cell_width must be at least %d, got %d", MinCellWidth, c.MaxCellWidth)
	}
	if c.TablePageSize <= 0 {
		return fmt.Errorf("table_page_size must be positive, got %d", c.TablePageSize)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	return nil
}
