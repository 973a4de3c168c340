package navigator

import "github.com/leapstack-labs/dumpnav/pkg/core"

// Config holds display parameters supplied by the renderer.
type Config struct {
	// Width and Height are the initial display area in terminal cells.
	Width  int
	Height int

	// MaxCellWidth caps a column's content width; longer cells are
	// truncated with "...".
	MaxCellWidth int

	// CellPadding is added to each column's content width when fitting
	// columns into Width.
	CellPadding int

	// ReservedRows is the number of display lines in TableBrowse that are
	// not data rows (title, header, rule, status, help).
	ReservedRows int

	// ListReservedRows is the same for the table list.
	ListReservedRows int

	// TablePageSize fixes the table list page size. Zero derives it from
	// Height.
	TablePageSize int

	// NullDisplay is shown for NULL cells.
	NullDisplay string
}

// Defaults.
const (
	DefaultWidth            = 80
	DefaultHeight           = 24
	DefaultMaxCellWidth     = 30
	DefaultCellPadding      = 2
	DefaultReservedRows     = 5
	DefaultListReservedRows = 4
	minCellWidth            = 4
)

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	switch {
	case c.MaxCellWidth <= 0:
		c.MaxCellWidth = DefaultMaxCellWidth
	case c.MaxCellWidth < minCellWidth:
		c.MaxCellWidth = minCellWidth
	}
	if c.CellPadding <= 0 {
		c.CellPadding = DefaultCellPadding
	}
	if c.ReservedRows <= 0 {
		c.ReservedRows = DefaultReservedRows
	}
	if c.ListReservedRows <= 0 {
		c.ListReservedRows = DefaultListReservedRows
	}
	if c.TablePageSize < 0 {
		c.TablePageSize = 0
	}
	if c.NullDisplay == "" {
		c.NullDisplay = core.NullLiteral
	}
	return c
}
