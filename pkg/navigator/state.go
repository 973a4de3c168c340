package navigator

import (
	"maps"

	"github.com/leapstack-labs/dumpnav/pkg/core"
)

// Mode is the navigation state.
type Mode int

// Modes.
const (
	ModeTableSelect Mode = iota
	ModeTableBrowse
	ModeSearchEntry
)

func (m Mode) String() string {
	switch m {
	case ModeTableSelect:
		return "TableSelect"
	case ModeTableBrowse:
		return "TableBrowse"
	case ModeSearchEntry:
		return "SearchEntry"
	default:
		return "Mode(?)"
	}
}

// ViewState is the scroll position within one table. RowOffset indexes the
// effective row set (all rows, or the search matches).
type ViewState struct {
	RowOffset   int
	ColOffset   int
	RowsPerPage int
	ColsPerPage int
}

// SearchState is the active search of one table.
type SearchState struct {
	Query   string
	Matches []int // ascending row indices into Table.Rows
}

// Active reports whether a search is filtering rows.
func (s SearchState) Active() bool {
	return s.Query != ""
}

// TableState is what the engine remembers about a visited table.
type TableState struct {
	View   ViewState
	Search SearchState
}

// ListState is the table list shown in TableSelect.
type ListState struct {
	Offset int    // first entry on the current page
	Cursor int    // highlighted entry, index into the filtered names
	Filter string // table-name filter; empty shows every table
}

// State is the complete navigation state. It is a value: Step never
// mutates the State it is given.
type State struct {
	Mode    Mode
	Current string                // table being browsed; empty before the first selection
	Tables  map[string]TableState // per-table state, created on first visit
	List    ListState

	Pending    string // query being typed in SearchEntry
	ReturnMode Mode   // mode SearchEntry returns to, which is also the search target

	Width  int
	Height int

	Status string // one-line message produced by the last transition
	Quit   bool
}

// NewState returns the initial state for db: TableBrowse on the only table
// when there is exactly one, TableSelect otherwise.
func NewState(db *core.Database, cfg Config) State {
	cfg = cfg.withDefaults()
	s := State{
		Mode:   ModeTableSelect,
		Tables: map[string]TableState{},
		Width:  cfg.Width,
		Height: cfg.Height,
	}
	if db != nil && db.Len() == 1 {
		s = s.enterTable(db.TableAt(0).Name)
	}
	return s
}

// table returns the state of the current table.
func (s State) table() TableState {
	return s.Tables[s.Current]
}

// withTable returns s with the current table's state replaced. The map is
// copied so earlier States stay unchanged.
func (s State) withTable(ts TableState) State {
	tables := make(map[string]TableState, len(s.Tables)+1)
	maps.Copy(tables, s.Tables)
	tables[s.Current] = ts
	s.Tables = tables
	return s
}

// enterTable switches to browsing name, creating its state on first visit.
func (s State) enterTable(name string) State {
	s.Mode = ModeTableBrowse
	s.Current = name
	if _, ok := s.Tables[name]; !ok {
		s = s.withTable(TableState{})
	}
	return s
}
