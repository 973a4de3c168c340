package navigator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/dumpnav/pkg/core"
	"github.com/leapstack-labs/dumpnav/pkg/search"
)

// Status messages.
const (
	msgLastPage       = "You are on the last page."
	msgFirstPage      = "You are on the first page."
	msgLastColumns    = "You are on the last columns."
	msgFirstColumns   = "You are on the first columns."
	msgSearchCleared  = "Search cleared."
	msgFilterCleared  = "Filter cleared."
	msgSearchCanceled = "Search canceled."
	msgNoTables       = "No tables to choose from."
)

// Step applies one event to s and returns the new state with its ViewModel.
// It is pure: s is not modified and no I/O happens. Every offset in the
// returned state is clamped, so Step cannot fail.
func Step(db *core.Database, cfg Config, s State, ev Event) (State, ViewModel) {
	cfg = cfg.withDefaults()
	s.Status = ""

	switch ev.Kind {
	case EventQuit:
		s.Quit = true
	case EventResize:
		s.Width = max(1, ev.Width)
		s.Height = max(1, ev.Height)
	default:
		switch s.Mode {
		case ModeTableSelect:
			s = stepTableSelect(db, cfg, s, ev)
		case ModeTableBrowse:
			s = stepTableBrowse(db, cfg, s, ev)
		case ModeSearchEntry:
			s = stepSearchEntry(db, s, ev)
		}
	}

	s = normalize(db, cfg, s)
	return s, Render(db, cfg, s)
}

func stepTableSelect(db *core.Database, cfg Config, s State, ev Event) State {
	names := filteredNames(db, s.List.Filter)
	perPage := listPageSize(cfg, s.Height)

	switch ev.Kind {
	case EventNext:
		if s.List.Offset+perPage >= len(names) {
			s.Status = msgLastPage
			break
		}
		s.List.Offset += perPage
		s.List.Cursor = s.List.Offset
	case EventPrev:
		if s.List.Offset == 0 {
			s.Status = msgFirstPage
			break
		}
		s.List.Offset = max(0, s.List.Offset-perPage)
		s.List.Cursor = s.List.Offset
	case EventUp:
		s.List.Cursor--
	case EventDown:
		s.List.Cursor++
	case EventChoose:
		if len(names) == 0 {
			s.Status = msgNoTables
			break
		}
		s = s.enterTable(names[clamp(s.List.Cursor, 0, len(names)-1)])
	case EventSelectTable:
		s = selectTable(db, s, ev.Table)
	case EventEnterSearch:
		s = enterSearch(s)
	case EventClearSearch:
		if s.List.Filter != "" {
			s.List = ListState{}
			s.Status = msgFilterCleared
		}
	}
	return s
}

func stepTableBrowse(db *core.Database, cfg Config, s State, ev Event) State {
	t, ok := db.Table(s.Current)
	if !ok {
		s.Mode = ModeTableSelect
		return s
	}
	ts := s.table()
	vp := ComputeViewport(ts.View, effectiveRows(ts), t, s.Width, s.Height, cfg)
	view := ts.View
	view.RowOffset, view.ColOffset = vp.RowOffset, vp.ColOffset

	switch ev.Kind {
	case EventNext:
		view.RowOffset += vp.RowsPerPage
		if ComputeViewport(view, effectiveRows(ts), t, s.Width, s.Height, cfg).RowOffset == vp.RowOffset {
			s.Status = msgLastPage
		}
	case EventPrev:
		if vp.RowOffset == 0 {
			s.Status = msgFirstPage
		}
		view.RowOffset -= vp.RowsPerPage
	case EventDown:
		view.RowOffset++
	case EventUp:
		view.RowOffset--
	case EventRight:
		view.ColOffset += max(1, vp.ColsPerPage)
		if ComputeViewport(view, effectiveRows(ts), t, s.Width, s.Height, cfg).ColOffset == vp.ColOffset {
			s.Status = msgLastColumns
		}
	case EventLeft:
		if vp.ColOffset == 0 {
			s.Status = msgFirstColumns
		}
		view.ColOffset -= max(1, vp.ColsPerPage)
	case EventSelectAnotherTable:
		s.Mode = ModeTableSelect
		s.List = listAt(db, cfg, s, s.Current)
	case EventSelectTable:
		return selectTable(db, s, ev.Table)
	case EventEnterSearch:
		return enterSearch(s)
	case EventClearSearch:
		ts.Search = SearchState{}
		view.RowOffset = 0
		s.Status = msgSearchCleared
	}

	view.RowOffset = max(0, view.RowOffset)
	view.ColOffset = max(0, view.ColOffset)
	ts.View = view
	return s.withTable(ts)
}

func stepSearchEntry(db *core.Database, s State, ev Event) State {
	switch ev.Kind {
	case EventSearchChar:
		if unicode.IsPrint(ev.Char) {
			s.Pending += string(ev.Char)
		}
	case EventSearchBackspace:
		if s.Pending != "" {
			_, size := utf8.DecodeLastRuneInString(s.Pending)
			s.Pending = s.Pending[:len(s.Pending)-size]
		}
	case EventSearchCancel:
		s.Pending = ""
		s.Mode = s.ReturnMode
		s.Status = msgSearchCanceled
	case EventSearchSubmit:
		query := strings.TrimSpace(s.Pending)
		s.Pending = ""
		s.Mode = s.ReturnMode
		if s.ReturnMode == ModeTableSelect {
			return applyFilter(db, s, query)
		}
		return applySearch(db, s, query)
	}
	return s
}

func applyFilter(db *core.Database, s State, query string) State {
	if query == "" {
		if s.List.Filter != "" {
			s.Status = msgFilterCleared
		}
		s.List = ListState{}
		return s
	}
	s.List = ListState{Filter: query}
	if n := len(filteredNames(db, query)); n == 0 {
		s.Status = fmt.Sprintf("No tables match %q.", query)
	} else {
		s.Status = fmt.Sprintf("%d of %d tables match %q.", n, db.Len(), query)
	}
	return s
}

func applySearch(db *core.Database, s State, query string) State {
	ts := s.table()
	ts.View.RowOffset = 0
	if query == "" {
		ts.Search = SearchState{}
		s.Status = msgSearchCleared
		return s.withTable(ts)
	}

	t, ok := db.Table(s.Current)
	if !ok {
		return s
	}
	ts.Search = SearchState{Query: query, Matches: search.Rows(t, query)}
	if len(ts.Search.Matches) == 0 {
		s.Status = fmt.Sprintf("No rows match %q.", query)
	} else {
		s.Status = fmt.Sprintf("%d of %d rows match %q.", len(ts.Search.Matches), len(t.Rows), query)
	}
	return s.withTable(ts)
}

func enterSearch(s State) State {
	s.ReturnMode = s.Mode
	s.Mode = ModeSearchEntry
	s.Pending = ""
	return s
}

func selectTable(db *core.Database, s State, name string) State {
	if _, ok := db.Table(name); !ok {
		s.Status = fmt.Sprintf("No table named %q.", name)
		return s
	}
	return s.enterTable(name)
}

// listAt returns a list state, keeping the current filter, with the cursor
// on name when it is listed.
func listAt(db *core.Database, cfg Config, s State, name string) ListState {
	list := s.List
	for i, n := range filteredNames(db, list.Filter) {
		if n == name {
			list.Cursor = i
			perPage := listPageSize(cfg, s.Height)
			list.Offset = (i / perPage) * perPage
			break
		}
	}
	return list
}

// normalize re-clamps every offset that depends on the display area.
func normalize(db *core.Database, cfg Config, s State) State {
	names := filteredNames(db, s.List.Filter)
	perPage := listPageSize(cfg, s.Height)
	s.List.Cursor = clamp(s.List.Cursor, 0, len(names)-1)
	if s.List.Cursor < s.List.Offset || s.List.Cursor >= s.List.Offset+perPage {
		s.List.Offset = (s.List.Cursor / perPage) * perPage
	}
	s.List.Offset = clamp(s.List.Offset, 0, max(0, len(names)-1))

	if s.Current == "" {
		return s
	}
	t, ok := db.Table(s.Current)
	if !ok {
		return s
	}
	ts := s.table()
	vp := ComputeViewport(ts.View, effectiveRows(ts), t, s.Width, s.Height, cfg)
	next := ViewState{
		RowOffset:   vp.RowOffset,
		ColOffset:   vp.ColOffset,
		RowsPerPage: vp.RowsPerPage,
		ColsPerPage: vp.ColsPerPage,
	}
	if next != ts.View {
		ts.View = next
		s = s.withTable(ts)
	}
	return s
}

// effectiveRows returns the row set being paged: the matches of an active
// search, or nil for every row.
func effectiveRows(ts TableState) []int {
	if !ts.Search.Active() {
		return nil
	}
	if ts.Search.Matches == nil {
		return []int{}
	}
	return ts.Search.Matches
}

func filteredNames(db *core.Database, filter string) []string {
	if db == nil {
		return nil
	}
	return search.Tables(db.Names(), filter)
}

func listPageSize(cfg Config, height int) int {
	if cfg.TablePageSize > 0 {
		return cfg.TablePageSize
	}
	return max(1, height-cfg.ListReservedRows)
}
