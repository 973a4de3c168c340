package navigator

import (
	"github.com/mattn/go-runewidth"

	"github.com/leapstack-labs/dumpnav/pkg/core"
)

// ViewModel is an immutable snapshot for a renderer. Exactly one of List and
// Browse is set; in SearchEntry it is the view being searched.
type ViewModel struct {
	Mode   Mode
	Quit   bool
	Status string
	Width  int
	Height int
	Search SearchView
	List   *ListView
	Browse *BrowseView
}

// SearchView describes search input and the active query.
type SearchView struct {
	Editing bool   // in SearchEntry
	Pending string // text typed so far
	Target  Mode   // ModeTableSelect filters table names, ModeTableBrowse searches rows
	Query   string // active query of the shown view; renderers highlight it
	Matches int    // rows (or tables) matching Query
}

// ListView is one page of the table list.
type ListView struct {
	Names  []string // names on this page
	Cursor int      // index into Names of the highlighted entry, -1 when empty
	Offset int      // index of Names[0] in the filtered list
	Page   int
	Pages  int
	Total  int // tables after filtering
	All    int // tables in the database
	Filter string
}

// CellView is one rendered cell.
type CellView struct {
	Text string // single line, truncated to the column width
	Kind core.CellKind
}

// BrowseView is the visible window of one table.
type BrowseView struct {
	Table   string
	Headers []string // truncated to Widths
	Types   []string
	Widths  []int
	Rows    [][]CellView
	RowNums []int // 1-based row numbers in the table, aligned with Rows
	Page    PageInfo
	AllRows int
	Query   string
}

// Render builds the ViewModel for s without changing it.
func Render(db *core.Database, cfg Config, s State) ViewModel {
	cfg = cfg.withDefaults()
	vm := ViewModel{
		Mode:   s.Mode,
		Quit:   s.Quit,
		Status: s.Status,
		Width:  s.Width,
		Height: s.Height,
	}

	shown := s.Mode
	if s.Mode == ModeSearchEntry {
		shown = s.ReturnMode
		vm.Search.Editing = true
		vm.Search.Pending = s.Pending
		vm.Search.Target = s.ReturnMode
	}

	if shown == ModeTableBrowse {
		if t, ok := db.Table(s.Current); ok {
			vm.Browse = renderBrowse(t, s.table(), cfg, s.Width, s.Height)
			vm.Search.Query = vm.Browse.Query
			vm.Search.Matches = vm.Browse.Page.Rows
			return vm
		}
	}

	vm.List = renderList(db, cfg, s)
	if vm.List.Filter != "" {
		vm.Search.Query = vm.List.Filter
		vm.Search.Matches = vm.List.Total
	}
	return vm
}

func renderList(db *core.Database, cfg Config, s State) *ListView {
	names := filteredNames(db, s.List.Filter)
	perPage := listPageSize(cfg, s.Height)
	lv := &ListView{
		Offset: s.List.Offset,
		Cursor: -1,
		Total:  len(names),
		Filter: s.List.Filter,
		Pages:  max(1, (len(names)+perPage-1)/perPage),
		Page:   min(s.List.Offset/perPage+1, max(1, (len(names)+perPage-1)/perPage)),
	}
	if db != nil {
		lv.All = db.Len()
	}
	if s.List.Offset < len(names) {
		lv.Names = names[s.List.Offset:min(len(names), s.List.Offset+perPage)]
		lv.Cursor = s.List.Cursor - s.List.Offset
	}
	return lv
}

func renderBrowse(t *core.Table, ts TableState, cfg Config, width, height int) *BrowseView {
	vp := ComputeViewport(ts.View, effectiveRows(ts), t, width, height, cfg)
	bv := &BrowseView{
		Table:   t.Name,
		Widths:  vp.Widths,
		Page:    vp.Page,
		AllRows: len(t.Rows),
		Query:   ts.Search.Query,
	}
	for i, c := range vp.Columns {
		col := t.Columns[c]
		bv.Headers = append(bv.Headers, truncate(sanitize(col.Name), vp.Widths[i]))
		bv.Types = append(bv.Types, col.Type)
	}
	for _, r := range vp.Rows {
		row := t.Rows[r]
		cells := make([]CellView, len(vp.Columns))
		for i, c := range vp.Columns {
			var cell core.Cell
			if c < len(row) {
				cell = row[c]
			}
			cells[i] = CellView{Text: truncate(cellText(cell, cfg.NullDisplay), vp.Widths[i]), Kind: cell.Kind}
		}
		bv.Rows = append(bv.Rows, cells)
		bv.RowNums = append(bv.RowNums, r+1)
	}
	return bv
}

// Pad right-pads s with spaces to width terminal cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
