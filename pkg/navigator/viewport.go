package navigator

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/leapstack-labs/dumpnav/pkg/core"
)

// PageInfo describes where the viewport sits. Pages are 1-based.
type PageInfo struct {
	Page     int
	Pages    int
	FirstRow int // 1-based position of the first visible row in the effective set; 0 when empty
	LastRow  int
	Rows     int // size of the effective row set
	ColPage  int
	ColPages int
	FirstCol int // 1-based
	LastCol  int
	Cols     int
}

// Viewport is the visible window of a table.
type Viewport struct {
	Rows        []int // indices into Table.Rows, in display order
	Columns     []int // indices into Table.Columns
	Widths      []int // content width of each visible column
	RowOffset   int   // clamped
	ColOffset   int   // clamped
	RowsPerPage int
	ColsPerPage int
	Page        PageInfo
}

// ComputeViewport clamps vs against the effective row set and the display
// area and returns the visible window. effective lists the row indices being
// paged; nil means every row of t. width and height are the display area in
// terminal cells.
//
// Row paging: RowsPerPage is height minus cfg.ReservedRows (at least 1) and
// RowOffset is clamped to [0, max(0, rows-RowsPerPage)].
//
// Column paging: each column's width is the widest of its header and its
// cells on the visible rows, capped at cfg.MaxCellWidth. Columns are fitted
// into width (each taking width+CellPadding); at least one column is always
// shown. ColOffset is clamped so the last page ends with the last column.
func ComputeViewport(vs ViewState, effective []int, t *core.Table, width, height int, cfg Config) Viewport {
	cfg = cfg.withDefaults()

	total := len(t.Rows)
	if effective != nil {
		total = len(effective)
	}
	rowAt := func(i int) int {
		if effective == nil {
			return i
		}
		return effective[i]
	}

	rpp := max(1, height-cfg.ReservedRows)
	rowOff := clamp(vs.RowOffset, 0, max(0, total-rpp))
	end := min(total, rowOff+rpp)

	vp := Viewport{RowOffset: rowOff, RowsPerPage: rpp}
	for i := rowOff; i < end; i++ {
		vp.Rows = append(vp.Rows, rowAt(i))
	}

	widths := columnWidths(t, vp.Rows, cfg)
	last := lastColumnOffset(widths, width, cfg.CellPadding)
	colOff := clamp(vs.ColOffset, 0, last)
	cpp := columnsThatFit(widths[colOff:], width, cfg.CellPadding)

	vp.ColOffset = colOff
	vp.ColsPerPage = cpp
	for c := colOff; c < colOff+cpp; c++ {
		vp.Columns = append(vp.Columns, c)
		vp.Widths = append(vp.Widths, widths[c])
	}

	vp.Page = pageInfo(total, rowOff, rpp, len(vp.Rows), len(widths), colOff, cpp, last)
	return vp
}

func pageInfo(total, rowOff, rpp, shown, cols, colOff, cpp, lastColOff int) PageInfo {
	p := PageInfo{Rows: total, Cols: cols}

	p.Pages = max(1, (total+rpp-1)/rpp)
	if rowOff+rpp >= total {
		p.Page = p.Pages
	} else {
		p.Page = min(p.Pages, rowOff/rpp+1)
	}
	if shown > 0 {
		p.FirstRow = rowOff + 1
		p.LastRow = rowOff + shown
	}

	if cpp > 0 {
		p.ColPages = max(1, (cols+cpp-1)/cpp)
		if colOff >= lastColOff {
			p.ColPage = p.ColPages
		} else {
			p.ColPage = min(p.ColPages, colOff/cpp+1)
		}
		p.FirstCol = colOff + 1
		p.LastCol = colOff + cpp
	}
	return p
}

// columnWidths measures every column of t over the given rows.
func columnWidths(t *core.Table, rows []int, cfg Config) []int {
	widths := make([]int, len(t.Columns))
	for c, col := range t.Columns {
		w := runewidth.StringWidth(sanitize(col.Name))
		for _, r := range rows {
			row := t.Rows[r]
			if c < len(row) {
				w = max(w, runewidth.StringWidth(cellText(row[c], cfg.NullDisplay)))
			}
			if w >= cfg.MaxCellWidth {
				break
			}
		}
		widths[c] = clamp(w, 1, cfg.MaxCellWidth)
	}
	return widths
}

// columnsThatFit counts the leading columns of widths that fit into width,
// never less than one when any column exists.
func columnsThatFit(widths []int, width, padding int) int {
	used, n := 0, 0
	for _, w := range widths {
		if n > 0 && used+w+padding > width {
			break
		}
		used += w + padding
		n++
	}
	return n
}

// lastColumnOffset is the smallest offset whose page reaches the last column.
func lastColumnOffset(widths []int, width, padding int) int {
	if len(widths) == 0 {
		return 0
	}
	off := len(widths) - 1
	used := widths[off] + padding
	for off > 0 && used+widths[off-1]+padding <= width {
		off--
		used += widths[off] + padding
	}
	return off
}

// cellText is the single-line display form of a cell.
func cellText(c core.Cell, nullDisplay string) string {
	return sanitize(c.Display(nullDisplay))
}

// sanitize replaces control characters (newlines, tabs) with spaces so a
// cell always renders on one line.
func sanitize(s string) string {
	if strings.IndexFunc(s, unicode.IsControl) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// truncate shortens s to at most width terminal cells, ending in "...".
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}
