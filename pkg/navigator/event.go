package navigator

import "fmt"

// EventKind identifies an abstract key event.
type EventKind int

// Event kinds.
const (
	EventNone EventKind = iota
	EventNext
	EventPrev
	EventLeft
	EventRight
	EventUp
	EventDown
	EventChoose
	EventSelectTable
	EventSelectAnotherTable
	EventEnterSearch
	EventSearchChar
	EventSearchBackspace
	EventSearchSubmit
	EventSearchCancel
	EventClearSearch
	EventResize
	EventQuit
)

var eventNames = map[EventKind]string{
	EventNone:               "None",
	EventNext:               "Next",
	EventPrev:               "Prev",
	EventLeft:               "Left",
	EventRight:              "Right",
	EventUp:                 "Up",
	EventDown:               "Down",
	EventChoose:             "Choose",
	EventSelectTable:        "SelectTable",
	EventSelectAnotherTable: "SelectAnotherTable",
	EventEnterSearch:        "EnterSearch",
	EventSearchChar:         "SearchChar",
	EventSearchBackspace:    "SearchBackspace",
	EventSearchSubmit:       "SearchSubmit",
	EventSearchCancel:       "SearchCancel",
	EventClearSearch:        "ClearSearch",
	EventResize:             "Resize",
	EventQuit:               "Quit",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one abstract input event fed to Step. Only the fields relevant
// to Kind are set.
type Event struct {
	Kind   EventKind
	Table  string // EventSelectTable
	Char   rune   // EventSearchChar
	Width  int    // EventResize
	Height int    // EventResize
}

func (e Event) String() string {
	switch e.Kind {
	case EventSelectTable:
		return fmt.Sprintf("SelectTable(%q)", e.Table)
	case EventSearchChar:
		return fmt.Sprintf("SearchChar(%q)", e.Char)
	case EventResize:
		return fmt.Sprintf("Resize(%d, %d)", e.Width, e.Height)
	default:
		return e.Kind.String()
	}
}

// Next pages forward: rows in TableBrowse, the table list in TableSelect.
func Next() Event { return Event{Kind: EventNext} }

// Prev pages backward.
func Prev() Event { return Event{Kind: EventPrev} }

// Left scrolls one page of columns to the left.
func Left() Event { return Event{Kind: EventLeft} }

// Right scrolls one page of columns to the right.
func Right() Event { return Event{Kind: EventRight} }

// Up moves up by one row (or one list entry).
func Up() Event { return Event{Kind: EventUp} }

// Down moves down by one row (or one list entry).
func Down() Event { return Event{Kind: EventDown} }

// Choose selects the highlighted table in TableSelect.
func Choose() Event { return Event{Kind: EventChoose} }

// SelectTable opens the named table.
func SelectTable(name string) Event { return Event{Kind: EventSelectTable, Table: name} }

// SelectAnotherTable returns to the table list.
func SelectAnotherTable() Event { return Event{Kind: EventSelectAnotherTable} }

// EnterSearch starts capturing a query.
func EnterSearch() Event { return Event{Kind: EventEnterSearch} }

// SearchChar appends r to the pending query.
func SearchChar(r rune) Event { return Event{Kind: EventSearchChar, Char: r} }

// SearchBackspace removes the last rune of the pending query.
func SearchBackspace() Event { return Event{Kind: EventSearchBackspace} }

// SearchSubmit runs the pending query.
func SearchSubmit() Event { return Event{Kind: EventSearchSubmit} }

// SearchCancel discards the pending query.
func SearchCancel() Event { return Event{Kind: EventSearchCancel} }

// ClearSearch drops the active search (or table filter).
func ClearSearch() Event { return Event{Kind: EventClearSearch} }

// Resize reports a new display area in terminal cells.
func Resize(width, height int) Event { return Event{Kind: EventResize, Width: width, Height: height} }

// Quit ends the session.
func Quit() Event { return Event{Kind: EventQuit} }
