// Package plain is the line-oriented renderer: it prints one page at a time
// as a text table and reads single-letter commands from a prompt.
package plain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/leapstack-labs/dumpnav/pkg/navigator"
)

// LineReader reads one line of input per call. *readline.Instance
// satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Prompts.
const (
	PromptTables = "Enter a command or a table number to view: "
	PromptBrowse = "Enter command: "
	PromptSearch = "Enter search query (searches all columns): "
	PromptFilter = "Enter table name filter: "
)

const (
	msgInvalid     = "Invalid command. Please try again."
	rowNumberWidth = 8
)

// Session drives a navigator.Engine from line input.
type Session struct {
	eng    *navigator.Engine
	in     LineReader
	out    io.Writer
	logger *slog.Logger
}

// New returns a session. A nil logger discards.
func New(eng *navigator.Engine, in LineReader, out io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{eng: eng, in: in, out: out, logger: logger}
}

// EngineConfig adapts base for plain output: pageSize data rows per page and
// column widths that account for the table borders.
func EngineConfig(base navigator.Config, width, pageSize int) navigator.Config {
	cfg := base
	if cfg.ReservedRows <= 0 {
		cfg.ReservedRows = navigator.DefaultReservedRows
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	// Each cell is framed by "│ " and " "; the row-number column is
	// charged against the width up front.
	cfg.Width = max(1, width-rowNumberWidth)
	cfg.Height = pageSize + cfg.ReservedRows
	cfg.CellPadding = 3
	return cfg
}

// Run prints the first view and processes commands until quit or end of
// input.
func (s *Session) Run(ctx context.Context) error {
	vm := s.eng.View()
	s.draw(vm)

	for !s.eng.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if vm.List != nil {
			s.in.SetPrompt(PromptTables)
		} else {
			s.in.SetPrompt(PromptBrowse)
		}
		line, err := s.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read command: %w", err)
		}

		events, ok, err := s.command(vm, strings.TrimSpace(line))
		if err != nil {
			return err
		}
		if !ok {
			s.println(msgInvalid)
			continue
		}
		for _, ev := range events {
			s.logger.Debug("plain event", "event", ev.String())
			vm = s.eng.Step(ev)
		}
		if !vm.Quit {
			s.draw(vm)
		}
	}
	return nil
}

// command translates one input line into events. ok is false for input
// that means nothing in the current view.
func (s *Session) command(vm navigator.ViewModel, line string) ([]navigator.Event, bool, error) {
	if line == "" {
		return nil, false, nil
	}
	if vm.List != nil {
		return s.listCommand(vm.List, line)
	}

	if query, found := strings.CutPrefix(line, "/"); found && query != "" {
		return searchEvents(query), true, nil
	}
	switch strings.ToLower(line) {
	case "n":
		return []navigator.Event{navigator.Next()}, true, nil
	case "p":
		return []navigator.Event{navigator.Prev()}, true, nil
	case "l":
		return []navigator.Event{navigator.Left()}, true, nil
	case "r":
		return []navigator.Event{navigator.Right()}, true, nil
	case "j":
		return []navigator.Event{navigator.Down()}, true, nil
	case "k":
		return []navigator.Event{navigator.Up()}, true, nil
	case "s":
		return []navigator.Event{navigator.SelectAnotherTable()}, true, nil
	case "c":
		return []navigator.Event{navigator.ClearSearch()}, true, nil
	case "q":
		return []navigator.Event{navigator.Quit()}, true, nil
	case "/":
		return s.askQuery(PromptSearch)
	}
	return nil, false, nil
}

func (s *Session) listCommand(lv *navigator.ListView, line string) ([]navigator.Event, bool, error) {
	if n, err := strconv.Atoi(line); err == nil {
		i := n - 1 - lv.Offset
		if i < 0 || i >= len(lv.Names) {
			s.println("Invalid table number. Please try again.")
			return nil, true, nil
		}
		return []navigator.Event{navigator.SelectTable(lv.Names[i])}, true, nil
	}

	switch strings.ToLower(line) {
	case "n":
		return []navigator.Event{navigator.Next()}, true, nil
	case "p":
		return []navigator.Event{navigator.Prev()}, true, nil
	case "s", "/":
		return s.askQuery(PromptFilter)
	case "c":
		return []navigator.Event{navigator.ClearSearch()}, true, nil
	case "q":
		return []navigator.Event{navigator.Quit()}, true, nil
	}
	if query, found := strings.CutPrefix(line, "/"); found {
		return searchEvents(query), true, nil
	}
	// A bare table name opens it; unknown names get a status message.
	return []navigator.Event{navigator.SelectTable(line)}, true, nil
}

func (s *Session) askQuery(prompt string) ([]navigator.Event, bool, error) {
	s.in.SetPrompt(prompt)
	line, err := s.in.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		return []navigator.Event{navigator.EnterSearch(), navigator.SearchCancel()}, true, nil
	case errors.Is(err, io.EOF):
		return []navigator.Event{navigator.Quit()}, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("failed to read query: %w", err)
	}
	return searchEvents(strings.TrimSpace(line)), true, nil
}

func searchEvents(query string) []navigator.Event {
	events := []navigator.Event{navigator.EnterSearch()}
	for _, r := range query {
		events = append(events, navigator.SearchChar(r))
	}
	return append(events, navigator.SearchSubmit())
}

func (s *Session) draw(vm navigator.ViewModel) {
	if vm.List != nil {
		s.drawList(vm.List)
	} else if vm.Browse != nil {
		s.drawBrowse(vm.Browse, vm.Search)
	}
	if vm.Status != "" {
		s.println(vm.Status)
	}
}

func (s *Session) drawList(lv *navigator.ListView) {
	s.println("")
	s.println("Available Tables:")
	for i, name := range lv.Names {
		s.printf("%d. %s\n", lv.Offset+i+1, name)
	}
	if lv.Total == 0 {
		s.println("(no tables)")
	}
	s.printf("Table Pages: %d/%d\n", lv.Page, lv.Pages)
	if lv.Filter != "" {
		s.printf("Filter: %q (%d of %d tables)\n", lv.Filter, lv.Total, lv.All)
	}
	s.println("Commands: [n] Next Tables | [p] Previous Tables | [s] Search | [c] Clear Filter | [q] Quit")
}

func (s *Session) drawBrowse(bv *navigator.BrowseView, sv navigator.SearchView) {
	s.println("")
	s.printf("Table: %s\n", bv.Table)
	s.println(RenderTable(bv))

	p := bv.Page
	s.printf("Rows: %d-%d of %d | Pages: %d/%d\n", p.FirstRow, p.LastRow, p.Rows, p.Page, p.Pages)
	s.printf("Columns: %d-%d of %d | Column Pages: %d/%d\n", p.FirstCol, p.LastCol, p.Cols, p.ColPage, p.ColPages)
	if sv.Query != "" {
		s.printf("Search: Active (%q, %d of %d rows)\n", sv.Query, sv.Matches, bv.AllRows)
	} else {
		s.println("Search: Inactive")
	}
	s.println("Commands: [n] Next Page | [p] Previous Page | [l] Left Columns | [r] Right Columns | [s] Select Another Table | [/] Search Rows | [c] Clear Search | [q] Quit")
}

// RenderTable formats the visible window of bv as a bordered text table
// with a leading row-number column.
func RenderTable(bv *navigator.BrowseView) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	header := table.Row{"#"}
	for _, h := range bv.Headers {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for i, cells := range bv.Rows {
		row := table.Row{bv.RowNums[i]}
		for _, c := range cells {
			row = append(row, c.Text)
		}
		t.AppendRow(row)
	}
	return t.Render()
}

func (s *Session) println(line string) {
	_, _ = fmt.Fprintln(s.out, line)
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
