// Package tui is the full-screen renderer. It translates bubbletea key
// messages into navigator events and draws the resulting ViewModel.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/leapstack-labs/dumpnav/pkg/core"
	"github.com/leapstack-labs/dumpnav/pkg/navigator"
	"github.com/leapstack-labs/dumpnav/pkg/search"
)

// Model is the bubbletea model wrapping a navigation engine.
type Model struct {
	eng    *navigator.Engine
	keys   KeyMap
	styles Styles
	help   help.Model
	logger *slog.Logger
}

// New returns a model over eng.
func New(eng *navigator.Engine, styles Styles, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := help.New()
	h.ShortSeparator = "  "
	return Model{eng: eng, keys: DefaultKeyMap(), styles: styles, help: h, logger: logger}
}

// Options configure Run.
type Options struct {
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
}

// Run starts a full-screen session and blocks until the user quits or ctx
// is canceled.
func Run(ctx context.Context, eng *navigator.Engine, styles Styles, logger *slog.Logger, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(New(eng, styles, logger), progOpts...).Run(); err != nil {
		return fmt.Errorf("full-screen session failed: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.apply(navigator.Resize(msg.Width, msg.Height))
	case tea.KeyMsg:
		for _, ev := range m.events(msg) {
			m.apply(ev)
		}
	}
	if m.eng.Done() {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) apply(ev navigator.Event) {
	m.logger.Debug("tui event", "event", ev.String())
	m.eng.Step(ev)
}

// events maps a key press to navigator events for the current mode.
func (m Model) events(msg tea.KeyMsg) []navigator.Event {
	vm := m.eng.View()
	if vm.Search.Editing {
		return searchKeyEvents(msg)
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return []navigator.Event{navigator.Quit()}
	case key.Matches(msg, k.Next):
		return []navigator.Event{navigator.Next()}
	case key.Matches(msg, k.Prev):
		return []navigator.Event{navigator.Prev()}
	case key.Matches(msg, k.Up):
		return []navigator.Event{navigator.Up()}
	case key.Matches(msg, k.Down):
		return []navigator.Event{navigator.Down()}
	case key.Matches(msg, k.Search):
		return []navigator.Event{navigator.EnterSearch()}
	case key.Matches(msg, k.Clear):
		return []navigator.Event{navigator.ClearSearch()}
	}

	if vm.List != nil {
		switch {
		case key.Matches(msg, k.Choose):
			return []navigator.Event{navigator.Choose()}
		case key.Matches(msg, k.Select):
			// "s" searches table names in the list view.
			return []navigator.Event{navigator.EnterSearch()}
		}
		return nil
	}

	switch {
	case key.Matches(msg, k.Left):
		return []navigator.Event{navigator.Left()}
	case key.Matches(msg, k.Right):
		return []navigator.Event{navigator.Right()}
	case key.Matches(msg, k.Select):
		return []navigator.Event{navigator.SelectAnotherTable()}
	}
	return nil
}

func searchKeyEvents(msg tea.KeyMsg) []navigator.Event {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []navigator.Event{navigator.Quit()}
	case tea.KeyEsc:
		return []navigator.Event{navigator.SearchCancel()}
	case tea.KeyEnter:
		return []navigator.Event{navigator.SearchSubmit()}
	case tea.KeyBackspace:
		return []navigator.Event{navigator.SearchBackspace()}
	case tea.KeySpace:
		return []navigator.Event{navigator.SearchChar(' ')}
	case tea.KeyRunes:
		events := make([]navigator.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, navigator.SearchChar(r))
		}
		return events
	}
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	vm := m.eng.View()
	if vm.Quit {
		return ""
	}

	var b strings.Builder
	if vm.Browse != nil {
		m.viewBrowse(&b, vm.Browse)
	} else if vm.List != nil {
		m.viewList(&b, vm.List)
	}

	b.WriteString(m.statusLine(vm))
	b.WriteString("\n")
	if vm.Browse != nil && !vm.Search.Editing {
		b.WriteString(m.help.View(browseKeys(m.keys)))
	} else {
		b.WriteString(m.help.View(listKeys(m.keys)))
	}
	return b.String()
}

func (m Model) viewList(b *strings.Builder, lv *navigator.ListView) {
	title := fmt.Sprintf("Tables  %d of %d  page %d/%d", lv.Total, lv.All, lv.Page, lv.Pages)
	if lv.Filter != "" {
		title += fmt.Sprintf("  filter %q", lv.Filter)
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	for i, name := range lv.Names {
		line := fmt.Sprintf("%3d. %s", lv.Offset+i+1, m.highlight(name, lv.Filter, m.styles.Match))
		if i == lv.Cursor {
			line = m.styles.Selected.Render(fmt.Sprintf("%3d. %s", lv.Offset+i+1, name))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if lv.Total == 0 {
		b.WriteString(m.styles.Muted.Render("(no tables)"))
		b.WriteString("\n")
	}
}

func (m Model) viewBrowse(b *strings.Builder, bv *navigator.BrowseView) {
	p := bv.Page
	title := fmt.Sprintf("%s  rows %d-%d of %d  page %d/%d  columns %d-%d of %d",
		bv.Table, p.FirstRow, p.LastRow, p.Rows, p.Page, p.Pages, p.FirstCol, p.LastCol, p.Cols)
	if bv.Query != "" {
		title += fmt.Sprintf("  (%d total)", bv.AllRows)
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	headers := make([]string, len(bv.Headers))
	rules := make([]string, len(bv.Headers))
	for i, h := range bv.Headers {
		headers[i] = m.styles.Header.Render(navigator.Pad(h, bv.Widths[i]))
		rules[i] = strings.Repeat("─", bv.Widths[i])
	}
	b.WriteString(strings.Join(headers, "  "))
	b.WriteString("\n")
	b.WriteString(m.styles.Rule.Render(strings.Join(rules, "  ")))
	b.WriteString("\n")

	for _, row := range bv.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = m.cell(c, bv.Query, bv.Widths[i])
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteString("\n")
	}
	if len(bv.Rows) == 0 {
		b.WriteString(m.styles.Muted.Render("(no rows)"))
		b.WriteString("\n")
	}
}

func (m Model) cell(c navigator.CellView, query string, width int) string {
	fill := strings.Repeat(" ", max(0, width-runewidth.StringWidth(c.Text)))
	if c.Kind == core.CellNull {
		return m.styles.Null.Render(c.Text) + fill
	}
	return m.highlight(c.Text, query, m.styles.Match) + fill
}

// highlight renders the occurrences of query in text with style.
func (m Model) highlight(text, query string, style lipgloss.Style) string {
	ranges := search.Highlights(text, query)
	if len(ranges) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, r := range ranges {
		b.WriteString(text[last:r[0]])
		b.WriteString(style.Render(text[r[0]:r[1]]))
		last = r[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func (m Model) statusLine(vm navigator.ViewModel) string {
	if vm.Search.Editing {
		label := "Search rows: /"
		if vm.Search.Target == navigator.ModeTableSelect {
			label = "Filter tables: /"
		}
		return m.styles.Prompt.Render(label+vm.Search.Pending) + "█"
	}
	if vm.Status != "" {
		return m.styles.Status.Render(vm.Status)
	}
	if vm.Search.Query != "" {
		return m.styles.Muted.Render(fmt.Sprintf("search %q: %d matches", vm.Search.Query, vm.Search.Matches))
	}
	return ""
}
