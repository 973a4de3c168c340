package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the full-screen key binding set. Browse and list views share
// most keys; Select means "choose table" in the list and "back to the
// table list" while browsing.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Select key.Binding
	Search key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:   key.NewBinding(key.WithKeys("n", "pgdown", " "), key.WithHelp("n", "next page")),
		Prev:   key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev page")),
		Left:   key.NewBinding(key.WithKeys("l", "left"), key.WithHelp("l/←", "left columns")),
		Right:  key.NewBinding(key.WithKeys("r", "right"), key.WithHelp("r/→", "right columns")),
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Select: key.NewBinding(key.WithKeys("s", "tab"), key.WithHelp("s", "tables")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear search")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// browseKeys and listKeys implement help.KeyMap for each view.
type browseKeys KeyMap

func (k browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Left, k.Right, k.Select, k.Search, k.Clear, k.Quit}
}

func (k browseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Up, k.Down},
		{k.Left, k.Right},
		{k.Select, k.Search, k.Clear, k.Quit},
	}
}

type listKeys KeyMap

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Next, k.Prev, k.Search, k.Clear, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Choose},
		{k.Next, k.Prev},
		{k.Search, k.Clear, k.Quit},
	}
}
