package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used by the full-screen view.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Rule     lipgloss.Style
	Null     lipgloss.Style
	Match    lipgloss.Style
	Selected lipgloss.Style
	Status   lipgloss.Style
	Prompt   lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles builds styles on r. With noColor the renderer is forced to the
// ASCII profile so only plain text is emitted.
func NewStyles(r *lipgloss.Renderer, noColor bool) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		Title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Rule:     r.NewStyle().Foreground(lipgloss.Color("8")),
		Null:     r.NewStyle().Faint(true).Italic(true),
		Match:    r.NewStyle().Reverse(true).Foreground(lipgloss.Color("11")),
		Selected: r.NewStyle().Reverse(true),
		Status:   r.NewStyle().Foreground(lipgloss.Color("11")),
		Prompt:   r.NewStyle().Bold(true),
		Muted:    r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
