// Package theme holds the terminal palette shared by console output.
package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha accents.
var (
	Subtext0 = lipgloss.Color("#a6adc8")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
)

// Styles is the set of styles used for progress output.
type Styles struct {
	Title lipgloss.Style
	OK    lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style
	Muted lipgloss.Style
}

// For builds the styles against r, so colour is dropped when r writes to
// something that is not a terminal.
func For(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().Foreground(Sapphire).Bold(true),
		OK:    r.NewStyle().Foreground(Green),
		Warn:  r.NewStyle().Foreground(Peach).Bold(true),
		Error: r.NewStyle().Foreground(Red).Bold(true),
		Muted: r.NewStyle().Foreground(Subtext0),
	}
}
