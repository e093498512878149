package tui

import (
	"github.com/charmbracelet/lipgloss"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Theme defines the palette of one theme id.
type Theme struct {
	Name string

	Background string
	Surface    string
	Border     string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	App        lipgloss.Style
	Clock      lipgloss.Style
	Date       lipgloss.Style
	Label      lipgloss.Style
	Field      lipgloss.Style
	FieldFocus lipgloss.Style
	Text       lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Enabled    lipgloss.Style
	Disabled   lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Danger     lipgloss.Style
	Dialog     lipgloss.Style
	DialogHead lipgloss.Style
	Error      lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	color := func(s string) lipgloss.Color { return lipgloss.Color(s) }

	return Styles{
		App: lipgloss.NewStyle().
			Foreground(color(t.Text)).
			Padding(1, 2),
		Clock: lipgloss.NewStyle().
			Foreground(color(t.Text)).
			Bold(true),
		Date: lipgloss.NewStyle().
			Foreground(color(t.Accent)).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(color(t.Muted)).
			Bold(true),
		Field: lipgloss.NewStyle().
			Foreground(color(t.Text)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(t.Border)).
			Padding(0, 1),
		FieldFocus: lipgloss.NewStyle().
			Foreground(color(t.Accent)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(t.Accent)).
			Padding(0, 1),
		Text:  lipgloss.NewStyle().Foreground(color(t.Text)),
		Muted: lipgloss.NewStyle().Foreground(color(t.Faint)),
		Selected: lipgloss.NewStyle().
			Foreground(color(t.Accent)).
			Bold(true),
		Enabled:  lipgloss.NewStyle().Foreground(color(t.Success)),
		Disabled: lipgloss.NewStyle().Foreground(color(t.Faint)),
		Success:  lipgloss.NewStyle().Foreground(color(t.Success)).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(color(t.Warning)).Bold(true),
		Danger:   lipgloss.NewStyle().Foreground(color(t.Danger)).Bold(true),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(color(t.Accent)).
			Foreground(color(t.Text)).
			Padding(1, 4).
			Align(lipgloss.Center),
		DialogHead: lipgloss.NewStyle().
			Foreground(color(t.Accent)).
			Bold(true),
		Error: lipgloss.NewStyle().Foreground(color(t.Danger)),
	}
}

//nolint:gochecknoglobals // Read-only palettes.
var themes = map[string]Theme{
	"dark": {
		Name:       "dark",
		Background: "#0b0d12",
		Surface:    "#151922",
		Border:     "#2a3140",
		Text:       "#e6e9ef",
		Muted:      "#a3abbd",
		Faint:      "#6b7385",
		Accent:     "#8b5cf6",
		Success:    "#22c55e",
		Warning:    "#f59e0b",
		Danger:     "#ef4444",
	},
	"light": {
		Name:       "light",
		Background: "#f7f7fb",
		Surface:    "#ffffff",
		Border:     "#d4d7e1",
		Text:       "#1c1f2a",
		Muted:      "#4b5263",
		Faint:      "#8a90a0",
		Accent:     "#6d28d9",
		Success:    "#15803d",
		Warning:    "#b45309",
		Danger:     "#b91c1c",
	},
	"navy": {
		Name:       "navy",
		Background: "#0a1628",
		Surface:    "#10213a",
		Border:     "#1e3a5f",
		Text:       "#e2ecf8",
		Muted:      "#9fb3cc",
		Faint:      "#5f7694",
		Accent:     "#38bdf8",
		Success:    "#34d399",
		Warning:    "#fbbf24",
		Danger:     "#f87171",
	},
	"amber": {
		Name:       "amber",
		Background: "#1a1206",
		Surface:    "#261a09",
		Border:     "#4a3414",
		Text:       "#fdf3e1",
		Muted:      "#d6c3a0",
		Faint:      "#917a55",
		Accent:     "#f59e0b",
		Success:    "#a3e635",
		Warning:    "#fb923c",
		Danger:     "#f43f5e",
	},
}

// GetTheme returns the palette for a theme id, the default theme for unknown ids.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}

	return themes[domain.DefaultTheme]
}
