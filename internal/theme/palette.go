package theme

import "github.com/charmbracelet/lipgloss"

// Palette bundles the styles the screens render with.
type Palette struct {
	Name string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Danger     lipgloss.Color

	Header      lipgloss.Style
	Title       lipgloss.Style
	Section     lipgloss.Style
	Card        lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Placeholder lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Toast       lipgloss.Style
	Error       lipgloss.Style
	Destructive lipgloss.Style
	Footer      lipgloss.Style
}

// Light is the default palette.
func Light() Palette {
	return build("light", colors{
		background: "#FFFFFF",
		surface:    "#F3F4F6",
		text:       "#111827",
		muted:      "#9CA3AF",
		accent:     "#4F46E5",
		danger:     "#EF4444",
		border:     "#E5E7EB",
		headerText: "#FFFFFF",
	})
}

// Dark is the palette used when dark mode is on.
func Dark() Palette {
	return build("dark", colors{
		background: "#111827",
		surface:    "#1F2937",
		text:       "#F9FAFB",
		muted:      "#6B7280",
		accent:     "#10B981",
		danger:     "#EF4444",
		border:     "#374151",
		headerText: "#F9FAFB",
	})
}

type colors struct {
	background, surface, text, muted, accent, danger, border, headerText string
}

func build(name string, c colors) Palette {
	p := Palette{
		Name:       name,
		Background: lipgloss.Color(c.background),
		Surface:    lipgloss.Color(c.surface),
		Text:       lipgloss.Color(c.text),
		Muted:      lipgloss.Color(c.muted),
		Accent:     lipgloss.Color(c.accent),
		Danger:     lipgloss.Color(c.danger),
	}

	p.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.headerText)).
		Background(p.Accent).
		Padding(0, 2)
	p.Title = lipgloss.NewStyle().Bold(true).Foreground(p.Text)
	p.Section = lipgloss.NewStyle().Bold(true).Foreground(p.Muted).MarginTop(1)
	p.Card = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.border)).
		Padding(0, 1)
	p.Item = lipgloss.NewStyle().Foreground(p.Text).PaddingLeft(2)
	p.Selected = lipgloss.NewStyle().Foreground(p.Accent).Bold(true).PaddingLeft(2)
	p.Placeholder = lipgloss.NewStyle().Foreground(p.Muted).Italic(true).PaddingLeft(2)
	p.TabActive = lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Underline(true).Padding(0, 1)
	p.TabInactive = lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1)
	p.Toast = lipgloss.NewStyle().
		Foreground(p.Text).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(p.Accent).
		PaddingLeft(1)
	p.Error = lipgloss.NewStyle().Foreground(p.Danger)
	p.Destructive = lipgloss.NewStyle().Foreground(p.Danger).Bold(true)
	p.Footer = lipgloss.NewStyle().Foreground(p.Muted)
	return p
}
