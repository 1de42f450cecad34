package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// PanelWidth is the side panel's total width including its left border.
	PanelWidth = 38

	// Panel rows occupied by the counter button, counted from the top.
	buttonTop    = 2
	buttonHeight = 3
)

type styles struct {
	panel  lipgloss.Style
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	button lipgloss.Style
	pulse  lipgloss.Style
	graph  lipgloss.Style
	muted  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Panel).
			Padding(0, 1).
			Width(PanelWidth - 1),
		title: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		label: lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		value: lipgloss.NewStyle().Foreground(t.Text),
		button: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Panel).
			Foreground(t.Text).
			Padding(0, 2),
		pulse: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		graph: lipgloss.NewStyle().Foreground(t.Graph),
		muted: lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// ProgressBar renders a fraction in [0, 1] as a bar of the given width.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Separator draws a decorative rule.
func Separator(width int) string {
	if width < 8 {
		return strings.Repeat("─", width)
	}
	mid := width / 2
	return strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3)
}

func (s styles) row(label, value string) string {
	return s.label.Render(label) + s.value.Render(value) + "\n"
}

func (s styles) rowf(label, format string, args ...any) string {
	return s.row(label, fmt.Sprintf(format, args...))
}
