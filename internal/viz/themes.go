package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the canvas background and the side panel.
type Theme struct {
	Name       string
	Background lipgloss.Color // what faded strokes dim toward
	Panel      lipgloss.Color
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Graph      lipgloss.Color
}

// Available themes
var (
	ThemeMidnight = Theme{
		Name:       "midnight",
		Background: lipgloss.Color("#0a0a1a"), // same as the trail overlay
		Panel:      lipgloss.Color("#444466"),
		Accent:     lipgloss.Color("#00ccff"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#666688"),
		Graph:      lipgloss.Color("#00a8cc"),
	}

	ThemeNeon = Theme{
		Name:       "neon",
		Background: lipgloss.Color("#0a0a0a"),
		Panel:      lipgloss.Color("#ff00ff"),
		Accent:     lipgloss.Color("#ffff00"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Graph:      lipgloss.Color("#00ffff"),
	}

	ThemeMono = Theme{
		Name:       "mono",
		Background: lipgloss.Color("#000000"),
		Panel:      lipgloss.Color("#888888"),
		Accent:     lipgloss.Color("#ffffff"),
		Text:       lipgloss.Color("#cccccc"),
		Muted:      lipgloss.Color("#666666"),
		Graph:      lipgloss.Color("#aaaaaa"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Background: lipgloss.Color("#001a33"),
		Panel:      lipgloss.Color("#4488aa"),
		Accent:     lipgloss.Color("#ffd700"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Graph:      lipgloss.Color("#00ff88"),
	}

	// All available themes
	Themes = []Theme{
		ThemeMidnight,
		ThemeNeon,
		ThemeMono,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to midnight.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMidnight
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames lists the themes in cycling order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
