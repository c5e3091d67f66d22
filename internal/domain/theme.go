package domain

import (
	"fmt"
	"regexp"
	"slices"
)

// Theme represents a visual theme for the selector TUI.
type Theme struct {
	Name        string
	Description string
	Colors      ThemeColors
}

// ThemeColors defines the color palette for a theme.
type ThemeColors struct {
	// Primary accent color (cursor, section titles)
	Primary string

	// Secondary accent color (links)
	Secondary string

	Success string
	Warning string
	Error   string

	// Muted text color (annotations, help)
	Muted string

	Border string

	// Currently selected repository
	Selected string

	Text string
}

// ThemeNames lists the built-in themes, default first.
var ThemeNames = []string{"warm", "ocean", "forest", "mono"}

// IsThemeName reports whether name is a built-in theme.
func IsThemeName(name string) bool {
	return slices.Contains(ThemeNames, name)
}

// hexColorRegex matches valid hex color codes (#RGB or #RRGGBB).
var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// Validate checks if the theme has valid color values.
func (t Theme) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("theme name cannot be empty")
	}

	colors := []struct {
		name, value string
	}{
		{"Primary", t.Colors.Primary},
		{"Secondary", t.Colors.Secondary},
		{"Success", t.Colors.Success},
		{"Warning", t.Colors.Warning},
		{"Error", t.Colors.Error},
		{"Muted", t.Colors.Muted},
		{"Border", t.Colors.Border},
		{"Selected", t.Colors.Selected},
		{"Text", t.Colors.Text},
	}
	for _, c := range colors {
		if !hexColorRegex.MatchString(c.value) {
			return fmt.Errorf("invalid hex color for %s: %q", c.name, c.value)
		}
	}
	return nil
}
