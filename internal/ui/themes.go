package ui

import "github.com/yourusername/bbrepo/internal/domain"

// Available theme presets for the TUI.
var (
	// ThemeWarm is the default theme with warm orange-rust tones.
	ThemeWarm = domain.Theme{
		Name:        "warm",
		Description: "Warm theme with orange-rust accents (default)",
		Colors: domain.ThemeColors{
			Primary:   "#C15F3C",
			Secondary: "#A14A2F",
			Success:   "#7A9A6E",
			Warning:   "#D4945A",
			Error:     "#C16B6B",
			Muted:     "#B1ADA1",
			Border:    "#3A3631",
			Selected:  "#C15F3C",
			Text:      "#E8E6E3",
		},
	}

	// ThemeOcean is a calm blue theme.
	ThemeOcean = domain.Theme{
		Name:        "ocean",
		Description: "Cool blue theme",
		Colors: domain.ThemeColors{
			Primary:   "#4A90E2",
			Secondary: "#357ABD",
			Success:   "#6EA06E",
			Warning:   "#E2A04A",
			Error:     "#E24A4A",
			Muted:     "#A1B1C1",
			Border:    "#2A3641",
			Selected:  "#4A90E2",
			Text:      "#E3E8ED",
		},
	}

	// ThemeForest is a natural green theme.
	ThemeForest = domain.Theme{
		Name:        "forest",
		Description: "Natural green theme",
		Colors: domain.ThemeColors{
			Primary:   "#6B9A6B",
			Secondary: "#557A55",
			Success:   "#7AAA7A",
			Warning:   "#D4A45A",
			Error:     "#C17B6B",
			Muted:     "#A8B0A1",
			Border:    "#313A31",
			Selected:  "#6B9A6B",
			Text:      "#E6E8E3",
		},
	}

	// ThemeMono is a grayscale theme for terminals with poor color support.
	ThemeMono = domain.Theme{
		Name:        "mono",
		Description: "Grayscale theme",
		Colors: domain.ThemeColors{
			Primary:   "#E0E0E0",
			Secondary: "#BDBDBD",
			Success:   "#CCCCCC",
			Warning:   "#AAAAAA",
			Error:     "#FFFFFF",
			Muted:     "#808080",
			Border:    "#404040",
			Selected:  "#FFFFFF",
			Text:      "#E0E0E0",
		},
	}
)

// AllThemes returns a slice of all available themes.
func AllThemes() []domain.Theme {
	return []domain.Theme{ThemeWarm, ThemeOcean, ThemeForest, ThemeMono}
}

// GetThemeByName returns a theme by its name, or the default theme if not found.
func GetThemeByName(name string) domain.Theme {
	for _, theme := range AllThemes() {
		if theme.Name == name {
			return theme
		}
	}
	return ThemeWarm
}

// GetThemeNames returns a slice of all theme names.
func GetThemeNames() []string {
	themes := AllThemes()
	names := make([]string, len(themes))
	for i, theme := range themes {
		names[i] = theme.Name
	}
	return names
}
