package ui

// defaultThemeManager is the global theme manager instance.
// It starts with the warm theme and is replaced when the configured
// theme is loaded.
var defaultThemeManager = NewThemeManager(ThemeWarm)

// SetGlobalTheme updates the global theme manager with a new theme.
// Unknown names fall back to the default theme.
func SetGlobalTheme(theme string) {
	defaultThemeManager.SetTheme(GetThemeByName(theme))
}

// GetGlobalThemeManager returns the global theme manager instance.
func GetGlobalThemeManager() *ThemeManager {
	return defaultThemeManager
}

func renderSeparator(width int) string {
	return defaultThemeManager.RenderSeparator(width)
}
