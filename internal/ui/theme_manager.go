package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/bbrepo/internal/domain"
)

// ThemeManager manages the current theme and provides styled components.
type ThemeManager struct {
	mu           sync.RWMutex
	currentTheme domain.Theme
	styles       *ThemeStyles
}

// ThemeStyles contains all lipgloss styles for the TUI.
type ThemeStyles struct {
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorError     lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorBorder    lipgloss.Color
	ColorSelected  lipgloss.Color
	ColorText      lipgloss.Color

	Header       lipgloss.Style
	SectionTitle lipgloss.Style
	Annotation   lipgloss.Style

	// Dropdown options
	OptionNormal   lipgloss.Style
	OptionCursor   lipgloss.Style
	OptionSelected lipgloss.Style
	Link           lipgloss.Style
	Empty          lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Dropdown     lipgloss.Style

	Footer       lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	StatusOk      lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style

	Loading   lipgloss.Style
	Separator lipgloss.Style
}

// NewThemeManager creates a new theme manager with the specified theme.
func NewThemeManager(theme domain.Theme) *ThemeManager {
	tm := &ThemeManager{currentTheme: theme}
	tm.styles = buildStyles(theme)
	return tm
}

// GetCurrentTheme returns the current theme.
func (tm *ThemeManager) GetCurrentTheme() domain.Theme {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.currentTheme
}

// SetTheme switches to a new theme and regenerates all styles.
func (tm *ThemeManager) SetTheme(theme domain.Theme) {
	styles := buildStyles(theme)
	tm.mu.Lock()
	tm.currentTheme = theme
	tm.styles = styles
	tm.mu.Unlock()
}

// GetStyles returns the current theme styles.
func (tm *ThemeManager) GetStyles() *ThemeStyles {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.styles
}

// RenderSeparator renders a horizontal separator line.
func (tm *ThemeManager) RenderSeparator(width int) string {
	if width <= 0 {
		width = 40
	}
	return tm.GetStyles().Separator.Render(strings.Repeat("─", width))
}

func buildStyles(theme domain.Theme) *ThemeStyles {
	c := theme.Colors
	s := &ThemeStyles{
		ColorPrimary:   lipgloss.Color(c.Primary),
		ColorSecondary: lipgloss.Color(c.Secondary),
		ColorSuccess:   lipgloss.Color(c.Success),
		ColorWarning:   lipgloss.Color(c.Warning),
		ColorError:     lipgloss.Color(c.Error),
		ColorMuted:     lipgloss.Color(c.Muted),
		ColorBorder:    lipgloss.Color(c.Border),
		ColorSelected:  lipgloss.Color(c.Selected),
		ColorText:      lipgloss.Color(c.Text),
	}

	s.Header = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true).
		MarginBottom(1)

	s.SectionTitle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.Annotation = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.OptionNormal = lipgloss.NewStyle().
		Foreground(s.ColorText).
		PaddingLeft(2)

	s.OptionCursor = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.OptionSelected = lipgloss.NewStyle().
		Foreground(s.ColorSelected).
		Bold(true)

	s.Link = lipgloss.NewStyle().
		Foreground(s.ColorSecondary).
		Underline(true)

	s.Empty = lipgloss.NewStyle().
		Foreground(s.ColorMuted).
		Italic(true).
		PaddingLeft(2)

	s.Input = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorBorder).
		Padding(0, 1)

	s.InputFocused = s.Input.
		BorderForeground(s.ColorPrimary)

	s.Dropdown = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, true, true).
		BorderForeground(s.ColorBorder).
		Padding(0, 1)

	s.Footer = lipgloss.NewStyle().
		Foreground(s.ColorMuted).
		MarginTop(1)

	s.ShortcutKey = lipgloss.NewStyle().
		Foreground(s.ColorPrimary)

	s.ShortcutDesc = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.StatusOk = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Bold(true)

	s.StatusWarning = lipgloss.NewStyle().
		Foreground(s.ColorWarning).
		Bold(true)

	s.StatusError = lipgloss.NewStyle().
		Foreground(s.ColorError).
		Bold(true)

	s.StatusInfo = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.Loading = lipgloss.NewStyle().
		Foreground(s.ColorMuted).
		Italic(true)

	s.Separator = lipgloss.NewStyle().
		Foreground(s.ColorBorder)

	return s
}
