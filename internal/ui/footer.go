package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shortcut represents a keyboard shortcut
type Shortcut struct {
	Key         string
	Description string
}

// Footer renders a shortcut bar with optional right-aligned metadata.
type Footer struct {
	Shortcuts []Shortcut
	Metadata  string
	Width     int
}

// NewFooter creates a new footer
func NewFooter(shortcuts []Shortcut) *Footer {
	return &Footer{Shortcuts: shortcuts}
}

// WithMetadata adds metadata to the footer
func (f *Footer) WithMetadata(metadata string) *Footer {
	f.Metadata = metadata
	return f
}

// WithWidth sets the footer width
func (f *Footer) WithWidth(width int) *Footer {
	f.Width = width
	return f
}

// Render renders the footer
func (f *Footer) Render() string {
	styles := defaultThemeManager.GetStyles()

	parts := make([]string, 0, len(f.Shortcuts))
	for _, sc := range f.Shortcuts {
		parts = append(parts, styles.ShortcutKey.Render(sc.Key)+" "+styles.ShortcutDesc.Render(sc.Description))
	}
	shortcuts := strings.Join(parts, " • ")

	if f.Metadata == "" {
		return shortcuts
	}
	meta := styles.ShortcutDesc.Italic(true).Render(f.Metadata)
	if f.Width > 0 {
		spacing := f.Width - lipgloss.Width(shortcuts) - lipgloss.Width(meta)
		if spacing > 0 {
			return shortcuts + strings.Repeat(" ", spacing) + meta
		}
	}
	return shortcuts + " " + meta
}

// Selector shortcuts
var (
	ShortcutOpen     = Shortcut{Key: "↓/tab", Description: "open"}
	ShortcutNavigate = Shortcut{Key: "↑↓", Description: "navigate"}
	ShortcutSelect   = Shortcut{Key: "enter", Description: "select"}
	ShortcutClear    = Shortcut{Key: "ctrl+x", Description: "clear"}
	ShortcutClose    = Shortcut{Key: "esc", Description: "close"}
	ShortcutQuit     = Shortcut{Key: "ctrl+c", Description: "quit"}
)

// SelectorFooter returns the footer for the given selector state.
func SelectorFooter(state SelectorState, metadata string, width int) string {
	var shortcuts []Shortcut
	if state == StateClosed {
		shortcuts = []Shortcut{ShortcutOpen, ShortcutClear, ShortcutQuit}
	} else {
		shortcuts = []Shortcut{ShortcutNavigate, ShortcutSelect, ShortcutClear, ShortcutClose}
	}
	return NewFooter(shortcuts).WithMetadata(metadata).WithWidth(width).Render()
}
