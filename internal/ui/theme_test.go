package ui

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/bbrepo/internal/domain"
	"github.com/yourusername/bbrepo/internal/ui/layout"
)

func TestAllThemesValid(t *testing.T) {
	seen := map[string]bool{}
	for _, theme := range AllThemes() {
		if err := theme.Validate(); err != nil {
			t.Errorf("theme %q invalid: %v", theme.Name, err)
		}
		if seen[theme.Name] {
			t.Errorf("duplicate theme name %q", theme.Name)
		}
		seen[theme.Name] = true
	}
}

func TestGetThemeNames(t *testing.T) {
	got := GetThemeNames()
	if strings.Join(got, ",") != strings.Join(domain.ThemeNames, ",") {
		t.Errorf("GetThemeNames() = %v, want %v", got, domain.ThemeNames)
	}
	for _, name := range got {
		if !domain.IsThemeName(name) {
			t.Errorf("IsThemeName(%q) = false", name)
		}
	}
}

func TestGetThemeByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ocean", "ocean"},
		{"mono", "mono"},
		{"", "warm"},
		{"does-not-exist", "warm"},
	}
	for _, tt := range tests {
		if got := GetThemeByName(tt.name).Name; got != tt.want {
			t.Errorf("GetThemeByName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSetGlobalTheme(t *testing.T) {
	defer SetGlobalTheme(ThemeWarm.Name)

	SetGlobalTheme("forest")
	tm := GetGlobalThemeManager()
	if tm.GetCurrentTheme().Name != "forest" {
		t.Errorf("current theme = %q, want forest", tm.GetCurrentTheme().Name)
	}
	if string(tm.GetStyles().ColorPrimary) != ThemeForest.Colors.Primary {
		t.Errorf("styles not regenerated: primary = %q", tm.GetStyles().ColorPrimary)
	}
}

func TestFooterRender(t *testing.T) {
	out := NewFooter([]Shortcut{ShortcutSelect, ShortcutClose}).Render()
	for _, want := range []string{"enter", "select", "esc", "close", "•"} {
		if !strings.Contains(out, want) {
			t.Errorf("footer missing %q: %q", want, out)
		}
	}

	withMeta := NewFooter([]Shortcut{ShortcutQuit}).WithMetadata("3 repos").WithWidth(60).Render()
	if !strings.HasSuffix(withMeta, "3 repos") {
		t.Errorf("metadata should be right aligned: %q", withMeta)
	}
}

func TestSelectorFooter(t *testing.T) {
	closed := SelectorFooter(StateClosed, "", 0)
	open := SelectorFooter(StateFiltered, "", 0)
	if !strings.Contains(closed, "open") || strings.Contains(closed, "navigate") {
		t.Errorf("closed footer = %q", closed)
	}
	if !strings.Contains(open, "navigate") || !strings.Contains(open, "close") {
		t.Errorf("open footer = %q", open)
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Success("saved")
	p.Error("failed")
	p.Info("note")
	p.Warning("careful")
	p.Subtle("quiet")

	out := buf.String()
	for _, want := range []string{"[SUCCESS] saved", "[ERROR] failed", "[INFO] note", "[WARNING] careful", "quiet"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDropdownSizing(t *testing.T) {
	tests := []struct {
		height int
		want   int
	}{
		{0, layout.DropdownMaxItems},
		{5, layout.DropdownMinItems},
		{15, 5},
		{100, layout.DropdownMaxItems},
	}
	for _, tt := range tests {
		if got := layout.DropdownItems(tt.height); got != tt.want {
			t.Errorf("DropdownItems(%d) = %d, want %d", tt.height, got, tt.want)
		}
	}
	if got := layout.DropdownWidth(10); got != layout.DropdownMinWidth {
		t.Errorf("DropdownWidth(10) = %d, want %d", got, layout.DropdownMinWidth)
	}
	if got := layout.DropdownWidth(120); got != 116 {
		t.Errorf("DropdownWidth(120) = %d, want 116", got)
	}
}

func TestRepoSelector_ScrollsToCursor(t *testing.T) {
	var repos []domain.Repository
	for i := 0; i < 20; i++ {
		repos = append(repos, domain.Repository{UUID: fmt.Sprint(i), FullName: fmt.Sprintf("user/r%02d", i)})
	}
	m := NewRepoSelector(RepoSelectorProps{UserRepositories: repos})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})

	m = press(m, keyDown)
	for i := 0; i < 10; i++ {
		m = press(m, keyDown)
	}

	view := m.View()
	if !strings.Contains(view, "user/r10") {
		t.Errorf("cursor row not visible:\n%s", view)
	}
	if strings.Contains(view, "user/r00") {
		t.Errorf("dropdown did not scroll:\n%s", view)
	}
}
