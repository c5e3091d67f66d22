package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/bbrepo/internal/adapter/analytics"
	"github.com/yourusername/bbrepo/internal/adapter/browser"
	"github.com/yourusername/bbrepo/internal/domain"
	"github.com/yourusername/bbrepo/internal/ui/layout"
)

// Section labels.
const (
	LabelYourRepositories   = "Your Repositories"
	LabelPublicRepositories = "Public Repositories"
	LabelNoResults          = "No results found"
	LabelAddRepositories    = "Add more repositories"
)

// SelectorState is the open/filter state of the dropdown.
type SelectorState int

const (
	StateClosed SelectorState = iota
	StateOpen
	StateFiltered
)

// String returns the state name.
func (s SelectorState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateFiltered:
		return "filtered"
	default:
		return "unknown"
	}
}

// RepoSelectorProps configures a RepoSelectorModel.
type RepoSelectorProps struct {
	UserRepositories   []domain.Repository
	PublicRepositories []domain.Repository

	// OnInputChange receives the raw input text on every change.
	OnInputChange func(string)
	// OnSelect is called after a selection has been committed to Store.
	OnSelect func()

	Store     domain.SelectionStore
	Analytics analytics.Sink
	Config    domain.AppConfig
	Opener    browser.Opener
}

// InstallLinkOpenedMsg reports the result of opening the authorize page.
type InstallLinkOpenedMsg struct {
	URL string
	Err error
}

type itemKind int

const (
	itemInstallLink itemKind = iota
	itemUserRepo
	itemPublicRepo
)

type selectorItem struct {
	kind itemKind
	repo domain.Repository
}

// RepoSelectorModel is a searchable repository dropdown.
type RepoSelectorModel struct {
	props      RepoSelectorProps
	input      textinput.Model
	state      SelectorState
	candidates []domain.Repository
	publicLen  int
	cursor     int

	selectedKey string
	linkErr     error

	width  int
	height int
}

// NewRepoSelector creates a focused, closed selector.
func NewRepoSelector(props RepoSelectorProps) RepoSelectorModel {
	if props.Store == nil {
		props.Store = domain.NewMemorySelectionStore()
	}
	props.Analytics = analytics.Safe(props.Analytics)
	if props.Opener == nil {
		props.Opener = browser.NewSystem()
	}

	input := textinput.New()
	input.Placeholder = "Select a repository"
	input.Prompt = ""
	input.CharLimit = 200
	input.Focus()

	m := RepoSelectorModel{
		props: props,
		input: input,
		state: StateClosed,
	}
	m.rebuild()
	return m
}

// SetRepositories replaces both candidate lists.
func (m *RepoSelectorModel) SetRepositories(user, public []domain.Repository) {
	m.props.UserRepositories = user
	m.props.PublicRepositories = public
	m.rebuild()
}

func (m *RepoSelectorModel) rebuild() {
	m.candidates = domain.MergeCandidates(m.props.UserRepositories, m.props.PublicRepositories)
	m.publicLen = len(m.candidates) - len(m.props.UserRepositories)
	m.clampCursor()
}

// Candidates returns the combined selectable list: de-duplicated public
// repositories followed by user repositories.
func (m RepoSelectorModel) Candidates() []domain.Repository {
	return m.candidates
}

// State returns the dropdown state.
func (m RepoSelectorModel) State() SelectorState {
	return m.state
}

// Value returns the current input text.
func (m RepoSelectorModel) Value() string {
	return m.input.Value()
}

// SelectedKey returns the UUID of the locally selected repository.
func (m RepoSelectorModel) SelectedKey() string {
	return m.selectedKey
}

// Focus opens the dropdown.
func (m *RepoSelectorModel) Focus() {
	if m.state == StateClosed {
		m.state = m.openState()
	}
}

// Close closes the dropdown without changing the selection.
func (m *RepoSelectorModel) Close() {
	m.state = StateClosed
}

func (m RepoSelectorModel) openState() SelectorState {
	if m.input.Value() == "" {
		return StateOpen
	}
	return StateFiltered
}

// Select commits the candidate with the given UUID. Unknown UUIDs are
// ignored and report false.
func (m *RepoSelectorModel) Select(uuid string) bool {
	repo, ok := domain.FindByUUID(m.candidates, uuid)
	if !ok {
		return false
	}

	m.props.Store.SetSelected(domain.SelectRepository(repo.FullName))
	m.props.Analytics.Capture(context.Background(), analytics.EventRepositorySelected, map[string]any{
		"uuid":      repo.UUID,
		"full_name": repo.FullName,
	})
	if m.props.OnSelect != nil {
		m.props.OnSelect()
	}

	m.selectedKey = repo.UUID
	m.input.SetValue(repo.FullName)
	m.input.CursorEnd()
	m.state = StateClosed
	return true
}

// Clear resets the selection to none and empties the input.
func (m *RepoSelectorModel) Clear() {
	m.props.Store.SetSelected(domain.NoSelection())
	m.selectedKey = ""
	if m.input.Value() != "" {
		m.input.SetValue("")
		m.notifyInput()
	}
	if m.state == StateFiltered {
		m.state = StateOpen
	}
	m.cursor = 0
}

// OpenInstallLink opens the authorize page through the Opener.
func (m RepoSelectorModel) OpenInstallLink() tea.Cmd {
	if !m.props.Config.CanInstallRepositories() {
		return nil
	}
	opener := m.props.Opener
	url := m.props.Config.AuthorizeURL()
	return func() tea.Msg {
		return InstallLinkOpenedMsg{URL: url, Err: opener.Open(context.Background(), url)}
	}
}

func (m *RepoSelectorModel) notifyInput() {
	if m.props.OnInputChange != nil {
		m.props.OnInputChange(m.input.Value())
	}
}

// items returns the navigable rows in display order.
func (m RepoSelectorModel) items() []selectorItem {
	var items []selectorItem
	if m.props.Config.CanInstallRepositories() {
		items = append(items, selectorItem{kind: itemInstallLink})
	}

	filter := m.input.Value()
	for _, repo := range m.candidates[m.publicLen:] {
		if domain.MatchesQuery(repo.FullName, filter) {
			items = append(items, selectorItem{kind: itemUserRepo, repo: repo})
		}
	}
	for _, repo := range m.candidates[:m.publicLen] {
		if domain.MatchesQuery(repo.FullName, filter) {
			items = append(items, selectorItem{kind: itemPublicRepo, repo: repo})
		}
	}
	return items
}

// Visible returns the repositories that pass the current filter.
func (m RepoSelectorModel) Visible() []domain.Repository {
	var out []domain.Repository
	for _, it := range m.items() {
		if it.kind != itemInstallLink {
			out = append(out, it.repo)
		}
	}
	return out
}

func (m *RepoSelectorModel) clampCursor() {
	n := len(m.items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Init implements tea.Model.
func (m RepoSelectorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input.
func (m RepoSelectorModel) Update(msg tea.Msg) (RepoSelectorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case InstallLinkOpenedMsg:
		m.linkErr = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m RepoSelectorModel) handleKey(msg tea.KeyMsg) (RepoSelectorModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+x":
		m.Clear()
		return m, nil

	case "esc":
		m.Close()
		return m, nil

	case "down", "tab", "ctrl+n":
		if m.state == StateClosed {
			m.Focus()
			return m, nil
		}
		if n := len(m.items()); n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
		return m, nil

	case "up", "shift+tab", "ctrl+p":
		if m.state == StateClosed {
			return m, nil
		}
		if n := len(m.items()); n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
		return m, nil

	case "enter":
		if m.state == StateClosed {
			m.Focus()
			return m, nil
		}
		items := m.items()
		if m.cursor >= len(items) {
			return m, nil
		}
		it := items[m.cursor]
		if it.kind == itemInstallLink {
			return m, m.OpenInstallLink()
		}
		m.Select(it.repo.UUID)
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.state = m.openState()
		m.cursor = 0
		m.notifyInput()
	}
	return m, cmd
}

// View renders the input and, when open, the dropdown.
func (m RepoSelectorModel) View() string {
	styles := defaultThemeManager.GetStyles()
	width := layout.DropdownWidth(m.width)

	inputStyle := styles.Input
	if m.state != StateClosed {
		inputStyle = styles.InputFocused
	}

	var b strings.Builder
	b.WriteString(inputStyle.Width(width).Render(m.input.View()))
	b.WriteString("\n")

	if m.state == StateClosed {
		sel := m.props.Store.Selected()
		if sel.Valid {
			b.WriteString(FormatLabel("Selected: ") + styles.OptionSelected.Render(sel.FullName))
		} else {
			b.WriteString(FormatLabel("No repository selected"))
		}
	} else {
		b.WriteString(styles.Dropdown.Width(width).Render(m.renderDropdown()))
	}

	if m.linkErr != nil {
		b.WriteString("\n")
		b.WriteString(styles.StatusError.Render(fmt.Sprintf("Could not open browser: %v", m.linkErr)))
	}

	b.WriteString("\n")
	b.WriteString(SelectorFooter(m.state, m.footerMetadata(), width))
	return b.String()
}

// footerMetadata summarizes how many candidates pass the filter.
func (m RepoSelectorModel) footerMetadata() string {
	if m.state == StateClosed {
		return ""
	}
	total := len(m.candidates)
	shown := len(m.Visible())
	if shown == total {
		return fmt.Sprintf("%d repositories", total)
	}
	return fmt.Sprintf("%d of %d repositories", shown, total)
}

type dropdownRow struct {
	text string
	item int // -1 for headers
}

func (m RepoSelectorModel) renderDropdown() string {
	styles := defaultThemeManager.GetStyles()
	items := m.items()

	var rows []dropdownRow
	section := ""
	hasRepos := false
	for i, it := range items {
		var label string
		switch it.kind {
		case itemInstallLink:
			label = styles.Link.Render("+ " + LabelAddRepositories)
		case itemUserRepo, itemPublicRepo:
			hasRepos = true
			title := LabelYourRepositories
			if it.kind == itemPublicRepo {
				title = LabelPublicRepositories
			}
			if title != section {
				section = title
				rows = append(rows, dropdownRow{text: styles.SectionTitle.Render(title), item: -1})
			}
			label = it.repo.FullName
			if it.repo.UUID == m.selectedKey {
				label = styles.OptionSelected.Render(label + " ✓")
			}
			if it.kind == itemPublicRepo {
				label += " " + styles.Annotation.Render(fmt.Sprintf("(%d👀)", it.repo.WatchersCount))
			}
		}

		if i == m.cursor {
			label = styles.OptionCursor.Render("> ") + label
		} else {
			label = styles.OptionNormal.Render(label)
		}
		rows = append(rows, dropdownRow{text: label, item: i})
	}

	if !hasRepos {
		rows = append(rows, dropdownRow{text: styles.Empty.Render(LabelNoResults), item: -1})
	}

	lines := make([]string, 0, len(rows))
	for _, r := range windowRows(rows, m.cursor, layout.DropdownItems(m.height)) {
		lines = append(lines, r.text)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// windowRows returns at most limit rows, scrolled so the cursor row is visible.
func windowRows(rows []dropdownRow, cursor, limit int) []dropdownRow {
	if len(rows) <= limit {
		return rows
	}
	at := 0
	for i, r := range rows {
		if r.item == cursor {
			at = i
			break
		}
	}
	start := at - limit + 1
	if start < 0 {
		start = 0
	}
	return rows[start : start+limit]
}
