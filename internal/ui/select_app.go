package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/bbrepo/internal/adapter/analytics"
	"github.com/yourusername/bbrepo/internal/adapter/browser"
	"github.com/yourusername/bbrepo/internal/domain"
	"github.com/yourusername/bbrepo/internal/query"
	"pkt.systems/pslog"
)

// SelectAppConfig wires a SelectApp to the query layer and collaborators.
type SelectAppConfig struct {
	Hooks     *query.Hooks
	Store     domain.SelectionStore
	Analytics analytics.Sink
	Config    domain.AppConfig
	Opener    browser.Opener

	// PerPage is the page size for both the user listing and searches.
	// Zero keeps the API defaults.
	PerPage int
	Sort    string
}

type userReposMsg struct {
	state query.State[domain.Page[domain.Repository]]
}

type searchResultMsg struct {
	query string
	state query.State[domain.Page[domain.Repository]]
}

// SelectApp is the interactive `select` program: a RepoSelectorModel fed
// with the user's repositories and name search results.
type SelectApp struct {
	ctx    context.Context
	cfg    SelectAppConfig
	logger pslog.Logger

	selector RepoSelectorModel

	userRepos   []domain.Repository
	publicRepos []domain.Repository

	query        string
	queryChanged bool

	loadingUser bool
	searching   bool
	err         error

	done     bool
	canceled bool
	width    int
}

// NewSelectApp creates the app. The context bounds every fetch it starts;
// results arriving after cancellation are dropped.
func NewSelectApp(ctx context.Context, cfg SelectAppConfig) *SelectApp {
	a := &SelectApp{
		ctx:    ctx,
		cfg:    cfg,
		logger: pslog.Ctx(ctx),
	}
	a.selector = NewRepoSelector(RepoSelectorProps{
		OnInputChange: a.onInputChange,
		OnSelect:      a.onSelect,
		Store:         cfg.Store,
		Analytics:     cfg.Analytics,
		Config:        cfg.Config,
		Opener:        cfg.Opener,
	})
	return a
}

func (a *SelectApp) onInputChange(q string) {
	a.query = q
	a.queryChanged = true
}

func (a *SelectApp) onSelect() {
	a.done = true
}

// Done reports whether a repository was selected.
func (a *SelectApp) Done() bool {
	return a.done
}

// Canceled reports whether the user quit without selecting.
func (a *SelectApp) Canceled() bool {
	return a.canceled
}

// Err returns the last fetch error, if any.
func (a *SelectApp) Err() error {
	return a.err
}

// Selector returns the embedded selector.
func (a *SelectApp) Selector() RepoSelectorModel {
	return a.selector
}

// Init implements tea.Model.
func (a *SelectApp) Init() tea.Cmd {
	if !a.cfg.Hooks.Enabled() {
		a.err = domain.ErrNoToken
		return a.selector.Init()
	}
	a.loadingUser = true
	return tea.Batch(a.selector.Init(), a.fetchUserRepos())
}

func (a *SelectApp) fetchUserRepos() tea.Cmd {
	ctx, hooks, perPage, sort := a.ctx, a.cfg.Hooks, a.cfg.PerPage, a.cfg.Sort
	return func() tea.Msg {
		return userReposMsg{state: hooks.Repositories(ctx, 0, perPage, sort, "")}
	}
}

func (a *SelectApp) search(q string) tea.Cmd {
	ctx, hooks, perPage, sort := a.ctx, a.cfg.Hooks, a.cfg.PerPage, a.cfg.Sort
	return func() tea.Msg {
		return searchResultMsg{query: q, state: hooks.SearchRepositories(ctx, q, perPage, sort)}
	}
}

// Update implements tea.Model.
func (a *SelectApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.canceled = true
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width

	case userReposMsg:
		a.loadingUser = false
		if a.ctx.Err() != nil {
			return a, nil
		}
		switch msg.state.Status {
		case query.StatusSuccess:
			a.userRepos = msg.state.Data.Values
			a.selector.SetRepositories(a.userRepos, a.publicRepos)
		case query.StatusError:
			a.err = msg.state.Err
			a.logger.Warn("failed to load repositories", "error", msg.state.Err)
		}
		return a, nil

	case searchResultMsg:
		if msg.query != a.query || a.ctx.Err() != nil {
			a.logger.Debug("dropping stale search result", "query", msg.query)
			return a, nil
		}
		a.searching = false
		switch msg.state.Status {
		case query.StatusSuccess:
			a.err = nil
			a.publicRepos = msg.state.Data.Values
			a.selector.SetRepositories(a.userRepos, a.publicRepos)
		case query.StatusError:
			a.err = msg.state.Err
			a.logger.Warn("repository search failed", "query", msg.query, "error", msg.state.Err)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.selector, cmd = a.selector.Update(msg)

	if a.done {
		return a, tea.Quit
	}

	if a.queryChanged {
		a.queryChanged = false
		if !a.cfg.Hooks.SearchEnabled(a.query) {
			a.searching = false
			a.publicRepos = nil
			a.selector.SetRepositories(a.userRepos, nil)
			return a, cmd
		}
		a.searching = true
		return a, tea.Batch(cmd, a.search(a.query))
	}
	return a, cmd
}

// View implements tea.Model.
func (a *SelectApp) View() string {
	if a.done {
		return ""
	}
	styles := defaultThemeManager.GetStyles()

	var b strings.Builder
	b.WriteString(styles.Header.Render("BitBucket Repository"))
	b.WriteString("\n")
	b.WriteString(a.selector.View())
	b.WriteString("\n")

	switch {
	case a.err != nil:
		b.WriteString(styles.StatusError.Render(errorMessage(a.err)))
	case a.loadingUser:
		b.WriteString(styles.Loading.Render("Loading your repositories..."))
	case a.searching:
		b.WriteString(styles.Loading.Render(fmt.Sprintf("Searching for %q...", a.query)))
	default:
		b.WriteString(renderSeparator(a.width / 2))
	}
	b.WriteString("\n")
	return b.String()
}

func errorMessage(err error) string {
	if errors.Is(err, domain.ErrNoToken) {
		return "No BitBucket token configured. Run `bbr token set` or export BITBUCKET_TOKEN."
	}
	return fmt.Sprintf("Error: %v", err)
}
