package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/yourusername/bbrepo/internal/adapter/bitbucket"
	"github.com/yourusername/bbrepo/internal/domain"
	"github.com/yourusername/bbrepo/internal/query"
)

type fakeAPI struct {
	mu         sync.Mutex
	workspaces []string
	repos      map[string][]domain.Repository // by workspace, "" for the user
	delays     map[string]time.Duration
	failFor    string
	searches   []bitbucket.SearchOptions
}

func (f *fakeAPI) ListRepositories(_ context.Context, opts bitbucket.RepositoriesOptions) (*bitbucket.Result[domain.Page[domain.Repository]], error) {
	time.Sleep(f.delays[opts.Workspace])
	if f.failFor != "" && opts.Workspace == f.failFor {
		return nil, &bitbucket.StatusError{Method: "GET", Path: "/repositories", Status: 403}
	}
	values := f.repos[opts.Workspace]
	return &bitbucket.Result[domain.Page[domain.Repository]]{
		Status: 200,
		Data:   domain.Page[domain.Repository]{Values: values, Page: opts.Page, PageLen: opts.PerPage, Size: len(values)},
	}, nil
}

func (f *fakeAPI) GetUser(context.Context) (*bitbucket.Result[domain.User], error) {
	return &bitbucket.Result[domain.User]{Status: 200, Data: domain.User{UUID: "u1", Username: "testuser", DisplayName: "Test User"}}, nil
}

func (f *fakeAPI) ListWorkspaces(context.Context) (*bitbucket.Result[[]string], error) {
	return &bitbucket.Result[[]string]{Status: 200, Data: f.workspaces}, nil
}

func (f *fakeAPI) SearchRepositories(_ context.Context, opts bitbucket.SearchOptions) (*bitbucket.Result[domain.Page[domain.Repository]], error) {
	f.mu.Lock()
	f.searches = append(f.searches, opts)
	f.mu.Unlock()
	return &bitbucket.Result[domain.Page[domain.Repository]]{
		Status: 200,
		Data:   domain.Page[domain.Repository]{Values: []domain.Repository{{UUID: "9", FullName: "org/" + opts.Query}}, Size: 1},
	}, nil
}

func names(repos []domain.Repository) []string {
	var out []string
	for _, r := range repos {
		out = append(out, r.FullName)
	}
	return out
}

func TestListRepositoriesUseCase(t *testing.T) {
	api := &fakeAPI{repos: map[string][]domain.Repository{"": {{UUID: "1", FullName: "user/repo1"}}}}
	uc := NewListRepositoriesUseCase(query.NewHooks(api, domain.StaticToken("t"), nil))

	resp, err := uc.Execute(context.Background(), ListRepositoriesRequest{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff([]string{"user/repo1"}, names(resp.Page.Values)); diff != "" {
		t.Errorf("repositories mismatch (-want +got):\n%s", diff)
	}
	if resp.Page.Page != 1 || resp.Page.PageLen != 10 {
		t.Errorf("defaults not applied: page=%d pagelen=%d", resp.Page.Page, resp.Page.PageLen)
	}
}

func TestUseCases_RequireToken(t *testing.T) {
	hooks := query.NewHooks(&fakeAPI{}, domain.StaticToken(""), nil)
	ctx := context.Background()

	_, err1 := NewListRepositoriesUseCase(hooks).Execute(ctx, ListRepositoriesRequest{})
	_, err2 := NewAggregateRepositoriesUseCase(hooks).Execute(ctx, AggregateRepositoriesRequest{})
	_, err3 := NewSearchRepositoriesUseCase(hooks).Execute(ctx, SearchRepositoriesRequest{Query: "x"})
	_, err4 := NewWhoAmIUseCase(hooks).Execute(ctx, true)

	for i, err := range []error{err1, err2, err3, err4} {
		if !errors.Is(err, domain.ErrNoToken) {
			t.Errorf("use case %d error = %v, want ErrNoToken", i+1, err)
		}
	}
}

func TestAggregateRepositoriesUseCase_PreservesWorkspaceOrder(t *testing.T) {
	api := &fakeAPI{
		workspaces: []string{"slow", "fast", "empty"},
		repos: map[string][]domain.Repository{
			"slow": {{UUID: "1", FullName: "slow/a"}, {UUID: "2", FullName: "slow/b"}},
			"fast": {{UUID: "3", FullName: "fast/c"}},
		},
		delays: map[string]time.Duration{"slow": 30 * time.Millisecond},
	}
	uc := NewAggregateRepositoriesUseCase(query.NewHooks(api, domain.StaticToken("t"), nil))

	resp, err := uc.Execute(context.Background(), AggregateRepositoriesRequest{PerPage: 50})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff([]string{"slow/a", "slow/b", "fast/c"}, names(resp.Repositories)); diff != "" {
		t.Errorf("repositories mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"slow", "fast", "empty"}, resp.Workspaces); diff != "" {
		t.Errorf("workspaces mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateRepositoriesUseCase_WorkspaceFailure(t *testing.T) {
	api := &fakeAPI{workspaces: []string{"ok", "denied"}, failFor: "denied"}
	uc := NewAggregateRepositoriesUseCase(query.NewHooks(api, domain.StaticToken("t"), nil))

	_, err := uc.Execute(context.Background(), AggregateRepositoriesRequest{})
	if !bitbucket.IsStatus(err, 403) {
		t.Fatalf("Execute() error = %v, want status 403", err)
	}
}

func TestSearchRepositoriesUseCase(t *testing.T) {
	api := &fakeAPI{}
	uc := NewSearchRepositoriesUseCase(query.NewHooks(api, domain.StaticToken("t"), nil))

	if _, err := uc.Execute(context.Background(), SearchRepositoriesRequest{}); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("empty query error = %v, want ErrEmptyQuery", err)
	}

	resp, err := uc.Execute(context.Background(), SearchRepositoriesRequest{Query: "test"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Total != 1 || resp.Repositories[0].FullName != "org/test" {
		t.Errorf("response = %+v", resp)
	}
	want := []bitbucket.SearchOptions{{Query: "test", PerPage: 5, Sort: "updated_on"}}
	if diff := cmp.Diff(want, api.searches); diff != "" {
		t.Errorf("search options mismatch (-want +got):\n%s", diff)
	}
}

func TestWhoAmIUseCase(t *testing.T) {
	api := &fakeAPI{workspaces: []string{"ws1"}}
	uc := NewWhoAmIUseCase(query.NewHooks(api, domain.StaticToken("t"), nil))

	resp, err := uc.Execute(context.Background(), true)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.User.Username != "testuser" {
		t.Errorf("user = %+v", resp.User)
	}
	if diff := cmp.Diff([]string{"ws1"}, resp.Workspaces); diff != "" {
		t.Errorf("workspaces mismatch (-want +got):\n%s", diff)
	}
}

func TestListWorkspacesUseCase(t *testing.T) {
	api := &fakeAPI{workspaces: []string{"ws1", "ws2"}}
	got, err := NewListWorkspacesUseCase(query.NewHooks(api, domain.StaticToken("t"), nil)).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff([]string{"ws1", "ws2"}, got); diff != "" {
		t.Errorf("workspaces mismatch (-want +got):\n%s", diff)
	}
}
