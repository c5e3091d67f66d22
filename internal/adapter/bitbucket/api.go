package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yourusername/bbrepo/internal/domain"
)

// Fixed endpoint paths relative to the client base URL.
const (
	PathRepositories       = "/repositories"
	PathUser               = "/user"
	PathWorkspaces         = "/workspaces"
	PathSearchRepositories = "/search/repositories"
)

// Defaults applied when options leave a field zero.
const (
	DefaultPage          = 1
	DefaultPerPage       = 10
	DefaultSearchPerPage = 5
	DefaultSort          = "updated_on"
)

// Result is a decoded response envelope.
type Result[T any] struct {
	Status int
	Data   T
}

// RepositoriesOptions shapes a repository listing.
type RepositoriesOptions struct {
	Page      int
	PerPage   int
	Sort      string
	Workspace string // empty means the authenticated user's repositories
}

// DefaultRepositoriesOptions returns page 1, 10 per page, sorted by update time.
func DefaultRepositoriesOptions() RepositoriesOptions {
	return RepositoriesOptions{Page: DefaultPage, PerPage: DefaultPerPage, Sort: DefaultSort}
}

func (o RepositoriesOptions) withDefaults() RepositoriesOptions {
	if o.Page == 0 {
		o.Page = DefaultPage
	}
	if o.PerPage == 0 {
		o.PerPage = DefaultPerPage
	}
	if o.Sort == "" {
		o.Sort = DefaultSort
	}
	return o
}

// Params returns the exact request parameters for o.
func (o RepositoriesOptions) Params() Params {
	o = o.withDefaults()
	p := Params{
		"page":      o.Page,
		"per_page":  o.PerPage,
		"sort":      o.Sort,
		"workspace": nil,
	}
	if o.Workspace != "" {
		p["workspace"] = o.Workspace
	}
	return p
}

// SearchOptions shapes a repository search.
type SearchOptions struct {
	Query   string
	PerPage int
	Sort    string
}

// DefaultSearchOptions returns a search for query with 5 per page.
func DefaultSearchOptions(query string) SearchOptions {
	return SearchOptions{Query: query, PerPage: DefaultSearchPerPage, Sort: DefaultSort}
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.PerPage == 0 {
		o.PerPage = DefaultSearchPerPage
	}
	if o.Sort == "" {
		o.Sort = DefaultSort
	}
	return o
}

// Params returns the exact request parameters for o.
func (o SearchOptions) Params() Params {
	o = o.withDefaults()
	return Params{
		"query":    o.Query,
		"per_page": o.PerPage,
		"sort":     o.Sort,
	}
}

// API is the typed BitBucket surface over a Getter.
type API struct {
	getter Getter
}

// NewAPI creates an API backed by getter.
func NewAPI(getter Getter) *API {
	return &API{getter: getter}
}

// ListRepositories lists repositories for the user or a workspace.
func (a *API) ListRepositories(ctx context.Context, opts RepositoriesOptions) (*Result[domain.Page[domain.Repository]], error) {
	return get[domain.Page[domain.Repository]](ctx, a.getter, PathRepositories, opts.Params())
}

// GetUser returns the authenticated user.
func (a *API) GetUser(ctx context.Context) (*Result[domain.User], error) {
	return get[domain.User](ctx, a.getter, PathUser, nil)
}

// ListWorkspaces returns the slugs of the user's workspaces.
func (a *API) ListWorkspaces(ctx context.Context) (*Result[[]string], error) {
	return get[[]string](ctx, a.getter, PathWorkspaces, nil)
}

// SearchRepositories searches repositories by name.
func (a *API) SearchRepositories(ctx context.Context, opts SearchOptions) (*Result[domain.Page[domain.Repository]], error) {
	return get[domain.Page[domain.Repository]](ctx, a.getter, PathSearchRepositories, opts.Params())
}

func get[T any](ctx context.Context, g Getter, path string, params Params) (*Result[T], error) {
	resp, err := g.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var data T
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return nil, fmt.Errorf("failed to decode %s response: %w", path, err)
		}
	}

	return &Result[T]{Status: resp.Status, Data: data}, nil
}
