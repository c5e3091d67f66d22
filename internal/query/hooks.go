package query

import (
	"context"

	"github.com/yourusername/bbrepo/internal/adapter/bitbucket"
	"github.com/yourusername/bbrepo/internal/domain"
)

// Status is the fetch state of a query.
type Status int

const (
	// StatusIdle means the query was disabled and nothing was fetched.
	StatusIdle Status = iota
	// StatusSuccess means Data holds the response body.
	StatusSuccess
	// StatusError means the fetch failed; Err holds the cause.
	StatusError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the outcome of a hook call.
type State[T any] struct {
	Key    Key
	Status Status
	Data   T
	Err    error
}

// IsFetched reports whether a request was made (successfully or not).
func (s State[T]) IsFetched() bool {
	return s.Status != StatusIdle
}

// Source is the API surface the hooks wrap.
type Source interface {
	ListRepositories(ctx context.Context, opts bitbucket.RepositoriesOptions) (*bitbucket.Result[domain.Page[domain.Repository]], error)
	GetUser(ctx context.Context) (*bitbucket.Result[domain.User], error)
	ListWorkspaces(ctx context.Context) (*bitbucket.Result[[]string], error)
	SearchRepositories(ctx context.Context, opts bitbucket.SearchOptions) (*bitbucket.Result[domain.Page[domain.Repository]], error)
}

// Hooks binds each API operation to a cache key and an enabled predicate.
type Hooks struct {
	source Source
	tokens domain.TokenProvider
	cache  *Cache
}

// NewHooks creates hooks over source. A nil cache gets a private one.
func NewHooks(source Source, tokens domain.TokenProvider, cache *Cache) *Hooks {
	if cache == nil {
		cache = NewCache()
	}
	return &Hooks{source: source, tokens: tokens, cache: cache}
}

// Cache returns the underlying cache.
func (h *Hooks) Cache() *Cache {
	return h.cache
}

// Enabled reports whether token-gated hooks may fetch.
func (h *Hooks) Enabled() bool {
	return domain.HasToken(h.tokens)
}

// SearchEnabled reports whether a search for query may fetch.
func (h *Hooks) SearchEnabled(query string) bool {
	return query != "" && h.Enabled()
}

// RepositoriesKey is the cache key for a repository listing.
func RepositoriesKey(page, perPage int, sort, workspace string) Key {
	return NewKey("bitbucket", "repositories", page, perPage, sort, workspace)
}

// UserKey is the cache key for the current user.
func UserKey() Key {
	return NewKey("bitbucket", "user")
}

// WorkspacesKey is the cache key for the workspace listing.
func WorkspacesKey() Key {
	return NewKey("bitbucket", "workspaces")
}

// SearchKey is the cache key for a repository search.
func SearchKey(query string, perPage int, sort string) Key {
	return NewKey("bitbucket", "search", query, perPage, sort)
}

// Repositories lists repositories. Zero arguments take the API defaults.
func (h *Hooks) Repositories(ctx context.Context, page, perPage int, sort, workspace string) State[domain.Page[domain.Repository]] {
	opts := bitbucket.RepositoriesOptions{Page: page, PerPage: perPage, Sort: sort, Workspace: workspace}
	if opts.Page == 0 {
		opts.Page = bitbucket.DefaultPage
	}
	if opts.PerPage == 0 {
		opts.PerPage = bitbucket.DefaultPerPage
	}
	if opts.Sort == "" {
		opts.Sort = bitbucket.DefaultSort
	}

	key := RepositoriesKey(opts.Page, opts.PerPage, opts.Sort, opts.Workspace)
	return run(ctx, h, key, h.Enabled(), func(ctx context.Context) (domain.Page[domain.Repository], error) {
		res, err := h.source.ListRepositories(ctx, opts)
		if err != nil {
			return domain.Page[domain.Repository]{}, err
		}
		return res.Data, nil
	})
}

// User fetches the authenticated user.
func (h *Hooks) User(ctx context.Context) State[domain.User] {
	return run(ctx, h, UserKey(), h.Enabled(), func(ctx context.Context) (domain.User, error) {
		res, err := h.source.GetUser(ctx)
		if err != nil {
			return domain.User{}, err
		}
		return res.Data, nil
	})
}

// Workspaces fetches the workspace slugs.
func (h *Hooks) Workspaces(ctx context.Context) State[[]string] {
	return run(ctx, h, WorkspacesKey(), h.Enabled(), func(ctx context.Context) ([]string, error) {
		res, err := h.source.ListWorkspaces(ctx)
		if err != nil {
			return nil, err
		}
		return res.Data, nil
	})
}

// SearchRepositories searches by name. An empty query never fetches.
func (h *Hooks) SearchRepositories(ctx context.Context, query string, perPage int, sort string) State[domain.Page[domain.Repository]] {
	opts := bitbucket.SearchOptions{Query: query, PerPage: perPage, Sort: sort}
	if opts.PerPage == 0 {
		opts.PerPage = bitbucket.DefaultSearchPerPage
	}
	if opts.Sort == "" {
		opts.Sort = bitbucket.DefaultSort
	}

	key := SearchKey(opts.Query, opts.PerPage, opts.Sort)
	return run(ctx, h, key, h.SearchEnabled(query), func(ctx context.Context) (domain.Page[domain.Repository], error) {
		res, err := h.source.SearchRepositories(ctx, opts)
		if err != nil {
			return domain.Page[domain.Repository]{}, err
		}
		return res.Data, nil
	})
}

func run[T any](ctx context.Context, h *Hooks, key Key, enabled bool, fn func(context.Context) (T, error)) State[T] {
	if !enabled {
		return State[T]{Key: key, Status: StatusIdle}
	}

	v, err := h.cache.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return State[T]{Key: key, Status: StatusError, Err: err}
	}
	return State[T]{Key: key, Status: StatusSuccess, Data: v.(T)}
}
