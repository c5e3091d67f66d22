package usecase

import (
	"context"
	"fmt"

	"github.com/yourusername/bbrepo/internal/domain"
	"github.com/yourusername/bbrepo/internal/query"
	"golang.org/x/sync/errgroup"
)

// maxWorkspaceFetches bounds concurrent per-workspace listings.
const maxWorkspaceFetches = 4

// AggregateRepositoriesUseCase concatenates one page of repositories from
// every workspace the user belongs to.
type AggregateRepositoriesUseCase struct {
	hooks *query.Hooks
}

// NewAggregateRepositoriesUseCase creates a new AggregateRepositoriesUseCase.
func NewAggregateRepositoriesUseCase(hooks *query.Hooks) *AggregateRepositoriesUseCase {
	return &AggregateRepositoriesUseCase{hooks: hooks}
}

// AggregateRepositoriesRequest contains the per-workspace listing parameters.
type AggregateRepositoriesRequest struct {
	PerPage int
	Sort    string
}

// AggregateRepositoriesResponse lists repositories in workspace order.
type AggregateRepositoriesResponse struct {
	Workspaces   []string
	Repositories []domain.Repository
}

// Execute fetches the workspaces, then each workspace's first page concurrently.
func (uc *AggregateRepositoriesUseCase) Execute(ctx context.Context, req AggregateRepositoriesRequest) (*AggregateRepositoriesResponse, error) {
	ws := uc.hooks.Workspaces(ctx)
	if err := stateErr(ws.Status, ws.Err); err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	pages := make([][]domain.Repository, len(ws.Data))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkspaceFetches)
	for i, slug := range ws.Data {
		g.Go(func() error {
			state := uc.hooks.Repositories(gctx, 1, req.PerPage, req.Sort, slug)
			if err := stateErr(state.Status, state.Err); err != nil {
				return fmt.Errorf("workspace %s: %w", slug, err)
			}
			pages[i] = state.Data.Values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	resp := &AggregateRepositoriesResponse{Workspaces: ws.Data}
	for _, page := range pages {
		resp.Repositories = append(resp.Repositories, page...)
	}
	return resp, nil
}
