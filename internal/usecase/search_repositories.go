package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/bbrepo/internal/domain"
	"github.com/yourusername/bbrepo/internal/query"
)

// ErrEmptyQuery is returned when a search is requested without a query.
var ErrEmptyQuery = errors.New("search query cannot be empty")

// SearchRepositoriesUseCase searches repositories by name.
type SearchRepositoriesUseCase struct {
	hooks *query.Hooks
}

// NewSearchRepositoriesUseCase creates a new SearchRepositoriesUseCase.
func NewSearchRepositoriesUseCase(hooks *query.Hooks) *SearchRepositoriesUseCase {
	return &SearchRepositoriesUseCase{hooks: hooks}
}

// SearchRepositoriesRequest contains the search parameters.
type SearchRepositoriesRequest struct {
	Query   string
	PerPage int
	Sort    string
}

// SearchRepositoriesResponse contains the matching repositories.
type SearchRepositoriesResponse struct {
	Repositories []domain.Repository
	Total        int
}

// Execute runs the search.
func (uc *SearchRepositoriesUseCase) Execute(ctx context.Context, req SearchRepositoriesRequest) (*SearchRepositoriesResponse, error) {
	if req.Query == "" {
		return nil, ErrEmptyQuery
	}

	state := uc.hooks.SearchRepositories(ctx, req.Query, req.PerPage, req.Sort)
	if err := stateErr(state.Status, state.Err); err != nil {
		return nil, fmt.Errorf("failed to search repositories: %w", err)
	}

	return &SearchRepositoriesResponse{
		Repositories: state.Data.Values,
		Total:        state.Data.Size,
	}, nil
}
