package usecase

import (
	"context"
	"fmt"

	"github.com/yourusername/bbrepo/internal/domain"
	"github.com/yourusername/bbrepo/internal/query"
)

// ListRepositoriesUseCase lists one page of repositories.
type ListRepositoriesUseCase struct {
	hooks *query.Hooks
}

// NewListRepositoriesUseCase creates a new ListRepositoriesUseCase.
func NewListRepositoriesUseCase(hooks *query.Hooks) *ListRepositoriesUseCase {
	return &ListRepositoriesUseCase{hooks: hooks}
}

// ListRepositoriesRequest contains the parameters for listing repositories.
type ListRepositoriesRequest struct {
	Page      int
	PerPage   int
	Sort      string
	Workspace string // empty lists the user's own repositories
}

// ListRepositoriesResponse contains one page of repositories.
type ListRepositoriesResponse struct {
	Page    domain.Page[domain.Repository]
	Message string
}

// Execute lists repositories.
func (uc *ListRepositoriesUseCase) Execute(ctx context.Context, req ListRepositoriesRequest) (*ListRepositoriesResponse, error) {
	state := uc.hooks.Repositories(ctx, req.Page, req.PerPage, req.Sort, req.Workspace)
	if err := stateErr(state.Status, state.Err); err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	return &ListRepositoriesResponse{
		Page:    state.Data,
		Message: fmt.Sprintf("Showing %d of %d repositories (page %d)", len(state.Data.Values), state.Data.Size, state.Data.Page),
	}, nil
}

// stateErr maps a hook state to the error a command should report.
func stateErr(status query.Status, err error) error {
	switch status {
	case query.StatusIdle:
		return domain.ErrNoToken
	case query.StatusError:
		return err
	default:
		return nil
	}
}
