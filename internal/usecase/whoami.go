package usecase

import (
	"context"
	"fmt"

	"github.com/yourusername/bbrepo/internal/domain"
	"github.com/yourusername/bbrepo/internal/query"
)

// WhoAmIUseCase reports the authenticated user and their workspaces.
type WhoAmIUseCase struct {
	hooks *query.Hooks
}

// NewWhoAmIUseCase creates a new WhoAmIUseCase.
func NewWhoAmIUseCase(hooks *query.Hooks) *WhoAmIUseCase {
	return &WhoAmIUseCase{hooks: hooks}
}

// WhoAmIResponse contains the user and, optionally, their workspaces.
type WhoAmIResponse struct {
	User       domain.User
	Workspaces []string
}

// Execute fetches the user; workspaces are fetched when withWorkspaces is set.
func (uc *WhoAmIUseCase) Execute(ctx context.Context, withWorkspaces bool) (*WhoAmIResponse, error) {
	user := uc.hooks.User(ctx)
	if err := stateErr(user.Status, user.Err); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	resp := &WhoAmIResponse{User: user.Data}
	if withWorkspaces {
		ws := uc.hooks.Workspaces(ctx)
		if err := stateErr(ws.Status, ws.Err); err != nil {
			return nil, fmt.Errorf("failed to list workspaces: %w", err)
		}
		resp.Workspaces = ws.Data
	}
	return resp, nil
}

// ListWorkspacesUseCase lists the workspace slugs visible to the token.
type ListWorkspacesUseCase struct {
	hooks *query.Hooks
}

// NewListWorkspacesUseCase creates a new ListWorkspacesUseCase.
func NewListWorkspacesUseCase(hooks *query.Hooks) *ListWorkspacesUseCase {
	return &ListWorkspacesUseCase{hooks: hooks}
}

// Execute lists workspaces.
func (uc *ListWorkspacesUseCase) Execute(ctx context.Context) ([]string, error) {
	ws := uc.hooks.Workspaces(ctx)
	if err := stateErr(ws.Status, ws.Err); err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return ws.Data, nil
}
