package main

import (
	"github.com/spf13/cobra"
	"github.com/yourusername/bbrepo/internal/usecase"
)

func newUserCmd(opts *rootOptions) *cobra.Command {
	var withWorkspaces bool

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show the authenticated BitBucket user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.load(ctx)
			if err != nil {
				return err
			}

			resp, err := usecase.NewWhoAmIUseCase(a.hooks).Execute(ctx, withWorkspaces)
			if err != nil {
				return err
			}

			spec := tableSpec{header: []string{"Field", "Value"}}
			spec.row("Username", resp.User.Username)
			spec.row("Display name", resp.User.DisplayName)
			spec.row("UUID", resp.User.UUID)
			for _, ws := range resp.Workspaces {
				spec.row("Workspace", ws)
			}
			return render(cmd.OutOrStdout(), opts.output, spec, resp)
		},
	}

	cmd.Flags().BoolVar(&withWorkspaces, "workspaces", false, "also list workspaces")
	return cmd
}

func newWorkspacesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "workspaces",
		Short: "List the workspaces you belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.load(ctx)
			if err != nil {
				return err
			}

			workspaces, err := usecase.NewListWorkspacesUseCase(a.hooks).Execute(ctx)
			if err != nil {
				return err
			}

			spec := tableSpec{header: []string{"Workspace"}}
			for _, ws := range workspaces {
				spec.row(ws)
			}
			return render(cmd.OutOrStdout(), opts.output, spec, workspaces)
		},
	}
}
