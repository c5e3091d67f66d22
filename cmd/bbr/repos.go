package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yourusername/bbrepo/internal/adapter/bitbucket"
	"github.com/yourusername/bbrepo/internal/domain"
	"github.com/yourusername/bbrepo/internal/usecase"
)

func newReposCmd(opts *rootOptions) *cobra.Command {
	var req usecase.ListRepositoriesRequest
	var allWorkspaces bool

	cmd := &cobra.Command{
		Use:   "repos",
		Short: "List repositories",
		Long: `Lists one page of your repositories, the repositories of a workspace
(--workspace), or the first page of every workspace you belong to
(--all-workspaces).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.load(ctx)
			if err != nil {
				return err
			}

			if allWorkspaces {
				resp, err := usecase.NewAggregateRepositoriesUseCase(a.hooks).Execute(ctx, usecase.AggregateRepositoriesRequest{
					PerPage: req.PerPage,
					Sort:    req.Sort,
				})
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), opts.output, repositoryTable(resp.Repositories, fmt.Sprintf("%d workspaces", len(resp.Workspaces))), resp.Repositories)
			}

			resp, err := usecase.NewListRepositoriesUseCase(a.hooks).Execute(ctx, req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, repositoryTable(resp.Page.Values, resp.Message), resp.Page)
		},
	}

	cmd.Flags().IntVar(&req.Page, "page", bitbucket.DefaultPage, "page number")
	cmd.Flags().IntVar(&req.PerPage, "per-page", bitbucket.DefaultPerPage, "repositories per page")
	cmd.Flags().StringVar(&req.Sort, "sort", bitbucket.DefaultSort, "sort field")
	cmd.Flags().StringVarP(&req.Workspace, "workspace", "w", "", "list a workspace instead of your own repositories")
	cmd.Flags().BoolVar(&allWorkspaces, "all-workspaces", false, "list the first page of every workspace")
	cmd.MarkFlagsMutuallyExclusive("workspace", "all-workspaces")

	return cmd
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	req := usecase.SearchRepositoriesRequest{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search repositories by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.load(ctx)
			if err != nil {
				return err
			}

			req.Query = args[0]
			resp, err := usecase.NewSearchRepositoriesUseCase(a.hooks).Execute(ctx, req)
			if err != nil {
				return err
			}
			footer := fmt.Sprintf("%d of %d matches", len(resp.Repositories), resp.Total)
			return render(cmd.OutOrStdout(), opts.output, repositoryTable(resp.Repositories, footer), resp)
		},
	}

	cmd.Flags().IntVar(&req.PerPage, "per-page", bitbucket.DefaultSearchPerPage, "results per page")
	cmd.Flags().StringVar(&req.Sort, "sort", bitbucket.DefaultSort, "sort field")

	return cmd
}

func repositoryTable(repos []domain.Repository, footer string) tableSpec {
	spec := tableSpec{
		header:  []string{"Repository", "Workspace", "Watchers"},
		numeric: []int{3},
	}
	for _, r := range repos {
		spec.row(r.FullName, r.Namespace(), r.WatchersCount)
	}
	if footer != "" {
		spec.footer = []any{footer, "", ""}
	}
	return spec
}
