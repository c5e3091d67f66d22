package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yourusername/bbrepo/internal/adapter/tokenstore"
	"github.com/yourusername/bbrepo/internal/domain"
	"github.com/yourusername/bbrepo/internal/ui"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored BitBucket token",
	}
	cmd.AddCommand(newTokenSetCmd(opts))
	cmd.AddCommand(newTokenClearCmd(opts))
	cmd.AddCommand(newTokenShowCmd(opts))
	return cmd
}

func newTokenSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set [token]",
		Short: "Store a token (read from stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openStore()
			if err != nil {
				return err
			}

			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = line
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("token cannot be empty")
			}

			if err := a.store.Set(tokenstore.TokenKey, token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			ui.NewPrinter(cmd.OutOrStdout()).Success("Token saved to " + a.store.Path())
			if a.cfg.Token != "" {
				ui.NewPrinter(cmd.OutOrStdout()).Warning("BITBUCKET_TOKEN is set and takes precedence over the stored token")
			}
			return nil
		},
	}
}

func newTokenClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openStore()
			if err != nil {
				return err
			}
			if err := a.store.Delete(tokenstore.TokenKey); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}
			ui.NewPrinter(cmd.OutOrStdout()).Success("Token cleared")
			return nil
		},
	}
}

func newTokenShowCmd(opts *rootOptions) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective token and where it comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openStore()
			if err != nil {
				return err
			}

			token := a.tokens.Token()
			if token == "" {
				return domain.ErrNoToken
			}
			source := "store (" + a.store.Path() + ")"
			if a.cfg.Token != "" {
				source = "environment (BITBUCKET_TOKEN)"
			}
			if !reveal {
				token = maskToken(token)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", ui.FormatLabel("Token: "), ui.FormatValue(token))
			fmt.Fprintf(out, "%s %s\n", ui.FormatLabel("Source:"), source)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the token in full")
	return cmd
}

// maskToken keeps the last four characters of tokens longer than eight.
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
