package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/yourusername/bbrepo/internal/adapter/analytics"
	"github.com/yourusername/bbrepo/internal/adapter/browser"
	"github.com/yourusername/bbrepo/internal/adapter/tokenstore"
	"github.com/yourusername/bbrepo/internal/domain"
	"github.com/yourusername/bbrepo/internal/ui"
	"pkt.systems/pslog"
)

func newSelectCmd(opts *rootOptions) *cobra.Command {
	var logFile string
	var perPage int

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Pick a repository interactively",
		Long: `Opens a searchable repository picker. Your own repositories are listed
first; typing searches BitBucket by name. The chosen repository is saved
and printed to stdout, so the command can be used in scripts:

    repo=$(bbr select)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The TUI owns the terminal; logs go to --log-file or nowhere.
			logger, closeLog, err := tuiLogger(logFile)
			if err != nil {
				return err
			}
			defer closeLog()
			ctx := pslog.ContextWithLogger(cmd.Context(), logger)

			a, err := opts.load(ctx)
			if err != nil {
				return err
			}

			selection := domain.NewMemorySelectionStore()
			selection.SetSelected(a.store.LoadSelection())
			selection.Subscribe(persistSelection(a.store, logger))

			app := ui.NewSelectApp(ctx, ui.SelectAppConfig{
				Hooks:     a.hooks,
				Store:     selection,
				Analytics: analytics.NewLogSink(logger),
				Config:    a.cfg.AppConfig(),
				Opener:    browser.NewSystem(),
				PerPage:   perPage,
			})

			p := tea.NewProgram(app, tea.WithContext(ctx), tea.WithOutput(cmd.ErrOrStderr()))
			if _, err := p.Run(); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("UI error: %w", err)
			}

			if !app.Done() {
				ui.NewPrinter(cmd.ErrOrStderr()).Subtle("No repository selected.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), selection.Selected().FullName)
			return nil
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write structured logs to this file while the picker runs")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "page size for listing and search (default 10 / 5)")
	return cmd
}

func tuiLogger(path string) (pslog.Logger, func(), error) {
	if path == "" {
		return pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured}), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := pslog.NewWithOptions(f, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.DebugLevel,
	})
	return logger, func() { _ = f.Close() }, nil
}

// persistSelection saves every selection change to the token store.
func persistSelection(store *tokenstore.Store, logger pslog.Logger) func(domain.Selection) {
	return func(sel domain.Selection) {
		if err := store.SaveSelection(sel); err != nil {
			logger.Warn("failed to persist selection", "selection", sel.String(), "error", err)
			return
		}
		logger.Debug("selection persisted", "selection", sel.String())
	}
}

func newSelectionCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selection",
		Short: "Show or clear the saved repository selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openStore()
			if err != nil {
				return err
			}
			sel := a.store.LoadSelection()
			if !sel.Valid {
				ui.NewPrinter(cmd.ErrOrStderr()).Subtle("No repository selected.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), sel.FullName)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the saved selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openStore()
			if err != nil {
				return err
			}
			if err := a.store.SaveSelection(domain.NoSelection()); err != nil {
				return fmt.Errorf("failed to clear selection: %w", err)
			}
			ui.NewPrinter(cmd.OutOrStdout()).Success("Selection cleared")
			return nil
		},
	})
	return cmd
}
