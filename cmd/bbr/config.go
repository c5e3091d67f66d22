package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yourusername/bbrepo/internal/adapter/config"
	"github.com/yourusername/bbrepo/internal/ui"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialize the configuration",
	}
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigInitCmd(opts))
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n%s", mgr.ConfigPath(), data)
			theme := ui.GetGlobalThemeManager().GetCurrentTheme()
			fmt.Fprintf(out, "# theme %s: %s\n", theme.Name, theme.Description)
			fmt.Fprintf(out, "# themes: %s\n", strings.Join(ui.GetThemeNames(), ", "))
			if cfg.Token != "" {
				fmt.Fprintln(out, "# token: set via BITBUCKET_TOKEN")
			}
			return nil
		},
	}
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := opts.manager()
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			if _, err := os.Stat(mgr.ConfigPath()); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", mgr.ConfigPath())
			}

			cfg := config.Default()
			if err := mgr.Save(&cfg); err != nil {
				return err
			}
			ui.NewPrinter(cmd.OutOrStdout()).Success("Wrote " + mgr.ConfigPath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
