package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/yourusername/bbrepo/internal/ui"

	"pkt.systems/psi"
	"pkt.systems/pslog"
)

var version = "0.1.0"

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Debug("bbr command failed")
		ui.NewPrinter(os.Stderr).Error(err.Error())
		return 1
	}
	return 0
}

type rootOptions struct {
	configPath string
	output     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "bbr",
		Short: "Browse, search and select BitBucket repositories",
		Long: `bbr lists and searches the BitBucket repositories visible to your token
and lets you pick one interactively. Requests go through the bundled proxy
(bbr proxy) or any server exposing the same /api/bitbucket routes.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.bbrepo/config.yaml)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table, markdown or json")

	root.AddCommand(newSelectCmd(opts))
	root.AddCommand(newSelectionCmd(opts))
	root.AddCommand(newReposCmd(opts))
	root.AddCommand(newSearchCmd(opts))
	root.AddCommand(newUserCmd(opts))
	root.AddCommand(newWorkspacesCmd(opts))
	root.AddCommand(newTokenCmd(opts))
	root.AddCommand(newProxyCmd(opts))
	root.AddCommand(newConfigCmd(opts))

	return root
}
