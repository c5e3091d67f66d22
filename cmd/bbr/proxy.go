package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yourusername/bbrepo/internal/adapter/proxy"
	"github.com/yourusername/bbrepo/internal/ui"
	"pkt.systems/pslog"
)

func newProxyCmd(opts *rootOptions) *cobra.Command {
	var addr, upstream string

	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Serve the /api/bitbucket proxy",
		Long: `Serves the BitBucket proxy the client commands talk to. Requests must carry
the X-BitBucket-Token header, which is forwarded upstream as a bearer token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Proxy.Addr
			}
			if upstream == "" {
				upstream = cfg.Proxy.UpstreamURL
			}

			srv, err := proxy.NewServer(proxy.Config{Addr: addr, UpstreamURL: upstream})
			if err != nil {
				return err
			}
			pslog.Ctx(cmd.Context()).Debug("starting proxy", "addr", addr, "upstream", upstream, "prefix", proxy.Prefix)
			ui.NewPrinter(cmd.ErrOrStderr()).Info(fmt.Sprintf("Serving %s on %s (upstream %s)", proxy.Prefix, addr, upstream))
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&upstream, "upstream", "", "BitBucket API base URL (default from config)")
	return cmd
}
