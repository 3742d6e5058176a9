package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/org-activity-stats/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serves SITE_DIR as static files on PORT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.New(a.cfg.SiteDir, a.cfg.Addr(), a.logger).Run(cmd.Context())
		},
	}
}
