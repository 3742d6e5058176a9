package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/org-activity-stats/internal/report"
)

func newPlaceholderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "placeholder",
		Short: "Writes an empty report into SITE_DIR",
		Long:  `Writes a minimal report with no activity to SITE_DIR/stats.json. A write failure is logged and does not fail the command.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			report.WritePlaceholder(a.cfg.SiteDir, a.cfg.Org, a.cfg.WindowDays, time.Now(), a.logger)
		},
	}
}
