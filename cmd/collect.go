package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/org-activity-stats/internal/gateway"
	"github.com/naka-gawa/org-activity-stats/internal/report"
	"github.com/naka-gawa/org-activity-stats/internal/track"
	"github.com/naka-gawa/org-activity-stats/internal/usecase"
)

func newCollectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Aggregates organization commit activity and writes it as JSON",
		Long:  `Aggregates commits of every active public repository in the organization over the configured window and writes the report, with leaderboards, to OUTPUT_PATH.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Fail before any network activity.
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			mapping, err := track.LoadMapping(a.cfg.TrackMapPath)
			if err != nil {
				return err
			}

			// Inject dependencies and run the main business logic.
			githubGateway, err := gateway.NewGitHubGateway(a.cfg.Token, a.logger)
			if err != nil {
				return err
			}
			aggregator := usecase.NewAggregator(githubGateway, track.NewClassifier(mapping), a.logger)

			result, err := aggregator.Aggregate(cmd.Context(), a.cfg.Org, a.cfg.WindowDays, time.Now())
			if err != nil {
				return err
			}

			if err := report.Write(a.cfg.OutputPath, result); err != nil {
				return err
			}
			a.logger.WithField("path", a.cfg.OutputPath).Info("Report written")
			return nil
		},
	}
}
