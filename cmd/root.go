// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/org-activity-stats/internal/config"
)

// app carries what every subcommand needs. It is filled once before any subcommand runs.
type app struct {
	cfg    config.Config
	logger *logrus.Logger
}

// setup loads .env (if present) and the environment, then sets up the logger.
func (a *app) setup(logOut io.Writer) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(config.NewViper())
	if err != nil {
		return err
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(logOut)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	a.cfg = cfg
	a.logger = logger
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "org-activity-stats",
		Short: "Collects GitHub organization activity into a static JSON leaderboard.",
		Long: `org-activity-stats enumerates the public repositories of a GitHub organization,
counts their commits over a trailing window, and writes the result with top repository
and contributor leaderboards to a JSON file. The serve command publishes that file.

Behavior is controlled through environment variables (GH_TOKEN/GITHUB_TOKEN, ORG,
WINDOW_DAYS, TRACK_MAP_PATH, OUTPUT_PATH, SITE_DIR, PORT, LOG_LEVEL); a .env file in the
working directory is honored.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	rootCmd.AddCommand(newCollectCmd(a), newServeCmd(a), newPlaceholderCmd(a))
	return rootCmd
}

// Execute builds the command tree and runs it until completion or SIGINT/SIGTERM.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
