// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/org-activity-stats/internal/domain"
	"github.com/naka-gawa/org-activity-stats/internal/gateway"
	"github.com/naka-gawa/org-activity-stats/internal/track"
)

// Aggregator is the use case for aggregating organization activity.
// It orchestrates the fetching, classification and counting of data.
type Aggregator struct {
	fetcher    gateway.Fetcher
	classifier *track.Classifier
	logger     logrus.FieldLogger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, classifier *track.Classifier, logger logrus.FieldLogger) *Aggregator {
	return &Aggregator{
		fetcher:    fetcher,
		classifier: classifier,
		logger:     logger,
	}
}

// Aggregate performs the main business logic.
// Repositories are processed one after the other; any fetch error aborts the run.
func (a *Aggregator) Aggregate(ctx context.Context, org string, windowDays int, now time.Time) (*domain.Report, error) {
	now = now.UTC()
	since := now.Add(-time.Duration(windowDays) * 24 * time.Hour).Truncate(time.Second)
	a.logger.WithFields(logrus.Fields{"org": org, "since": since.Format(time.RFC3339)}).Info("Usecase: Starting data aggregation...")

	repos, err := a.fetcher.ListRepositories(ctx, org)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		Org:         org,
		GeneratedAt: now.Format(time.RFC3339),
		WindowDays:  windowDays,
		ReposTotal:  len(repos),
		Repos:       []domain.RepoSummary{},
	}
	contributorTotals := newTally()

	for _, repo := range repos {
		if !repo.Active() {
			a.logger.WithField("repo", repo.FullName).Debug("Skipping archived or disabled repository")
			continue
		}

		commits, err := a.fetcher.FetchCommits(ctx, repo.FullName, since)
		if err != nil {
			return nil, err
		}

		summary, byAuthor := a.summarizeRepository(repo, commits)
		for _, key := range byAuthor.order {
			contributorTotals.add(key, byAuthor.counts[key])
		}
		report.Repos = append(report.Repos, summary)
	}

	report.Leaderboards = BuildLeaderboards(report.Repos, contributorTotals.ranked())
	report.Summary = Summarize(report.Repos, contributorTotals.len())

	a.logger.WithFields(logrus.Fields{
		"repos":   len(report.Repos),
		"commits": report.Summary.CommitsTotal,
	}).Info("Usecase: Aggregation complete.")
	return report, nil
}

// summarizeRepository folds the commits of one repository into its summary and per-author tally.
func (a *Aggregator) summarizeRepository(repo domain.Repository, commits []domain.Commit) (domain.RepoSummary, *tally) {
	byAuthor := newTally()
	var lastCommit time.Time
	for _, c := range commits {
		byAuthor.add(c.AuthorKey(), 1)
		if c.Date.After(lastCommit) {
			lastCommit = c.Date
		}
	}

	topics := repo.Topics
	if topics == nil {
		topics = []string{}
	}

	summary := domain.RepoSummary{
		Name:         repo.Name,
		FullName:     repo.FullName,
		Topics:       topics,
		CommitsCount: len(commits),
		Contributors: byAuthor.ranked(),
		LastCommitAt: lastCommitAt(lastCommit, repo.PushedAt),
	}
	if t, ok := a.classifier.Infer(repo.Name, repo.Topics); ok {
		summary.Track = &t
	}
	return summary, byAuthor
}

func lastCommitAt(lastCommit, pushedAt time.Time) string {
	switch {
	case !lastCommit.IsZero():
		return lastCommit.UTC().Format(time.RFC3339)
	case !pushedAt.IsZero():
		return pushedAt.UTC().Format(time.RFC3339)
	default:
		return domain.NoCommitTimestamp
	}
}
