package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/org-activity-stats/internal/domain"
)

// Leaderboard caps.
const (
	TopReposLimit        = 10
	TopContributorsLimit = 15
)

// tally counts occurrences per key and remembers the order keys were first seen.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string, n int) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
}

func (t *tally) len() int {
	return len(t.order)
}

// ranked returns every key sorted by count, descending; equal counts keep first-seen order.
func (t *tally) ranked() []domain.ContributorCount {
	out := make([]domain.ContributorCount, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, domain.ContributorCount{Login: key, Commits: t.counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Commits > out[j].Commits
	})
	return out
}

// TopRepositories ranks repositories by commit count, keeping encounter order on ties.
func TopRepositories(repos []domain.RepoSummary, limit int) []domain.RepoCount {
	out := make([]domain.RepoCount, 0, len(repos))
	for _, r := range repos {
		out = append(out, domain.RepoCount{Repo: r.Name, Commits: r.CommitsCount})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Commits > out[j].Commits
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TopContributors ranks contributors by commit count, keeping encounter order on ties.
func TopContributors(contributors []domain.ContributorCount, limit int) []domain.ContributorCount {
	out := make([]domain.ContributorCount, len(contributors))
	copy(out, contributors)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Commits > out[j].Commits
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BuildLeaderboards derives both capped leaderboards from the current run only.
func BuildLeaderboards(repos []domain.RepoSummary, contributors []domain.ContributorCount) domain.Leaderboards {
	return domain.Leaderboards{
		TopRepos:        TopRepositories(repos, TopReposLimit),
		TopContributors: TopContributors(contributors, TopContributorsLimit),
	}
}

// Summarize computes organization-wide figures over the reported repositories.
func Summarize(repos []domain.RepoSummary, contributorsTotal int) *domain.Summary {
	s := &domain.Summary{
		ActiveRepos:       len(repos),
		ContributorsTotal: contributorsTotal,
	}
	if len(repos) == 0 {
		return s
	}

	data := make(stats.Float64Data, 0, len(repos))
	for _, r := range repos {
		s.CommitsTotal += r.CommitsCount
		data = append(data, float64(r.CommitsCount))
	}
	// Mean, Median and Round only fail on empty input or NaN, both excluded above.
	mean, _ := data.Mean()
	median, _ := data.Median()
	s.MeanCommitsPerRepo, _ = stats.Round(mean, 2)
	s.MedianCommitsPerRepo, _ = stats.Round(median, 2)
	return s
}
