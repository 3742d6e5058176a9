// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// UnknownAuthor is used when a commit carries neither a linked login nor an author name.
const UnknownAuthor = "unknown"

// NoCommitTimestamp is reported when a repository has neither commits nor a push time.
const NoCommitTimestamp = "N/A"

// Repository is a single repository as enumerated from the organization.
type Repository struct {
	Name      string
	FullName  string
	Archived  bool
	Disabled  bool
	UpdatedAt time.Time
	PushedAt  time.Time
	Topics    []string
}

// Active reports whether the repository should take part in aggregation.
func (r Repository) Active() bool {
	return !r.Archived && !r.Disabled
}

// Commit is the subset of a commit needed for attribution.
type Commit struct {
	AuthorLogin string
	AuthorName  string
	Date        time.Time
}

// AuthorKey returns the identity a commit is attributed to: the linked account login,
// then the raw author name, then UnknownAuthor.
func (c Commit) AuthorKey() string {
	switch {
	case c.AuthorLogin != "":
		return c.AuthorLogin
	case c.AuthorName != "":
		return c.AuthorName
	default:
		return UnknownAuthor
	}
}

// ContributorCount is the number of commits attributed to one login.
type ContributorCount struct {
	Login   string `json:"login"`
	Commits int    `json:"commits"`
}

// RepoCount is the number of commits a repository received in the window.
type RepoCount struct {
	Repo    string `json:"repo"`
	Commits int    `json:"commits"`
}

// RepoSummary holds the activity of a single repository over the window.
// It is the core domain entity of this application.
type RepoSummary struct {
	Name         string             `json:"name"`
	FullName     string             `json:"full"`
	Topics       []string           `json:"topics"`
	Track        *string            `json:"track"`
	CommitsCount int                `json:"commits_count"`
	Contributors []ContributorCount `json:"contributors"`
	LastCommitAt string             `json:"last_commit_at"`
}

// Leaderboards are the capped rankings derived from the repository summaries.
type Leaderboards struct {
	TopRepos        []RepoCount        `json:"top_repos_30d"`
	TopContributors []ContributorCount `json:"top_contributors_30d"`
}

// Summary holds organization-wide figures for the window.
type Summary struct {
	CommitsTotal         int     `json:"commits_total"`
	ActiveRepos          int     `json:"active_repos"`
	ContributorsTotal    int     `json:"contributors_total"`
	MeanCommitsPerRepo   float64 `json:"mean_commits_per_repo"`
	MedianCommitsPerRepo float64 `json:"median_commits_per_repo"`
}

// Report is the document written to disk on every run.
type Report struct {
	Org          string        `json:"org"`
	GeneratedAt  string        `json:"generated_at"`
	WindowDays   int           `json:"window_days"`
	ReposTotal   int           `json:"repos_total"`
	Repos        []RepoSummary `json:"repos"`
	Leaderboards Leaderboards  `json:"leaderboards"`
	Summary      *Summary      `json:"summary,omitempty"`
}

// NewEmptyReport returns a report with no activity, used as a placeholder before the first collection.
func NewEmptyReport(org string, windowDays int, generatedAt time.Time) *Report {
	return &Report{
		Org:         org,
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		WindowDays:  windowDays,
		Repos:       []RepoSummary{},
		Leaderboards: Leaderboards{
			TopRepos:        []RepoCount{},
			TopContributors: []ContributorCount{},
		},
	}
}
