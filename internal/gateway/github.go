// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/org-activity-stats/internal/domain"
)

// DefaultPageDelay is the pause between two consecutive commit pages.
const DefaultPageDelay = 200 * time.Millisecond

// errEmptyRepository is returned by the commit pager when GitHub answers 409 Conflict,
// which it does for repositories without any commit.
var errEmptyRepository = errors.New("repository has no commits")

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	ListRepositories(ctx context.Context, org string) ([]domain.Repository, error)
	FetchCommits(ctx context.Context, fullName string, since time.Time) ([]domain.Commit, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        logrus.FieldLogger
	pageDelay     time.Duration
}

// orgRepositoriesQuery enumerates the public repositories of an organization.
type orgRepositoriesQuery struct {
	Organization struct {
		Repositories struct {
			Nodes []struct {
				Name             string
				NameWithOwner    string
				IsArchived       bool
				IsDisabled       bool
				UpdatedAt        githubv4.DateTime
				PushedAt         githubv4.DateTime
				RepositoryTopics struct {
					Nodes []struct {
						Topic struct {
							Name string
						}
					}
				} `graphql:"repositoryTopics(first: 20)"`
			}
			PageInfo struct {
				HasNextPage bool
				EndCursor   githubv4.String
			}
		} `graphql:"repositories(first: 100, after: $cursor, privacy: PUBLIC, orderBy: {field: UPDATED_AT, direction: DESC})"`
	} `graphql:"organization(login: $org)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger logrus.FieldLogger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
		pageDelay:     DefaultPageDelay,
	}, nil
}

// ListRepositories pages through every public repository of org using the GraphQL cursor.
func (g *GitHubGateway) ListRepositories(ctx context.Context, org string) ([]domain.Repository, error) {
	g.logger.WithField("org", org).Info("Fetching repositories using GraphQL API...")
	variables := map[string]interface{}{
		"org":    githubv4.String(org),
		"cursor": (*githubv4.String)(nil),
	}

	next := func(ctx context.Context) ([]domain.Repository, bool, error) {
		var q orgRepositoriesQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, false, fmt.Errorf("failed to execute GraphQL query for repositories: %w", err)
		}
		rs := q.Organization.Repositories
		repos := make([]domain.Repository, 0, len(rs.Nodes))
		for _, n := range rs.Nodes {
			topics := make([]string, 0, len(n.RepositoryTopics.Nodes))
			for _, t := range n.RepositoryTopics.Nodes {
				topics = append(topics, t.Topic.Name)
			}
			repos = append(repos, domain.Repository{
				Name:      n.Name,
				FullName:  n.NameWithOwner,
				Archived:  n.IsArchived,
				Disabled:  n.IsDisabled,
				UpdatedAt: n.UpdatedAt.Time,
				PushedAt:  n.PushedAt.Time,
				Topics:    topics,
			})
		}
		if rs.PageInfo.HasNextPage {
			variables["cursor"] = githubv4.NewString(rs.PageInfo.EndCursor)
			g.logger.Debug("  Fetching next page of repositories...")
		}
		return repos, rs.PageInfo.HasNextPage, nil
	}

	repos, err := collectPages(pages(ctx, next, 0))
	if err != nil {
		return nil, err
	}
	g.logger.WithField("count", len(repos)).Info("Completed fetching repositories.")
	return repos, nil
}

// FetchCommits pages through the commits of fullName since the given time, following the Link header.
// A repository without commits yields an empty slice.
func (g *GitHubGateway) FetchCommits(ctx context.Context, fullName string, since time.Time) ([]domain.Commit, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("invalid repository name %q, want owner/name", fullName)
	}
	log := g.logger.WithField("repo", fullName)
	opts := &github.CommitsListOptions{
		Since:       since,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	next := func(ctx context.Context) ([]domain.Commit, bool, error) {
		result, resp, err := g.restClient.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusConflict {
				return nil, false, errEmptyRepository
			}
			return nil, false, fmt.Errorf("failed to list commits for %s with REST API: %w", fullName, err)
		}
		commits := make([]domain.Commit, 0, len(result))
		for _, c := range result {
			commits = append(commits, domain.Commit{
				AuthorLogin: c.GetAuthor().GetLogin(),
				AuthorName:  c.GetCommit().GetAuthor().GetName(),
				Date:        c.GetCommit().GetAuthor().GetDate().Time,
			})
		}
		if resp.NextPage == 0 {
			return commits, false, nil
		}
		opts.Page = resp.NextPage
		log.Debug("  Fetching next page of commits...")
		return commits, true, nil
	}

	commits, err := collectPages(pages(ctx, next, g.pageDelay))
	if errors.Is(err, errEmptyRepository) {
		log.Warn("Skipping repository (no commits yet)")
		return []domain.Commit{}, nil
	}
	if err != nil {
		return nil, err
	}
	return commits, nil
}
