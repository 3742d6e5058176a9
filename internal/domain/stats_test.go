package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommit_AuthorKey(t *testing.T) {
	testCases := []struct {
		name     string
		commit   Commit
		expected string
	}{
		{name: "login wins over name", commit: Commit{AuthorLogin: "alice", AuthorName: "Alice A."}, expected: "alice"},
		{name: "falls back to author name", commit: Commit{AuthorName: "Alice A."}, expected: "Alice A."},
		{name: "falls back to unknown", commit: Commit{}, expected: UnknownAuthor},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.commit.AuthorKey())
		})
	}
}

func TestRepository_Active(t *testing.T) {
	assert.True(t, Repository{}.Active())
	assert.False(t, Repository{Archived: true}.Active())
	assert.False(t, Repository{Disabled: true}.Active())
}

func TestNewEmptyReport(t *testing.T) {
	at := time.Date(2025, 9, 4, 12, 0, 0, 0, time.UTC)
	r := NewEmptyReport("org", 30, at)

	assert.Equal(t, "2025-09-04T12:00:00Z", r.GeneratedAt)
	assert.NotNil(t, r.Repos)
	assert.Empty(t, r.Leaderboards.TopRepos)
	assert.Empty(t, r.Leaderboards.TopContributors)
	assert.Nil(t, r.Summary)
}
