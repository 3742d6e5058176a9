package track

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Infer(t *testing.T) {
	classifier := NewClassifier(Mapping{"repo-y": "frontend", "repo-x": "mapped"})

	testCases := []struct {
		name          string
		repo          string
		topics        []string
		expectedTrack string
		expectedOK    bool
	}{
		{name: "topic prefix", repo: "repo-z", topics: []string{"go", "track-backend"}, expectedTrack: "backend", expectedOK: true},
		{name: "topic wins over mapping", repo: "repo-x", topics: []string{"track-backend"}, expectedTrack: "backend", expectedOK: true},
		{name: "first matching topic wins", repo: "repo-z", topics: []string{"track-a", "track-b"}, expectedTrack: "a", expectedOK: true},
		{name: "mapping is case-insensitive", repo: "Repo-Y", topics: nil, expectedTrack: "frontend", expectedOK: true},
		{name: "unassigned", repo: "other", topics: []string{"backend-track"}, expectedOK: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			track, ok := classifier.Infer(tc.repo, tc.topics)
			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expectedTrack, track)
		})
	}
}

func TestClassifier_NilMapping(t *testing.T) {
	track, ok := NewClassifier(nil).Infer("repo-y", []string{})
	assert.False(t, ok)
	assert.Empty(t, track)
}

func TestLoadMapping(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file yields empty mapping", func(t *testing.T) {
		m, err := LoadMapping(filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		assert.Empty(t, m)
	})

	t.Run("inverts and lower-cases repo names", func(t *testing.T) {
		path := filepath.Join(dir, "track_map.yaml")
		content := "backend:\n  - API-Server\n  - worker\nfrontend:\n  - Web\nempty:\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		m, err := LoadMapping(path)
		require.NoError(t, err)
		assert.Equal(t, Mapping{"api-server": "backend", "worker": "backend", "web": "frontend"}, m)
	})

	t.Run("repository under several tracks gets the last one", func(t *testing.T) {
		path := filepath.Join(dir, "duplicates.yaml")
		content := "d:\n  - shared\na:\n  - Shared\n  - only-a\nc:\n  - shared\nb:\n  - SHARED\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		for i := 0; i < 50; i++ {
			m, err := LoadMapping(path)
			require.NoError(t, err)
			require.Equal(t, Mapping{"shared": "b", "only-a": "a"}, m)
		}
	})

	t.Run("non-mapping document is an error", func(t *testing.T) {
		path := filepath.Join(dir, "list.yaml")
		require.NoError(t, os.WriteFile(path, []byte("- repo-a\n- repo-b\n"), 0o644))

		_, err := LoadMapping(path)
		assert.ErrorContains(t, err, "want a mapping")
	})

	t.Run("empty file yields empty mapping", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		m, err := LoadMapping(path)
		require.NoError(t, err)
		assert.Empty(t, m)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("backend: [unterminated"), 0o644))

		_, err := LoadMapping(path)
		assert.ErrorContains(t, err, "failed to parse track map")
	})
}
