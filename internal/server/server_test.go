package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSite(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>leaderboard</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stats.json"), []byte(`{"org":"org"}`), 0o644))
	return dir
}

func TestServer_Handler(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	ts := httptest.NewServer(New(setupSite(t), ":0", logger).Handler())
	defer ts.Close()

	testCases := []struct {
		name         string
		path         string
		expectedCode int
		contentType  string
		bodyContains string
	}{
		{name: "index file", path: "/", expectedCode: http.StatusOK, contentType: "text/html", bodyContains: "leaderboard"},
		{name: "json snapshot", path: "/stats.json", expectedCode: http.StatusOK, contentType: "application/json", bodyContains: `"org"`},
		{name: "missing file", path: "/nope.json", expectedCode: http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tc.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedCode, resp.StatusCode)
			if tc.contentType != "" {
				assert.Contains(t, resp.Header.Get("Content-Type"), tc.contentType)
			}
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), tc.bodyContains)

			// The access log line is written after the response has been flushed.
			assert.Eventually(t, func() bool {
				entry := hook.LastEntry()
				return entry != nil && entry.Data["path"] == tc.path && entry.Data["status"] == tc.expectedCode
			}, time.Second, 10*time.Millisecond)
		})
	}
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(setupSite(t), ln.Addr().String(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/stats.json")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestServer_RunFailsOnBadAddress(t *testing.T) {
	logger, _ := test.NewNullLogger()
	err := New(t.TempDir(), "not-an-address", logger).Run(context.Background())
	assert.ErrorContains(t, err, "failed to listen")
}
