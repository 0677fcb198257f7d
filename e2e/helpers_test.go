package e2e_test

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jharlan/shelf"
	"github.com/jharlan/shelf/server"
)

// startGroup assembles and runs a server group for the given sites and
// returns it together with a stop function. Sites should use port 0 so the
// kernel picks free ports; the bound addresses are available through
// group.Servers()[i].Addr().
func startGroup(t *testing.T, sites ...shelf.Site) (*server.Group, func()) {
	t.Helper()

	group, err := server.NewGroup(sites)
	require.NoError(t, err)
	require.NoError(t, group.Start())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- group.Run(ctx) }()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancel()
			select {
			case <-done:
			case <-time.After(10 * time.Second):
				t.Error("server group did not stop in time")
			}
		})
	}

	t.Cleanup(stop)
	return group, stop
}

// baseURL returns the http(s) URL of the i-th server in the group.
func baseURL(t *testing.T, group *server.Group, i int) string {
	t.Helper()

	srv := group.Servers()[i]
	addr, ok := srv.Addr().(*net.TCPAddr)
	require.True(t, ok)

	scheme := "http"
	if srv.UsesTLS() {
		scheme = "https"
	}
	return scheme + "://" + addr.String()
}

// newSiteDir builds a small content tree to serve.
func newSiteDir(t *testing.T, withIndex bool) string {
	t.Helper()

	dir := t.TempDir()
	if withIndex {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>home</h1>"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello world"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.css"), []byte("body{}"), 0o644))

	return dir
}
