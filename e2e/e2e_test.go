package e2e_test

import (
	"crypto/tls"
	"crypto/x509"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jharlan/shelf"
	"github.com/jharlan/shelf/tlsgen"
)

func get(t *testing.T, client *http.Client, url string) (*http.Response, string) {
	t.Helper()

	resp, err := client.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

// TestE2E_StaticSite covers the single-server scenario: / serves the index,
// files come back byte-for-byte with extension-based content types, and
// misses end in 404.
func TestE2E_StaticSite(t *testing.T) {
	dir := newSiteDir(t, true)

	group, _ := startGroup(t, shelf.Site{
		Name:   "web",
		Listen: shelf.ListenConfig{Host: "127.0.0.1"},
		Static: &shelf.StaticConfig{Dir: dir, MaxAge: time.Minute},
	})
	base := baseURL(t, group, 0)
	client := &http.Client{}

	resp, body := get(t, client, base+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<h1>home</h1>", body)

	resp, body = get(t, client, base+"/hello.txt")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello world", body)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	assert.Equal(t, "public, max-age=60", resp.Header.Get("Cache-Control"))

	resp, body = get(t, client, base+"/assets/app.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "body{}", body)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")

	resp, _ = get(t, client, base+"/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestE2E_RootListingWithoutIndex covers the other half of the single-server
// scenario: without an index file, / renders a listing of the top-level
// entries.
func TestE2E_RootListingWithoutIndex(t *testing.T) {
	dir := newSiteDir(t, false)

	group, _ := startGroup(t, shelf.Site{
		Name:      "web",
		Listen:    shelf.ListenConfig{Host: "127.0.0.1"},
		Static:    &shelf.StaticConfig{Dir: dir},
		Directory: &shelf.DirectoryConfig{Dir: dir, ShowIcons: true},
	})
	base := baseURL(t, group, 0)

	resp, body := get(t, &http.Client{}, base+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "hello.txt")
	assert.Contains(t, body, "assets/")
}

// TestE2E_FaviconNeverLogged requests the icon twice and expects two
// successful responses and zero corresponding log lines, while a normal
// request does get logged.
func TestE2E_FaviconNeverLogged(t *testing.T) {
	dir := newSiteDir(t, true)
	logPath := filepath.Join(t.TempDir(), "access.log")

	group, stop := startGroup(t, shelf.Site{
		Name:      "web",
		Listen:    shelf.ListenConfig{Host: "127.0.0.1"},
		Static:    &shelf.StaticConfig{Dir: dir},
		Favicon:   &shelf.FaviconConfig{},
		AccessLog: &shelf.AccessLogConfig{Path: logPath},
	})
	base := baseURL(t, group, 0)
	client := &http.Client{}

	for range 2 {
		resp, body := get(t, client, base+"/favicon.ico")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/x-icon", resp.Header.Get("Content-Type"))
		assert.NotEmpty(t, body)
	}

	resp, _ := get(t, client, base+"/hello.txt")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// stop the group so the log stream is flushed and closed
	stop()

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(logged), "favicon.ico")
	assert.Contains(t, string(logged), "GET /hello.txt 200 ")
	assert.Equal(t, 1, strings.Count(string(logged), "\n"))
}

// TestE2E_PlainAndTLSSideBySide runs a plaintext and an encrypted site in
// the same group and checks each accepts only its own protocol.
func TestE2E_PlainAndTLSSideBySide(t *testing.T) {
	dir := newSiteDir(t, true)

	certPath := filepath.Join(t.TempDir(), "cert.pem")
	keyPath := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, tlsgen.WriteFiles(certPath, keyPath, tlsgen.DefaultOptions()))

	group, _ := startGroup(t,
		shelf.Site{
			Name:   "plain",
			Listen: shelf.ListenConfig{Host: "127.0.0.1"},
			Static: &shelf.StaticConfig{Dir: dir},
		},
		shelf.Site{
			Name:   "secure",
			Listen: shelf.ListenConfig{Host: "127.0.0.1"},
			TLS:    &shelf.TLSConfig{CertFile: certPath, KeyFile: keyPath},
			Static: &shelf.StaticConfig{Dir: dir},
		},
	)

	plainURL := baseURL(t, group, 0)
	secureURL := baseURL(t, group, 1)
	require.True(t, strings.HasPrefix(secureURL, "https://"))

	// plaintext site serves plain HTTP
	resp, body := get(t, &http.Client{}, plainURL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<h1>home</h1>", body)

	// plaintext site refuses a TLS handshake
	plainAddr := strings.TrimPrefix(plainURL, "http://")
	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: time.Second}, "tcp", plainAddr, &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // handshake failure is the point
	})
	if err == nil {
		_ = conn.Close()
		t.Fatal("plaintext site accepted a TLS handshake")
	}

	// TLS site serves HTTPS for a client that trusts the test certificate
	certPEM, err := os.ReadFile(certPath)
	require.NoError(t, err)
	pool := x509.NewCertPool()
	require.True(t, pool.AppendCertsFromPEM(certPEM))

	secureClient := &http.Client{
		Transport: &http.Transport{TLSClientConfig: &tls.Config{RootCAs: pool}},
	}
	resp, body = get(t, secureClient, secureURL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<h1>home</h1>", body)

	// TLS site rejects plain HTTP
	secureAddr := strings.TrimPrefix(secureURL, "https://")
	resp2, err := (&http.Client{Timeout: 2 * time.Second}).Get("http://" + secureAddr + "/")
	if err == nil {
		// the server answers plain requests with a 400 Bad Request
		assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
		_ = resp2.Body.Close()
	}
}

// TestE2E_ShutdownClosesAllListeners cancels the run context and expects
// every socket to stop accepting connections.
func TestE2E_ShutdownClosesAllListeners(t *testing.T) {
	dir := newSiteDir(t, true)

	group, stop := startGroup(t,
		shelf.Site{Name: "one", Listen: shelf.ListenConfig{Host: "127.0.0.1"}, Static: &shelf.StaticConfig{Dir: dir}},
		shelf.Site{Name: "two", Listen: shelf.ListenConfig{Host: "127.0.0.1"}, Static: &shelf.StaticConfig{Dir: dir}},
	)

	addrs := make([]string, 0, 2)
	for _, srv := range group.Servers() {
		addrs = append(addrs, srv.Addr().String())
	}

	stop()

	for _, addr := range addrs {
		_, err := net.DialTimeout("tcp", addr, 200*time.Millisecond)
		assert.Error(t, err, "listener %s should be closed", addr)
	}
}
