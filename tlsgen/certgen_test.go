package tlsgen_test

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jharlan/shelf/tlsgen"
)

func TestGenerate(t *testing.T) {
	certPEM, keyPEM, err := tlsgen.Generate(tlsgen.Options{
		Organization: "test",
		CommonName:   "example.local",
		Hosts:        []string{"example.local", "10.0.0.1"},
		ValidFor:     time.Hour,
	})
	require.NoError(t, err)

	block, _ := pem.Decode(certPEM)
	require.NotNil(t, block)
	require.Equal(t, "CERTIFICATE", block.Type)

	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)
	assert.Equal(t, "example.local", cert.Subject.CommonName)
	assert.Contains(t, cert.DNSNames, "example.local")
	require.Len(t, cert.IPAddresses, 1)
	assert.Equal(t, "10.0.0.1", cert.IPAddresses[0].String())
	assert.WithinDuration(t, time.Now().Add(time.Hour), cert.NotAfter, time.Minute)

	// the pair must load as a server key pair
	_, err = tls.X509KeyPair(certPEM, keyPEM)
	assert.NoError(t, err)
}

func TestGenerate_Defaults(t *testing.T) {
	certPEM, keyPEM, err := tlsgen.Generate(tlsgen.Options{})
	require.NoError(t, err)

	_, err = tls.X509KeyPair(certPEM, keyPEM)
	assert.NoError(t, err)

	block, _ := pem.Decode(certPEM)
	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cert.Subject.CommonName)
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")

	err := tlsgen.WriteFiles(certPath, keyPath, tlsgen.DefaultOptions())
	require.NoError(t, err)

	_, err = tls.LoadX509KeyPair(certPath, keyPath)
	assert.NoError(t, err)

	info, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
