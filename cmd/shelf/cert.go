package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jharlan/shelf/tlsgen"
)

var certCmd = &cobra.Command{
	Use:   "cert",
	Short: "Generate a self-signed TLS certificate for local development",
	Long: `Generate a self-signed ECDSA certificate and private key, written as
PEM files suitable for a site's tls section.

The certificate is self-signed and intended for local development only;
clients must be told to trust it explicitly.`,
	RunE: runCert,
}

var (
	certOut      string
	keyOut       string
	certHosts    []string
	certCN       string
	certOrg      string
	certValidFor time.Duration
)

func init() {
	certCmd.Flags().StringVar(&certOut, "cert", "cert.pem", "output path for the certificate")
	certCmd.Flags().StringVar(&keyOut, "key", "key.pem", "output path for the private key")
	certCmd.Flags().StringSliceVar(&certHosts, "host", []string{"localhost", "127.0.0.1", "::1"}, "DNS names and IPs the certificate is valid for")
	certCmd.Flags().StringVar(&certCN, "cn", "localhost", "certificate common name")
	certCmd.Flags().StringVar(&certOrg, "org", "shelf", "certificate organization")
	certCmd.Flags().DurationVar(&certValidFor, "valid-for", 365*24*time.Hour, "validity duration")

	rootCmd.AddCommand(certCmd)
}

func runCert(cmd *cobra.Command, args []string) error {
	opts := tlsgen.Options{
		Organization: certOrg,
		CommonName:   certCN,
		Hosts:        certHosts,
		ValidFor:     certValidFor,
	}

	if err := tlsgen.WriteFiles(certOut, keyOut, opts); err != nil {
		return fmt.Errorf("generate certificate: %w", err)
	}

	slog.Info("wrote self-signed certificate", "cert", certOut, "key", keyOut, "hosts", certHosts)
	return nil
}
