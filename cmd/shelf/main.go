package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jharlan/shelf/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "shelf",
	Short:   "Multi-site static web server",
	Long: `Shelf is a small static web server that runs one or more HTTP(S)
listeners from a declarative list of site records. Each site composes, in a
fixed order, an optional favicon responder, access logger, static file
responder and directory listing.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		files, _ := cmd.Flags().GetStringArray("config")

		cfg, err := config.Load(files, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringArray("config", nil, "config file path, repeatable; later files override earlier ones (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "process log level: debug, info, warn, error (env: SHELF_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("env", "", "environment: dev, prod (env: SHELF_ENV)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
