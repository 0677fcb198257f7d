package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jharlan/shelf/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and print the effective result",
	Long: `Load the configuration from files, environment and flags, validate
it, and print the merged result as YAML. Exits non-zero when the
configuration is invalid.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	fmt.Print(string(out))
	slog.Info("configuration OK", "sites", len(cfg.Sites))
	return nil
}
