package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jharlan/shelf/config"
	"github.com/jharlan/shelf/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start every configured site",
	Long: `Start one server per configured site and serve until a termination
signal (SIGINT, SIGTERM or SIGHUP) arrives, at which point every listening
socket is closed.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	group, err := server.NewGroup(cfg.Sites)
	if err != nil {
		return fmt.Errorf("assemble servers: %w", err)
	}

	if err := group.Start(); err != nil {
		_ = group.Close()
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := group.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("all servers stopped")
	return nil
}
