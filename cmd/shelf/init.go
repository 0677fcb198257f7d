package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jharlan/shelf"
	"github.com/jharlan/shelf/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a starter configuration",
	Long: `Create a starter config.yaml interactively.

You will be prompted for:
  - Site name
  - Listen port
  - Static content directory
  - Access log path (optional)
  - Directory listing

The static directory is created with a starter index.html if it does not
exist yet.`,
	RunE: runInit,
}

var (
	initOutput string
	initForce  bool
)

func init() {
	initCmd.Flags().StringVar(&initOutput, "output", "config.yaml", "path of the config file to write")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file without asking")

	rootCmd.AddCommand(initCmd)
}

const starterIndexHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>shelf</title></head>
<body>
<h1>It works</h1>
<p>This page is served by shelf. Replace it with your own content.</p>
</body>
</html>
`

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(initOutput); err == nil && !initForce {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("%s already exists. Overwrite it", initOutput),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: "default",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("site name is required")
			}
			return nil
		},
	}
	name, err := namePrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	portPrompt := promptui.Prompt{
		Label:   "Listen port",
		Default: "8080",
		Validate: func(input string) error {
			port, convErr := strconv.Atoi(input)
			if convErr != nil || port < 1 || port > 65535 {
				return errors.New("port must be an integer between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	port, _ := strconv.Atoi(portStr)

	dirPrompt := promptui.Prompt{
		Label:   "Static content directory",
		Default: "./public",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("directory is required")
			}
			return nil
		},
	}
	staticDir, err := dirPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	logPrompt := promptui.Prompt{
		Label:   "Access log path (empty to disable)",
		Default: "access.log",
	}
	logPath, err := logPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	listing := false
	listingPrompt := promptui.Prompt{
		Label:     "Enable directory listing",
		IsConfirm: true,
	}
	if _, promptErr := listingPrompt.Run(); promptErr == nil {
		listing = true
	}

	site := shelf.Site{
		Name:    name,
		Listen:  shelf.ListenConfig{Port: port},
		Static:  &shelf.StaticConfig{Dir: staticDir},
		Favicon: &shelf.FaviconConfig{},
	}
	if logPath != "" {
		site.AccessLog = &shelf.AccessLogConfig{Path: logPath}
	}
	if listing {
		site.Directory = &shelf.DirectoryConfig{Dir: staticDir, ShowIcons: true}
	}

	cfg := config.Config{
		Env:   "dev",
		Log:   config.LogConfig{Level: "info"},
		Sites: []shelf.Site{site},
	}

	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(initOutput, out, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	if err := scaffoldStaticDir(staticDir); err != nil {
		return err
	}

	slog.Info("wrote starter configuration", "config", initOutput, "static_dir", staticDir)
	fmt.Printf("Run 'shelf serve --config %s' to start serving.\n", initOutput)
	return nil
}

// scaffoldStaticDir creates the content directory with a starter index.html
// unless one is already there.
func scaffoldStaticDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create static dir: %w", err)
	}

	indexPath := filepath.Join(dir, shelf.DefaultIndexFile)
	if _, err := os.Stat(indexPath); err == nil {
		return nil
	}

	if err := os.WriteFile(indexPath, []byte(starterIndexHTML), 0o644); err != nil {
		return fmt.Errorf("write starter index: %w", err)
	}

	return nil
}

func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
