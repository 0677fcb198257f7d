package config_test

import (
	"context"
	"fmt"
	"log"

	"github.com/jharlan/shelf/config"
)

func ExampleLoad() {
	// Load with defaults only (no config file)
	cfg, err := config.Load(nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Sites: %d, Addr: %s\n", len(cfg.Sites), cfg.Sites[0].Addr())
	// Output: Sites: 1, Addr: :8080
}

func ExampleWithContext() {
	cfg, _ := config.Load(nil, nil)

	// Store config in context
	ctx := config.WithContext(context.Background(), cfg)

	// Retrieve later (e.g., in a subcommand)
	retrieved, err := config.FromContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Retrieved site: %s\n", retrieved.Sites[0].Name)
	// Output: Retrieved site: default
}
