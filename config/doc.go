// Package config provides configuration loading and validation for shelf.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (SHELF_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// Scalar config keys map to environment variables with SHELF_ prefix:
//   - env → SHELF_ENV
//   - log.level → SHELF_LOG_LEVEL
//
// The sites list is file-only; there is no useful flat env encoding for it.
//
// # Configuration Structure
//
// The Config struct contains:
//   - Env: dev or prod, selects the slog handler
//   - Log: process log level
//   - Sites: one record per server instance; each optional section
//     (tls, static, access_log, favicon, directory, cors) enables the
//     corresponding stage, and sites must not share a host:port pair
//
// When no sites are configured at all, a single default site is used:
// a plaintext listener on :8080 serving ./public.
package config
