// Package shelf provides the core types for composing small static web
// servers from declarative site records.
//
// A Site describes one logical server: the address it listens on, an
// optional TLS key/certificate pair, and a set of optional request-handling
// stages (favicon responder, access logger, static file responder,
// directory listing). Every optional section that is absent simply skips
// the corresponding stage; there is no other coupling between them.
//
// # Key Components
//
//   - Site: declarative record mapping to exactly one server and one socket
//   - config package: YAML/env/flag loading and validation of []Site
//   - webfs package: sandboxed read-only access to site content directories
//   - http package: the request pipeline built from a Site
//   - server package: socket lifecycle for a group of Sites
//
// # Request Pipeline
//
// Stages run in a fixed order and the first stage that fully handles a
// request short-circuits the rest:
//
//	CORS -> request ID -> favicon -> access log -> static -> listing -> 404
//
// The favicon responder sits ahead of the access logger on purpose: icon
// requests never produce log lines.
//
// See the cmd/shelf package for the CLI entry point.
package shelf
