// Package http builds the request pipeline for a single site.
//
// A Handler composes, in a fixed order, the stages enabled by the site's
// configuration. The first stage that fully handles a request
// short-circuits the rest:
//
//  1. CORS handler (if configured)
//  2. Request-ID header middleware
//  3. Favicon responder - intercepts exactly /favicon.ico
//  4. Access logger - one fixed-format text line per request
//  5. Static file responder - byte-for-byte files with extension-based
//     content types and an optional Cache-Control max-age
//  6. Directory listing responder - rendered HTML for directories without
//     an index file
//  7. Fallthrough 404
//
// The favicon responder is registered ahead of the access logger on
// purpose: icon requests never produce log lines.
//
// # Usage
//
//	root, _ := os.OpenRoot("./public")
//	handler := http.NewHandler(&http.HandlerConfig{
//	    Static: &http.StaticConfig{Store: webfs.NewStore(root)},
//	})
//	srv := &nethttp.Server{Addr: ":8080", Handler: handler.Router()}
//
// The server package assembles a Handler from a shelf.Site, performing all
// startup file I/O (content roots, favicon bytes, access-log stream) before
// serving begins.
package http
