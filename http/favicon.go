package http

import _ "embed"

// DefaultFavicon is the embedded icon served when a favicon stage is
// enabled without a configured file path.
//
//go:embed favicon.ico
var DefaultFavicon []byte
