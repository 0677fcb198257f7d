package shelf

import (
	"fmt"
	"io/fs"
	"time"
)

// Default values applied by the accessor methods on optional sections.
const (
	DefaultIndexFile     = "index.html"
	DefaultAccessLogMode = fs.FileMode(0o644)
)

// Site describes a single logical server: where it listens and which
// request-handling stages are enabled. Each Site maps to exactly one
// http.Server and one bound socket. Optional sections that are nil simply
// skip the corresponding stage.
type Site struct {
	Name      string           `mapstructure:"name" yaml:"name" validate:"required"`
	Listen    ListenConfig     `mapstructure:"listen" yaml:"listen"`
	TLS       *TLSConfig       `mapstructure:"tls" yaml:"tls,omitempty"`
	Static    *StaticConfig    `mapstructure:"static" yaml:"static,omitempty"`
	AccessLog *AccessLogConfig `mapstructure:"access_log" yaml:"access_log,omitempty"`
	Favicon   *FaviconConfig   `mapstructure:"favicon" yaml:"favicon,omitempty"`
	Directory *DirectoryConfig `mapstructure:"directory" yaml:"directory,omitempty"`
	CORS      *CORSConfig      `mapstructure:"cors" yaml:"cors,omitempty"`
}

// Addr returns the host:port pair the site binds to. An empty host means
// all interfaces.
func (s Site) Addr() string {
	return s.Listen.Addr()
}

// UsesTLS reports whether the site is configured for an encrypted listener.
func (s Site) UsesTLS() bool {
	return s.TLS != nil
}

// ListenConfig holds the bind address for a site.
type ListenConfig struct {
	Host string `mapstructure:"host" yaml:"host,omitempty"`
	Port int    `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
}

// Addr returns the host:port string suitable for net.Listen.
func (l ListenConfig) Addr() string {
	return fmt.Sprintf("%s:%d", l.Host, l.Port)
}

// TLSConfig points at PEM-encoded certificate and key material. Both files
// are read synchronously when the server is built; a read or parse failure
// is fatal before the site ever listens.
type TLSConfig struct {
	CertFile string `mapstructure:"cert_file" yaml:"cert_file" validate:"required"`
	KeyFile  string `mapstructure:"key_file" yaml:"key_file" validate:"required"`
}

// StaticConfig enables the static file responder for a site.
type StaticConfig struct {
	Dir    string        `mapstructure:"dir" yaml:"dir" validate:"required"`
	MaxAge time.Duration `mapstructure:"max_age" yaml:"max_age,omitempty"`
	Index  string        `mapstructure:"index" yaml:"index,omitempty"`
}

// IndexFile returns the configured index file name, defaulting to
// "index.html".
func (c StaticConfig) IndexFile() string {
	if c.Index == "" {
		return DefaultIndexFile
	}
	return c.Index
}

// AccessLogConfig enables the per-request access logger. The file at Path
// is opened in truncate mode at startup and held open for the lifetime of
// the owning server; it is never rotated.
type AccessLogConfig struct {
	Path string `mapstructure:"path" yaml:"path" validate:"required"`
	Mode uint32 `mapstructure:"mode" yaml:"mode,omitempty"`
}

// FileMode returns the file-creation mode for the log file, defaulting to
// 0644.
func (c AccessLogConfig) FileMode() fs.FileMode {
	if c.Mode == 0 {
		return DefaultAccessLogMode
	}
	return fs.FileMode(c.Mode)
}

// FaviconConfig enables the favicon responder. An empty Path serves the
// embedded default icon.
type FaviconConfig struct {
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// DirectoryConfig enables listing generation for request paths that resolve
// to a directory without an index file.
type DirectoryConfig struct {
	Dir       string `mapstructure:"dir" yaml:"dir" validate:"required"`
	ShowIcons bool   `mapstructure:"show_icons" yaml:"show_icons,omitempty"`
}

// CORSConfig holds the per-site CORS policy.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins,omitempty"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods,omitempty"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers,omitempty"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers,omitempty"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials,omitempty"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age,omitempty"`
}
