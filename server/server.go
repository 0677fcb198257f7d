// Package server binds shelf sites to sockets and manages their lifecycle.
//
// A Server owns everything one shelf.Site needs at runtime: the listener,
// the assembled request pipeline, the open access-log stream and the
// sandboxed content roots. All file I/O (TLS key/certificate material,
// favicon bytes, log file truncation, content root handles) happens
// synchronously in New, before the site ever listens; once serving begins
// no hidden blocking startup work remains.
//
// A Group runs many Servers concurrently and shuts every one of them down
// on a termination signal.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/jharlan/shelf"
	shelfhttp "github.com/jharlan/shelf/http"
	"github.com/jharlan/shelf/webfs"
)

const (
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 120 * time.Second

	// MinTLSVersion is the floor for encrypted listeners.
	MinTLSVersion = tls.VersionTLS12
)

// Server runs a single shelf.Site. Its lifecycle is
// created -> listening -> closing -> closed.
type Server struct {
	site       shelf.Site
	httpServer *http.Server
	tlsEnabled bool
	listener   net.Listener
	closers    []io.Closer
}

// New assembles a Server from a site record. If the site carries a TLS
// section, both the key and certificate files are read synchronously here;
// a read or parse failure is fatal before the site ever listens. The same
// applies to the favicon file, the content directories and the access-log
// stream (opened in truncate mode).
func New(site shelf.Site) (*Server, error) {
	srv := &Server{site: site}

	handlerConfig, err := srv.buildHandlerConfig()
	if err != nil {
		_ = srv.closeResources()
		return nil, fmt.Errorf("site %s: %w", site.Name, err)
	}

	var tlsConfig *tls.Config
	if site.UsesTLS() {
		cert, err := tls.LoadX509KeyPair(site.TLS.CertFile, site.TLS.KeyFile)
		if err != nil {
			_ = srv.closeResources()
			return nil, fmt.Errorf("site %s: failed to load TLS key pair: %w", site.Name, err)
		}
		tlsConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   MinTLSVersion,
		}
		srv.tlsEnabled = true
	}

	handler := shelfhttp.NewHandler(handlerConfig)

	srv.httpServer = &http.Server{
		Addr:         site.Addr(),
		Handler:      handler.Router(),
		TLSConfig:    tlsConfig,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
		ErrorLog:     slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	}

	return srv, nil
}

// buildHandlerConfig performs the startup file I/O for every enabled stage
// and records the opened resources for release at shutdown.
func (s *Server) buildHandlerConfig() (*shelfhttp.HandlerConfig, error) {
	cfg := &shelfhttp.HandlerConfig{CORS: s.site.CORS}

	if s.site.Static != nil {
		root, err := os.OpenRoot(s.site.Static.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open static dir: %w", err)
		}
		store := webfs.NewStore(root)
		s.closers = append(s.closers, store)

		cfg.Static = &shelfhttp.StaticConfig{
			Store:  store,
			Index:  s.site.Static.IndexFile(),
			MaxAge: s.site.Static.MaxAge,
		}
	}

	if s.site.Directory != nil {
		root, err := os.OpenRoot(s.site.Directory.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open directory listing root: %w", err)
		}
		store := webfs.NewStore(root)
		s.closers = append(s.closers, store)

		cfg.Listing = &shelfhttp.ListingConfig{
			Store:     store,
			ShowIcons: s.site.Directory.ShowIcons,
		}
	}

	if s.site.Favicon != nil {
		cfg.Favicon = shelfhttp.DefaultFavicon
		if s.site.Favicon.Path != "" {
			icon, err := os.ReadFile(s.site.Favicon.Path)
			if err != nil {
				return nil, fmt.Errorf("failed to read favicon: %w", err)
			}
			cfg.Favicon = icon
		}
	}

	if s.site.AccessLog != nil {
		f, err := os.OpenFile(
			s.site.AccessLog.Path,
			os.O_CREATE|os.O_WRONLY|os.O_TRUNC,
			s.site.AccessLog.FileMode(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to open access log: %w", err)
		}
		s.closers = append(s.closers, f)

		cfg.AccessLog = f
	}

	return cfg, nil
}

// Name returns the site's human-readable label.
func (s *Server) Name() string {
	return s.site.Name
}

// UsesTLS reports whether the server accepts only TLS connections.
func (s *Server) UsesTLS() bool {
	return s.tlsEnabled
}

// Addr returns the bound listener address. It is nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start binds the configured address and transitions the server from
// created to listening. It returns immediately; Serve accepts connections.
// A bind failure (port already in use) is returned as-is and is not
// retried.
func (s *Server) Start() error {
	l, err := net.Listen("tcp", s.site.Addr())
	if err != nil {
		return fmt.Errorf("site %s: %w", s.site.Name, err)
	}
	s.listener = l
	return nil
}

// Serve accepts connections on the listener bound by Start and blocks
// until the server is shut down. A shutdown-initiated stop returns nil.
func (s *Server) Serve() error {
	if s.listener == nil {
		return fmt.Errorf("site %s: not started", s.site.Name)
	}

	var err error
	if s.tlsEnabled {
		err = s.httpServer.ServeTLS(s.listener, "", "")
	} else {
		err = s.httpServer.Serve(s.listener)
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests
// until the context expires, then closes abruptly. The access-log stream
// and content roots are released in every case.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		// drain window expired, hard-stop
		err = errors.Join(err, s.httpServer.Close())
	}
	return errors.Join(err, s.closeListener(), s.closeResources())
}

// Close abruptly closes the listener and all open resources without
// draining in-flight requests.
func (s *Server) Close() error {
	return errors.Join(s.httpServer.Close(), s.closeListener(), s.closeResources())
}

// closeListener closes the socket bound by Start. http.Server only learns
// about the listener once Serve runs, so a server stopped between Start and
// Serve must close it here.
func (s *Server) closeListener() error {
	if s.listener == nil {
		return nil
	}
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

func (s *Server) closeResources() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	s.closers = nil
	return errors.Join(errs...)
}
