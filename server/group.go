package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jharlan/shelf"
)

// DefaultShutdownTimeout bounds how long Run waits for in-flight requests
// once a shutdown is triggered.
const DefaultShutdownTimeout = 10 * time.Second

// Group owns one Server per site record and drives them as a unit: all
// started together, all shut down together.
type Group struct {
	servers []*Server

	// ShutdownTimeout bounds the drain window when Run reacts to context
	// cancellation. Defaults to DefaultShutdownTimeout.
	ShutdownTimeout time.Duration
}

// NewGroup assembles a Server for every site. If any site fails to
// assemble, the already-built servers are closed and the error is
// returned.
func NewGroup(sites []shelf.Site) (*Group, error) {
	g := &Group{ShutdownTimeout: DefaultShutdownTimeout}

	for _, site := range sites {
		srv, err := New(site)
		if err != nil {
			_ = g.Close()
			return nil, err
		}
		g.servers = append(g.servers, srv)
	}

	return g, nil
}

// Servers returns the tracked servers in site order.
func (g *Group) Servers() []*Server {
	return g.servers
}

// Start binds every server's socket. On any bind failure all sockets are
// closed and the error is returned; nothing is retried.
func (g *Group) Start() error {
	for _, srv := range g.servers {
		if err := srv.Start(); err != nil {
			_ = g.Close()
			return fmt.Errorf("failed to bind: %w", err)
		}
	}
	return nil
}

// Run serves every started server concurrently and blocks until either the
// context is cancelled (typically by a termination signal) or a server
// fails. In both cases every tracked server is shut down before Run
// returns. All servers must have been bound with Start first.
func (g *Group) Run(ctx context.Context) error {
	for _, srv := range g.servers {
		if srv.listener == nil {
			return fmt.Errorf("site %s: not started", srv.Name())
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)

	for _, srv := range g.servers {
		eg.Go(func() error {
			slog.Info("listening",
				"site", srv.Name(),
				"addr", srv.Addr().String(),
				"tls", srv.UsesTLS(),
			)
			return srv.Serve()
		})
	}

	eg.Go(func() error {
		<-egCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), g.ShutdownTimeout)
		defer cancel()

		return g.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Shutdown stops every tracked server. All servers are attempted even when
// some fail; the errors are joined.
func (g *Group) Shutdown(ctx context.Context) error {
	var errs []error
	for _, srv := range g.servers {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		slog.Info("server stopped", "site", srv.Name())
	}
	return errors.Join(errs...)
}

// Close abruptly closes every tracked server without draining.
func (g *Group) Close() error {
	var errs []error
	for _, srv := range g.servers {
		errs = append(errs, srv.Close())
	}
	return errors.Join(errs...)
}
