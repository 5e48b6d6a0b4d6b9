package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"git.home.luguber.info/inful/lessonforge/internal/logfields"
)

// PreviewServer serves a generated site directory over HTTP.
type PreviewServer struct {
	srv      *http.Server
	listener net.Listener
}

// NewPreviewServer binds addr and prepares a file server over siteDir.
func NewPreviewServer(addr, siteDir string) (*PreviewServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(siteDir)))
	return &PreviewServer{
		srv:      &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		listener: ln,
	}, nil
}

// Addr returns the bound listen address.
func (p *PreviewServer) Addr() string {
	return p.listener.Addr().String()
}

// Serve blocks until the server is shut down.
func (p *PreviewServer) Serve() error {
	slog.Info("Preview server listening", logfields.Path("http://"+p.Addr()))
	if err := p.srv.Serve(p.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("preview server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (p *PreviewServer) Shutdown(ctx context.Context) error {
	return p.srv.Shutdown(ctx)
}
