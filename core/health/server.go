// Package health serves the liveness endpoint polled by the hosting platform.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	coreconfig "github.com/m3rciful/ginabot/core/config"
	"github.com/m3rciful/ginabot/core/logger"
)

const (
	component       = "http"
	shutdownTimeout = 5 * time.Second
)

// Status is the liveness payload.
type Status struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Handler answers GET / and GET /healthz with {"status":"ok","service":<name>}.
func Handler(service string) http.Handler {
	body, _ := json.Marshal(Status{Status: "ok", Service: service})
	ok := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", ok)
	mux.HandleFunc("GET /healthz", ok)
	return mux
}

// Server is the liveness HTTP server.
type Server struct {
	srv     *http.Server
	service string
}

// New builds a server listening on cfg.Listen:cfg.Port.
func New(cfg coreconfig.HTTPConfig) *Server {
	return &Server{
		service: cfg.Service,
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Listen, strconv.Itoa(cfg.Port)),
			Handler:           Handler(cfg.Service),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.srv.Addr }

// Run listens until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("health: listen %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger.Info(ctx, component, "listen",
		slog.String("addr", ln.Addr().String()),
		slog.String("service", s.service),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("health: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("health: shutdown: %w", err)
	}
	logger.Info(ctx, component, "stopped", slog.String("addr", ln.Addr().String()))
	return nil
}
