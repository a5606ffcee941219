package mockprovider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/comparador/quote-aggregator/internal/config"
	"github.com/comparador/quote-aggregator/internal/logger"
)

// Server hosts both mock providers under /<id>/quote.
type Server struct {
	port   int
	logger logger.LoggerInterface
	mux    *http.ServeMux
	server *http.Server
}

// NewServer builds the mock server from configuration. A zero Chaos uses
// real randomness and timers.
func NewServer(cfg config.MockConfig, log logger.LoggerInterface, chaos Chaos) *Server {
	mux := http.NewServeMux()
	mux.Handle("POST /provider-a/quote", &ProviderA{
		Latency:   cfg.LatencyA,
		ErrorRate: cfg.ErrorRate,
		Chaos:     chaos,
		Logger:    log,
	})
	mux.Handle("POST /provider-b/quote", &ProviderB{
		Latency:   cfg.LatencyB,
		StallRate: cfg.StallRate,
		Stall:     cfg.Stall,
		Chaos:     chaos,
		Logger:    log,
	})

	return &Server{port: cfg.Port, logger: log, mux: mux}
}

// Handler returns the routing mux.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start binds the port and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("mock providers listen: %w", err)
	}

	// No write timeout: stalls are part of the simulation.
	s.server = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info(ctx, "mock providers listening", "addr", ln.Addr().String())

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(context.Background(), "mock providers stopped", "error", err)
		}
	}()

	return nil
}

// Stop shuts the server down, cutting any stalled request.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return s.server.Close()
	}
	return nil
}
