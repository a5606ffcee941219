package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/comparador/quote-aggregator/internal/config"
	"github.com/comparador/quote-aggregator/internal/logger"
	"github.com/comparador/quote-aggregator/internal/ratelimit"
)

// Routes builds the API mux with its middleware stack.
func Routes(h *Handler, cfg config.ServerConfig, log logger.LoggerInterface) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/calculate", h.Calculate)
	mux.HandleFunc("GET /healthz", h.Healthz)

	var limiter *ratelimit.Limiter
	if cfg.RateLimitRPM > 0 {
		limiter = ratelimit.New(cfg.RateLimitRPM)
	}

	return Chain(mux,
		recoverPanic(log),
		withJSONHeaders,
		withRequestID,
		rateLimit(limiter, log),
		limitBody(cfg.MaxBodyBytes),
	)
}

// Server is the public HTTP listener of the quoting API.
type Server struct {
	logger logger.LoggerInterface
	server *http.Server
}

// NewServer creates a Server. The handler is wrapped with otelhttp so
// inbound requests start a span.
func NewServer(cfg config.ServerConfig, h *Handler, log logger.LoggerInterface) *Server {
	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 5 * time.Second
	}

	return &Server{
		logger: log,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           otelhttp.NewHandler(Routes(h, cfg, log), "quoting.api"),
			ReadHeaderTimeout: readTimeout,
			ReadTimeout:       readTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
	}
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens on the configured port and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.server.Addr, err)
	}

	s.logger.Info(ctx, "API server listening", "addr", ln.Addr().String())

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(context.Background(), "API server stopped", "error", err)
		}
	}()

	return nil
}

// Stop drains in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
