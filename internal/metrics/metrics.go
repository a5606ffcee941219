// Package metrics configures the OpenTelemetry meter provider and the
// Prometheus scrape endpoint.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metric2 "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
)

type MetricProvider interface {
	Meter(name string, options ...metric.MeterOption) metric.Meter
	Shutdown(ctx context.Context) error
}

func getReaders(ctx context.Context, cfg Config) ([]metric2.Reader, error) {
	var readers []metric2.Reader

	for _, provider := range cfg.Provider {
		switch provider.Provider {
		case PrometheusProvider:
			var opts []prometheus.Option
			if cfg.Registerer != nil {
				opts = append(opts, prometheus.WithRegisterer(cfg.Registerer))
			}
			promExporter, err := prometheus.New(opts...)
			if err != nil {
				return nil, fmt.Errorf("prometheus exporter: %w", err)
			}

			readers = append(readers, promExporter)
		case OtelCollector:
			opts := []otlpmetricgrpc.Option{
				otlpmetricgrpc.WithEndpointURL(provider.Endpoint),
				otlpmetricgrpc.WithHeaders(provider.Headers),
			}

			if provider.Insecure {
				opts = append(opts, otlpmetricgrpc.WithInsecure())
			}

			exp, err := otlpmetricgrpc.New(ctx, opts...)
			if err != nil {
				return nil, fmt.Errorf("otlp metric exporter: %w", err)
			}

			readers = append(readers, metric2.NewPeriodicReader(exp))
		default:
			return nil, fmt.Errorf("unsupported metric provider %q", provider.Provider)
		}
	}

	return readers, nil
}

// NewMetricProvider builds a meter provider with one reader per configured
// provider and installs it globally. Prometheus is used when none is given.
func NewMetricProvider(ctx context.Context, options ...OptionFn) (MetricProvider, error) {
	var cfg Config

	for _, opt := range options {
		cfg = opt(cfg)
	}

	if len(cfg.Provider) == 0 {
		cfg.Provider = []ProviderCfg{{Provider: PrometheusProvider}}
	}

	readers, err := getReaders(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var metricsOps []metric2.Option

	for _, reader := range readers {
		metricsOps = append(metricsOps, metric2.WithReader(reader))
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = os.Getenv("OTEL_SERVICE_NAME")
	}

	metricsOps = append(metricsOps, metric2.WithResource(
		resource.NewSchemaless(semconv.ServiceNameKey.String(serviceName)),
	))

	meterProvider := metric2.NewMeterProvider(metricsOps...)

	otel.SetMeterProvider(meterProvider)

	return meterProvider, nil
}

// PrometheusServer exposes /metrics.
type PrometheusServer struct {
	cfg    PromServerConfig
	server *http.Server
}

// NewPrometheusServer creates the scrape server. It serves the default
// Prometheus gatherer unless WithGatherer is given.
func NewPrometheusServer(opt ...PromOptionFn) *PrometheusServer {
	cfg := PromServerConfig{port: "2223", gatherer: prom.DefaultGatherer}

	for _, o := range opt {
		cfg = o(cfg)
	}

	return &PrometheusServer{cfg: cfg}
}

// Handler returns the /metrics mux.
func (s *PrometheusServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.cfg.gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Start binds the port and serves in the background. Serve errors are
// passed to onError when it is not nil.
func (s *PrometheusServer) Start(onError func(error)) error {
	ln, err := net.Listen("tcp", ":"+s.cfg.port)
	if err != nil {
		return fmt.Errorf("metrics listen: %w", err)
	}

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) && onError != nil {
			onError(err)
		}
	}()

	return nil
}

// Stop shuts the scrape server down.
func (s *PrometheusServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
