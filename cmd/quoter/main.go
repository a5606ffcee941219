// Package main is the entry point for the car insurance quote aggregator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/comparador/quote-aggregator/business/quoting"
	"github.com/comparador/quote-aggregator/business/quoting/api"
	quotingDI "github.com/comparador/quote-aggregator/business/quoting/di"
	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/apm"
	"github.com/comparador/quote-aggregator/internal/apperror"
	"github.com/comparador/quote-aggregator/internal/config"
	"github.com/comparador/quote-aggregator/internal/health"
	"github.com/comparador/quote-aggregator/internal/logger"
	"github.com/comparador/quote-aggregator/internal/metrics"
	"github.com/comparador/quote-aggregator/internal/monolith"
	"github.com/comparador/quote-aggregator/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

const shutdownTimeout = 10 * time.Second

type options struct {
	configPath string
	cliMode    bool
	birthday   string
	carType    string
	carUse     string
}

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&opts.cliMode, "cli", false, "Fetch one quote in the terminal viewer instead of serving the API")
	flag.StringVar(&opts.birthday, "birthday", "", "Driver birthday (YYYY-MM-DD), used with -cli")
	flag.StringVar(&opts.carType, "car-type", "", "Car type: turismo, suv or compacto, used with -cli")
	flag.StringVar(&opts.carUse, "car-use", "", "Car use: privado or comercial, used with -cli")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("quote-aggregator %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Validate the terminal request before any network setup.
	var request domain.QuoteRequest
	if opts.cliMode {
		request, err = api.NewValidator().Validate(api.CalculateRequest{
			DriverBirthday: flagValue(opts.birthday),
			CarType:        flagValue(opts.carType),
			CarUse:         flagValue(opts.carUse),
		})
		if err != nil {
			return errors.New(apperror.Describe(err))
		}
	}

	// The viewer owns the terminal, so logs are discarded there.
	var out io.Writer = os.Stderr
	if opts.cliMode {
		out = io.Discard
	}
	log := logger.New(out, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, nil)
	log.Info(ctx, "starting quote aggregator",
		"version", version,
		"environment", cfg.App.Environment,
		"campaign_active", cfg.Campaign.Active,
	)

	shutdown, err := setupTelemetry(ctx, cfg, log, !opts.cliMode)
	if err != nil {
		return err
	}
	defer shutdown()

	mono := monolith.New(cfg, log)
	modules := []monolith.Module{
		&quoting.Module{ServeAPI: !opts.cliMode},
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		closeMonolith(mono, log)
		return fmt.Errorf("failed to start modules: %w", err)
	}
	defer closeMonolith(mono, log)

	if opts.cliMode {
		aggregator := quotingDI.GetAggregator(mono.Services())
		return ui.Run(ctx, request, func(ctx context.Context) (domain.AggregationResult, error) {
			return aggregator.Quote(ctx, request)
		})
	}

	healthServer := health.NewServer(cfg.Health.Port, version, health.WithLogger(log))
	client := quotingDI.GetProviderClient(mono.Services())
	healthServer.RegisterCheck("providers", health.ProvidersCheck(
		len(quotingDI.GetProviders(mono.Services())), client.BreakerStates,
	))
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", cfg.Health.Port)
		mono.OnClose("health", healthServer.Stop)
	}

	<-ctx.Done()
	log.Info(context.Background(), "shutting down")
	return nil
}

func setupTelemetry(ctx context.Context, cfg *config.Config, log logger.LoggerInterface, serveMetrics bool) (func(), error) {
	if !cfg.Telemetry.Enabled {
		return func() {}, nil
	}

	// Set service name env var for OTEL
	if cfg.Telemetry.ServiceName != "" {
		os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
	}
	if cfg.Telemetry.OTLPEndpoint != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
	}

	headers, err := apm.ParseHeaders(cfg.Telemetry.OTLPHeaders)
	if err != nil {
		return nil, fmt.Errorf("invalid telemetry headers: %w", err)
	}

	provider := apm.ParseProvider(cfg.Telemetry.TraceProvider)
	traceProvider, err := apm.NewTraceProvider(ctx, apm.Config{
		Provider:    provider,
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Headers:     headers,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init tracing: %w", err)
	}
	log.Info(ctx, "tracing initialized", "provider", string(provider), "endpoint", cfg.Telemetry.OTLPEndpoint)

	meterProvider, err := metrics.NewMetricProvider(ctx, metrics.WithServiceName(cfg.Telemetry.ServiceName))
	if err != nil {
		_ = traceProvider.Stop()
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}

	var promServer *metrics.PrometheusServer
	if serveMetrics {
		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		promServer = metrics.NewPrometheusServer(metrics.WithPort(strconv.Itoa(port)))
		if err := promServer.Start(func(err error) {
			log.Error(context.Background(), "prometheus server stopped", "error", err)
		}); err != nil {
			log.Warn(ctx, "failed to start prometheus server", "error", err)
			promServer = nil
		} else {
			log.Info(ctx, "prometheus metrics server started", "port", port)
		}
	}

	return func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if promServer != nil {
			_ = promServer.Stop(stopCtx)
		}
		if err := meterProvider.Shutdown(stopCtx); err != nil {
			log.Warn(stopCtx, "metrics shutdown failed", "error", err)
		}
		if err := traceProvider.Stop(); err != nil {
			log.Warn(stopCtx, "tracing shutdown failed", "error", err)
		}
	}, nil
}

func closeMonolith(mono *monolith.App, log logger.LoggerInterface) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := mono.Close(ctx); err != nil {
		log.Error(ctx, "shutdown error", "error", err)
	}
}

// flagValue maps an unset flag to nil so validation reports it as missing.
func flagValue(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
