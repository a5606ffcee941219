// Package main runs the local mock quote providers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/comparador/quote-aggregator/business/mockprovider"
	"github.com/comparador/quote-aggregator/internal/config"
	"github.com/comparador/quote-aggregator/internal/logger"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	port := flag.Int("port", 0, "Listen port (overrides mock.port)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *port); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, port int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if port > 0 {
		cfg.Mock.Port = port
	}

	log := logger.New(os.Stderr, logger.ParseLevel(cfg.App.LogLevel), "mock-providers", nil)
	log.Info(ctx, "starting mock providers",
		"port", cfg.Mock.Port,
		"error_rate", cfg.Mock.ErrorRate,
		"stall_rate", cfg.Mock.StallRate,
		"latency_a", cfg.Mock.LatencyA.String(),
		"latency_b", cfg.Mock.LatencyB.String(),
	)

	server := mockprovider.NewServer(cfg.Mock, log, mockprovider.DefaultChaos())
	if err := server.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Stop(shutdownCtx)
}
