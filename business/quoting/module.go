// Package quoting implements the car insurance quote aggregation context.
package quoting

import (
	"context"
	"fmt"

	"github.com/comparador/quote-aggregator/business/quoting/api"
	"github.com/comparador/quote-aggregator/business/quoting/app"
	quotingDI "github.com/comparador/quote-aggregator/business/quoting/di"
	"github.com/comparador/quote-aggregator/business/quoting/infra"
	"github.com/comparador/quote-aggregator/business/quoting/infra/observability"
	"github.com/comparador/quote-aggregator/business/quoting/infra/transport"
	"github.com/comparador/quote-aggregator/internal/config"
	"github.com/comparador/quote-aggregator/internal/di"
	"github.com/comparador/quote-aggregator/internal/logger"
	"github.com/comparador/quote-aggregator/internal/monolith"
)

// Module implements the quoting bounded context.
type Module struct {
	// ServeAPI starts the HTTP API during Startup. The one-shot terminal
	// mode leaves it off and calls the aggregator directly.
	ServeAPI bool
}

// RegisterServices registers all quoting services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Provider list built from configuration - private dependency
	di.RegisterToken(c, quotingDI.Providers, func(sr di.ServiceRegistry) []app.Provider {
		cfg := sr.Get("config").(*config.Config)

		providers, err := infra.BuildProviders(cfg.Providers)
		if err != nil {
			panic("failed to build providers: " + err.Error())
		}
		return providers
	})

	// HTTP caller with per-provider timeouts - private dependency
	di.RegisterToken(c, quotingDI.ProviderClient, func(sr di.ServiceRegistry) *transport.ProviderClient {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := transport.New(quotingDI.GetProviders(sr), log,
			transport.WithCircuitBreaker(cfg.CircuitBreaker),
		)
		if err != nil {
			panic("failed to create provider client: " + err.Error())
		}
		return client
	})

	// Logging and metrics sink for aggregation events - private dependency
	di.RegisterToken(c, quotingDI.Observer, func(sr di.ServiceRegistry) *observability.Observer {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		observer, err := observability.New(log, observability.WithSlowThreshold(cfg.Providers.SlowThreshold))
		if err != nil {
			panic("failed to create observer: " + err.Error())
		}
		return observer
	})

	// Register Aggregator (public - exposed to presentation)
	di.RegisterToken(c, quotingDI.Aggregator, func(sr di.ServiceRegistry) *app.Aggregator {
		cfg := sr.Get("config").(*config.Config)

		return app.NewAggregator(
			quotingDI.GetProviderClient(sr),
			quotingDI.GetProviders(sr),
			cfg.Campaign.Active,
			app.WithObserver(quotingDI.GetObserver(sr)),
		)
	})

	// Register Handler (public)
	di.RegisterToken(c, quotingDI.Handler, func(sr di.ServiceRegistry) *api.Handler {
		log := sr.Get("logger").(logger.LoggerInterface)
		return api.NewHandler(quotingDI.GetAggregator(sr), api.NewValidator(), log)
	})

	return nil
}

// Startup initializes the quoting module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()
	cfg := mono.Config()

	aggregator := quotingDI.GetAggregator(mono.Services())
	for _, p := range aggregator.Providers() {
		log.Info(ctx, "provider configured",
			"provider", p.ID(),
			"endpoint", p.Endpoint,
			"timeout_ms", p.Timeout.Milliseconds(),
		)
	}

	if m.ServeAPI {
		server := api.NewServer(cfg.Server, quotingDI.GetHandler(mono.Services()), log)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("failed to start API server: %w", err)
		}
		mono.OnClose("quoting.api", server.Stop)
	}

	log.Info(ctx, "quoting module started",
		"providers", len(aggregator.Providers()),
		"campaign_active", aggregator.CampaignActive(),
		"circuit_breaker", cfg.CircuitBreaker.Enabled,
	)
	return nil
}
