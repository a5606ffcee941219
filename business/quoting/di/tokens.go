// Package di contains dependency injection tokens for the quoting context.
package di

import (
	"github.com/comparador/quote-aggregator/business/quoting/api"
	"github.com/comparador/quote-aggregator/business/quoting/app"
	"github.com/comparador/quote-aggregator/business/quoting/infra/observability"
	"github.com/comparador/quote-aggregator/business/quoting/infra/transport"
	"github.com/comparador/quote-aggregator/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Aggregator = di.NewToken[*app.Aggregator]("quoting.Aggregator")
	Handler    = di.NewToken[*api.Handler]("quoting.Handler")
)

// Private dependency tokens - internal to quoting module
var (
	Providers      = di.NewToken[[]app.Provider]("quoting:providers")
	ProviderClient = di.NewToken[*transport.ProviderClient]("quoting:providerClient")
	Observer       = di.NewToken[*observability.Observer]("quoting:observer")
)

// Helper functions for type-safe access
func GetAggregator(c di.ServiceRegistry) *app.Aggregator {
	return di.GetToken(c, Aggregator)
}

func GetHandler(c di.ServiceRegistry) *api.Handler {
	return di.GetToken(c, Handler)
}

func GetProviders(c di.ServiceRegistry) []app.Provider {
	return di.GetToken(c, Providers)
}

func GetProviderClient(c di.ServiceRegistry) *transport.ProviderClient {
	return di.GetToken(c, ProviderClient)
}

func GetObserver(c di.ServiceRegistry) *observability.Observer {
	return di.GetToken(c, Observer)
}
