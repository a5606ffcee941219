// Package infra builds the provider adapters and transport for the quoting context.
package infra

import (
	"fmt"

	"github.com/comparador/quote-aggregator/business/quoting/app"
	"github.com/comparador/quote-aggregator/business/quoting/infra/providera"
	"github.com/comparador/quote-aggregator/business/quoting/infra/providerb"
	"github.com/comparador/quote-aggregator/internal/config"
)

// NewAdapter returns the adapter for a transport format.
func NewAdapter(id, format string) (app.ProviderAdapter, error) {
	switch format {
	case config.FormatJSON:
		return providera.New(id), nil
	case config.FormatXML:
		return providerb.New(id), nil
	default:
		return nil, fmt.Errorf("unknown provider format %q for %s", format, id)
	}
}

// BuildProviders turns provider configuration into the engine's provider list.
func BuildProviders(cfg config.ProvidersConfig) ([]app.Provider, error) {
	providers := make([]app.Provider, 0, len(cfg.List))
	for _, pc := range cfg.List {
		adapter, err := NewAdapter(pc.ID, pc.Format)
		if err != nil {
			return nil, err
		}
		providers = append(providers, app.Provider{
			Adapter:  adapter,
			Endpoint: pc.ResolvedEndpoint(cfg.BaseURL),
			Timeout:  pc.Timeout,
		})
	}
	return providers, nil
}
