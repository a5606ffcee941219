package metrics

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

type Provider string

const (
	PrometheusProvider Provider = "prometheus"
	OtelCollector      Provider = "customOtelCollector"
)

func NewOtelCollectorConfig(url string, headers map[string]string, insecure bool) ProviderCfg {
	return ProviderCfg{
		Provider: OtelCollector,
		Endpoint: url,
		Headers:  headers,
		Insecure: insecure,
	}
}

type Config struct {
	ServiceName string
	Provider    []ProviderCfg
	Registerer  prom.Registerer
}

type ProviderCfg struct {
	Provider Provider
	Endpoint string
	Headers  map[string]string
	Insecure bool
}

type OptionFn func(config Config) Config

func WithProviderConfig(provider ProviderCfg) OptionFn {
	return func(config Config) Config {
		config.Provider = append(config.Provider, provider)

		return config
	}
}

func WithServiceName(serviceName string) OptionFn {
	return func(config Config) Config {
		config.ServiceName = serviceName

		return config
	}
}

// WithRegisterer registers the Prometheus exporter on r instead of the
// default registry.
func WithRegisterer(r prom.Registerer) OptionFn {
	return func(config Config) Config {
		config.Registerer = r

		return config
	}
}

type PromServerConfig struct {
	port     string
	gatherer prom.Gatherer
}

type PromOptionFn func(config PromServerConfig) PromServerConfig

func WithPort(port string) PromOptionFn {
	return func(config PromServerConfig) PromServerConfig {
		config.port = port
		return config
	}
}

// WithGatherer serves g instead of the default gatherer.
func WithGatherer(g prom.Gatherer) PromOptionFn {
	return func(config PromServerConfig) PromServerConfig {
		config.gatherer = g
		return config
	}
}
