// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Provider transport formats.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
)

// Config holds all application configuration.
type Config struct {
	App            AppConfig            `mapstructure:"app"`
	Server         ServerConfig         `mapstructure:"server"`
	Campaign       CampaignConfig       `mapstructure:"campaign"`
	Providers      ProvidersConfig      `mapstructure:"providers"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	Telemetry      TelemetryConfig      `mapstructure:"telemetry"`
	Health         HealthConfig         `mapstructure:"health"`
	Mock           MockConfig           `mapstructure:"mock"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// ServerConfig holds the public quote API settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	RateLimitRPM int           `mapstructure:"rate_limit_rpm"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// CampaignConfig holds the promotional campaign switch.
type CampaignConfig struct {
	Active bool `mapstructure:"active"`
}

// ProvidersConfig holds the set of quote providers queried per request.
type ProvidersConfig struct {
	BaseURL       string           `mapstructure:"base_url"`
	SlowThreshold time.Duration    `mapstructure:"slow_threshold"`
	List          []ProviderConfig `mapstructure:"list"`
}

// ProviderConfig describes one external provider.
type ProviderConfig struct {
	ID       string        `mapstructure:"id"`
	Format   string        `mapstructure:"format"`
	Endpoint string        `mapstructure:"endpoint"` // empty means <base_url>/<id>/quote
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ResolvedEndpoint returns the endpoint, falling back to the base URL layout.
func (p ProviderConfig) ResolvedEndpoint(baseURL string) string {
	if p.Endpoint != "" {
		return p.Endpoint
	}
	return strings.TrimRight(baseURL, "/") + "/" + p.ID + "/quote"
}

// CircuitBreakerConfig holds the optional per-provider breaker settings.
type CircuitBreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures uint32        `mapstructure:"max_failures"`
	OpenTimeout time.Duration `mapstructure:"open_timeout"`
	Interval    time.Duration `mapstructure:"interval"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	TraceProvider  string `mapstructure:"trace_provider"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// HealthConfig holds the health server settings.
type HealthConfig struct {
	Port int `mapstructure:"port"`
}

// MockConfig holds settings for the local mock provider servers.
type MockConfig struct {
	Port      int           `mapstructure:"port"`
	ErrorRate float64       `mapstructure:"error_rate"`
	StallRate float64       `mapstructure:"stall_rate"`
	LatencyA  time.Duration `mapstructure:"latency_a"`
	LatencyB  time.Duration `mapstructure:"latency_b"`
	Stall     time.Duration `mapstructure:"stall"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("QUOTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyProviderDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "QUOTER_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "QUOTER_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "QUOTER_LOG_LEVEL", "LOG_LEVEL")

	// Server
	v.BindEnv("server.port", "QUOTER_SERVER_PORT", "PORT")
	v.BindEnv("server.rate_limit_rpm", "QUOTER_RATE_LIMIT_RPM")

	// Campaign
	v.BindEnv("campaign.active", "QUOTER_CAMPAIGN_ACTIVE", "CAMPAIGN_ACTIVE")

	// Providers
	v.BindEnv("providers.base_url", "QUOTER_PROVIDER_BASE_URL", "PROVIDER_BASE_URL")
	v.BindEnv("providers.slow_threshold", "QUOTER_PROVIDER_SLOW_THRESHOLD")

	// Circuit breaker
	v.BindEnv("circuit_breaker.enabled", "QUOTER_CB_ENABLED")

	// Telemetry
	v.BindEnv("telemetry.enabled", "QUOTER_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "QUOTER_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.trace_provider", "QUOTER_OTEL_TRACE_PROVIDER")
	v.BindEnv("telemetry.otlp_endpoint", "QUOTER_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")

	// Mock providers
	v.BindEnv("mock.port", "QUOTER_MOCK_PORT", "MOCK_PORT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "quote-aggregator")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.rate_limit_rpm", 600)
	v.SetDefault("server.max_body_bytes", 16*1024)

	// Campaign defaults
	v.SetDefault("campaign.active", false)

	// Provider defaults
	v.SetDefault("providers.base_url", "http://localhost:8081")
	v.SetDefault("providers.slow_threshold", "5s")
	v.SetDefault("providers.list", []map[string]any{
		{"id": "provider-a", "format": FormatJSON, "timeout": "10s"},
		{"id": "provider-b", "format": FormatXML, "timeout": "10s"},
	})

	// Circuit breaker defaults (off: requests share no state)
	v.SetDefault("circuit_breaker.enabled", false)
	v.SetDefault("circuit_breaker.max_failures", 5)
	v.SetDefault("circuit_breaker.open_timeout", "30s")
	v.SetDefault("circuit_breaker.interval", "60s")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "quote-aggregator")
	v.SetDefault("telemetry.trace_provider", "console")
	v.SetDefault("telemetry.prometheus_port", 9090)

	// Health defaults
	v.SetDefault("health.port", 8090)

	// Mock defaults
	v.SetDefault("mock.port", 8081)
	v.SetDefault("mock.error_rate", 0.10)
	v.SetDefault("mock.stall_rate", 0.01)
	v.SetDefault("mock.latency_a", "2s")
	v.SetDefault("mock.latency_b", "5s")
	v.SetDefault("mock.stall", "60s")
}

const defaultProviderTimeout = 10 * time.Second

func (c *Config) applyProviderDefaults() {
	for i := range c.Providers.List {
		p := &c.Providers.List[i]
		p.Format = strings.ToLower(strings.TrimSpace(p.Format))
		if p.Timeout == 0 {
			p.Timeout = defaultProviderTimeout
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Providers.List) == 0 {
		return fmt.Errorf("providers.list cannot be empty")
	}

	seen := make(map[string]struct{}, len(c.Providers.List))
	for i, p := range c.Providers.List {
		if p.ID == "" {
			return fmt.Errorf("providers.list[%d].id is required", i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("duplicate provider id: %s", p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Format != FormatJSON && p.Format != FormatXML {
			return fmt.Errorf("invalid format for provider %s: %q", p.ID, p.Format)
		}
		if p.Timeout <= 0 {
			return fmt.Errorf("timeout for provider %s must be positive", p.ID)
		}
		if p.Endpoint == "" && c.Providers.BaseURL == "" {
			return fmt.Errorf("provider %s has no endpoint and providers.base_url is empty", p.ID)
		}
	}

	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if c.CircuitBreaker.Enabled && c.CircuitBreaker.MaxFailures == 0 {
		return fmt.Errorf("circuit_breaker.max_failures must be positive when enabled")
	}
	return nil
}
