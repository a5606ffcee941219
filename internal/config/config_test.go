package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Campaign.Active)
	require.Len(t, cfg.Providers.List, 2)
	assert.Equal(t, "provider-a", cfg.Providers.List[0].ID)
	assert.Equal(t, FormatJSON, cfg.Providers.List[0].Format)
	assert.Equal(t, "provider-b", cfg.Providers.List[1].ID)
	assert.Equal(t, FormatXML, cfg.Providers.List[1].Format)
	assert.Equal(t, 10*time.Second, cfg.Providers.List[1].Timeout)
	assert.Equal(t, 5*time.Second, cfg.Providers.SlowThreshold)
	assert.False(t, cfg.CircuitBreaker.Enabled)
	assert.Equal(t, "http://localhost:8081/provider-a/quote",
		cfg.Providers.List[0].ResolvedEndpoint(cfg.Providers.BaseURL))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CAMPAIGN_ACTIVE", "true")
	t.Setenv("PROVIDER_BASE_URL", "http://mocks:9000/")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Campaign.Active)
	assert.Equal(t, "http://mocks:9000/provider-b/quote",
		cfg.Providers.List[1].ResolvedEndpoint(cfg.Providers.BaseURL))
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
providers:
  list:
    - id: only-json
      format: JSON
      endpoint: http://example.test/q
      timeout: 3s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Providers.List, 1)
	p := cfg.Providers.List[0]
	assert.Equal(t, FormatJSON, p.Format)
	assert.Equal(t, 3*time.Second, p.Timeout)
	assert.Equal(t, "http://example.test/q", p.ResolvedEndpoint(cfg.Providers.BaseURL))
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: 8080},
			Providers: ProvidersConfig{
				BaseURL: "http://localhost",
				List: []ProviderConfig{
					{ID: "a", Format: FormatJSON, Timeout: time.Second},
					{ID: "b", Format: FormatXML, Timeout: time.Second},
				},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty_providers", func(c *Config) { c.Providers.List = nil }, "providers.list cannot be empty"},
		{"duplicate_id", func(c *Config) { c.Providers.List[1].ID = "a" }, "duplicate provider id"},
		{"unknown_format", func(c *Config) { c.Providers.List[0].Format = "soap" }, "invalid format"},
		{"non_positive_timeout", func(c *Config) { c.Providers.List[0].Timeout = -time.Second }, "must be positive"},
		{"missing_id", func(c *Config) { c.Providers.List[0].ID = "" }, "id is required"},
		{"breaker_without_threshold", func(c *Config) { c.CircuitBreaker.Enabled = true }, "max_failures"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
