package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comparador/quote-aggregator/business/quoting/infra/providera"
	"github.com/comparador/quote-aggregator/business/quoting/infra/providerb"
	"github.com/comparador/quote-aggregator/internal/config"
)

func TestBuildProviders(t *testing.T) {
	providers, err := BuildProviders(config.ProvidersConfig{
		BaseURL: "http://mocks:8081",
		List: []config.ProviderConfig{
			{ID: "provider-a", Format: config.FormatJSON, Timeout: 10 * time.Second},
			{ID: "provider-b", Format: config.FormatXML, Endpoint: "http://b.test/cotizar", Timeout: 3 * time.Second},
		},
	})
	require.NoError(t, err)
	require.Len(t, providers, 2)

	assert.IsType(t, &providera.Adapter{}, providers[0].Adapter)
	assert.Equal(t, "provider-a", providers[0].ID())
	assert.Equal(t, "http://mocks:8081/provider-a/quote", providers[0].Endpoint)
	assert.Equal(t, 10*time.Second, providers[0].Timeout)

	assert.IsType(t, &providerb.Adapter{}, providers[1].Adapter)
	assert.Equal(t, "http://b.test/cotizar", providers[1].Endpoint)
}

func TestNewAdapter_UnknownFormat(t *testing.T) {
	_, err := NewAdapter("provider-c", "soap")
	assert.ErrorContains(t, err, `unknown provider format "soap"`)
}
