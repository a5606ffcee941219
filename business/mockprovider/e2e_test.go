package mockprovider_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comparador/quote-aggregator/business/mockprovider"
	"github.com/comparador/quote-aggregator/business/quoting/app"
	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/business/quoting/infra"
	"github.com/comparador/quote-aggregator/business/quoting/infra/transport"
	"github.com/comparador/quote-aggregator/internal/apperror"
	"github.com/comparador/quote-aggregator/internal/config"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any)       {}
func (nopLogger) Info(context.Context, string, ...any)        {}
func (nopLogger) Warn(context.Context, string, ...any)        {}
func (nopLogger) Error(context.Context, string, ...any)       {}
func (nopLogger) Debugc(context.Context, int, string, ...any) {}
func (nopLogger) Infoc(context.Context, int, string, ...any)  {}
func (nopLogger) Warnc(context.Context, int, string, ...any)  {}
func (nopLogger) Errorc(context.Context, int, string, ...any) {}

func aggregatorFor(t *testing.T, mock config.MockConfig, timeout time.Duration, campaign bool) *app.Aggregator {
	t.Helper()

	srv := httptest.NewServer(mockprovider.NewServer(mock, nopLogger{}, mockprovider.Chaos{
		Rand: func() float64 { return 0.5 },
	}).Handler())
	t.Cleanup(srv.Close)

	providers, err := infra.BuildProviders(config.ProvidersConfig{
		BaseURL: srv.URL,
		List: []config.ProviderConfig{
			{ID: "provider-a", Format: config.FormatJSON, Timeout: timeout},
			{ID: "provider-b", Format: config.FormatXML, Timeout: timeout},
		},
	})
	require.NoError(t, err)

	client, err := transport.New(providers, nopLogger{})
	require.NoError(t, err)

	return app.NewAggregator(client, providers, campaign)
}

func TestEndToEnd_BothProvidersWithCampaign(t *testing.T) {
	agg := aggregatorFor(t, config.MockConfig{}, time.Second, true)

	result, err := agg.Quote(t.Context(), domain.QuoteRequest{
		DriverAge: 22, CarType: domain.CarTypeTurismo, CarUse: domain.CarUsePrivado,
	})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, result.Quotes, 2)

	cheapest := result.Quotes[0]
	assert.Equal(t, "provider-a", cheapest.ProviderID)
	assert.True(t, cheapest.IsCheapest)
	assert.Equal(t, "297", cheapest.OriginalPrice.String())
	assert.Equal(t, "282.15", cheapest.DiscountedPrice.String())

	assert.Equal(t, "provider-b", result.Quotes[1].ProviderID)
	assert.False(t, result.Quotes[1].IsCheapest)
	assert.Equal(t, "313.5", result.Quotes[1].DiscountedPrice.String())
	assert.Equal(t, "5", result.DiscountPercentage.String())
}

func TestEndToEnd_StallBecomesTimeout(t *testing.T) {
	agg := aggregatorFor(t, config.MockConfig{StallRate: 1, Stall: 5 * time.Second}, 200*time.Millisecond, false)

	start := time.Now()
	result, err := agg.Quote(t.Context(), domain.QuoteRequest{
		DriverAge: 30, CarType: domain.CarTypeSUV, CarUse: domain.CarUseComercial,
	})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	require.Len(t, result.Quotes, 1)
	assert.Equal(t, "provider-a", result.Quotes[0].ProviderID)
	assert.Equal(t, "365", result.Quotes[0].Price.String())
	assert.Nil(t, result.Quotes[0].DiscountedPrice)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "provider-b", result.Errors[0].ProviderID)
	assert.Equal(t, apperror.CodeProviderTimeout, result.Errors[0].Kind)
}

func TestEndToEnd_ProviderAFailure(t *testing.T) {
	agg := aggregatorFor(t, config.MockConfig{ErrorRate: 1}, time.Second, false)

	result, err := agg.Quote(t.Context(), domain.QuoteRequest{
		DriverAge: 30, CarType: domain.CarTypeTurismo, CarUse: domain.CarUsePrivado,
	})
	require.NoError(t, err)

	require.Len(t, result.Quotes, 1)
	assert.Equal(t, "provider-b", result.Quotes[0].ProviderID)
	assert.Equal(t, "300", result.Quotes[0].Price.String())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "provider-a", result.Errors[0].ProviderID)
	assert.Equal(t, "HTTP 500", result.Errors[0].Message)
}
