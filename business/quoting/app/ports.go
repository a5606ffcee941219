// Package app contains the aggregation services and port definitions for the quoting context.
package app

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comparador/quote-aggregator/business/quoting/domain"
)

// Payload is a provider-specific request body.
type Payload struct {
	ContentType string
	Body        []byte
}

// ProviderAdapter translates between the domain vocabulary and one
// provider's wire format. Implementations hold no mutable state.
type ProviderAdapter interface {
	// Name returns the provider id used in results.
	Name() string

	// BuildRequest renders the request payload for this provider.
	BuildRequest(req domain.QuoteRequest) (Payload, error)

	// ParseResponse extracts the price from a successful response body.
	// It fails with PROVIDER_MALFORMED_RESPONSE when the body is invalid.
	ParseResponse(body []byte) (decimal.Decimal, error)
}

// Provider is one configured provider: its adapter plus how to reach it.
type Provider struct {
	Adapter  ProviderAdapter
	Endpoint string
	Timeout  time.Duration
}

// ID returns the adapter name.
func (p Provider) ID() string {
	return p.Adapter.Name()
}

// ProviderCaller executes one provider call under the provider's timeout.
type ProviderCaller interface {
	// Call returns the parsed price and the wall-clock time spent. The
	// elapsed time is reported on failure too.
	Call(ctx context.Context, provider Provider, req domain.QuoteRequest) (decimal.Decimal, time.Duration, error)
}

// Observer receives aggregation events. Implementations must not block;
// nothing they do affects the result.
type Observer interface {
	RequestReceived(ctx context.Context, requestID string, req domain.QuoteRequest)
	ProviderStarted(ctx context.Context, providerID string)
	ProviderSucceeded(ctx context.Context, providerID string, price decimal.Decimal, elapsed time.Duration)
	ProviderFailed(ctx context.Context, providerID string, err error, elapsed time.Duration)
	AggregationCompleted(ctx context.Context, result domain.AggregationResult, elapsed time.Duration)
}

// NopObserver discards every event.
type NopObserver struct{}

var _ Observer = NopObserver{}

func (NopObserver) RequestReceived(context.Context, string, domain.QuoteRequest) {}

func (NopObserver) ProviderStarted(context.Context, string) {}

func (NopObserver) ProviderSucceeded(context.Context, string, decimal.Decimal, time.Duration) {}

func (NopObserver) ProviderFailed(context.Context, string, error, time.Duration) {}

func (NopObserver) AggregationCompleted(context.Context, domain.AggregationResult, time.Duration) {}
