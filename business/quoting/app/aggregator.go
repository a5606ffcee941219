package app

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/apperror"
)

// State is a step of a single Quote call.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateDecorating
	StateRanked
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateDecorating:
		return "decorating"
	case StateRanked:
		return "ranked"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

type requestIDKey struct{}

// ContextWithRequestID stores a correlation id for the Quote call.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation id, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Aggregator is the single entry point of the quoting context: it fetches
// from every provider, applies the campaign discount and ranks the result.
type Aggregator struct {
	engine         *Engine
	providers      []Provider
	campaignActive bool
	observer       Observer
	newID          func() string
	onTransition   func(State)
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithObserver routes aggregation events to o.
func WithObserver(o Observer) Option {
	return func(a *Aggregator) {
		if o != nil {
			a.observer = o
		}
	}
}

// WithRequestIDFunc overrides how request ids are generated.
func WithRequestIDFunc(fn func() string) Option {
	return func(a *Aggregator) {
		a.newID = fn
	}
}

// WithStateHook is called on every state transition.
func WithStateHook(fn func(State)) Option {
	return func(a *Aggregator) {
		a.onTransition = fn
	}
}

// NewAggregator creates an Aggregator over a read-only provider list.
func NewAggregator(caller ProviderCaller, providers []Provider, campaignActive bool, opts ...Option) *Aggregator {
	a := &Aggregator{
		providers:      slices.Clone(providers),
		campaignActive: campaignActive,
		observer:       NopObserver{},
		newID:          uuid.NewString,
		onTransition:   func(State) {},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.engine = NewEngine(caller, a.observer)
	return a
}

// Providers returns a copy of the configured providers.
func (a *Aggregator) Providers() []Provider {
	return slices.Clone(a.providers)
}

// CampaignActive reports the campaign flag the aggregator was built with.
func (a *Aggregator) CampaignActive() bool {
	return a.campaignActive
}

// Quote runs one aggregation. It returns an error only when no providers
// are configured; provider failures are reported inside the result, even
// when every provider fails.
func (a *Aggregator) Quote(ctx context.Context, req domain.QuoteRequest) (domain.AggregationResult, error) {
	if len(a.providers) == 0 {
		return domain.AggregationResult{}, apperror.New(apperror.CodeNoProvidersConfigured)
	}

	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = a.newID()
		ctx = ContextWithRequestID(ctx, requestID)
	}

	start := time.Now()
	a.onTransition(StateIdle)
	a.observer.RequestReceived(ctx, requestID, req)

	a.onTransition(StateFetching)
	raw, errs := a.engine.FetchAll(ctx, req, a.providers)

	a.onTransition(StateDecorating)
	priced := domain.ApplyDiscount(raw, a.campaignActive)

	a.onTransition(StateRanked)
	ranked := domain.Rank(priced, a.campaignActive)

	result := domain.AggregationResult{
		RequestID:          requestID,
		CampaignActive:     a.campaignActive,
		DiscountPercentage: domain.DiscountPercentage(a.campaignActive),
		Quotes:             ranked,
		Errors:             errs,
	}

	a.onTransition(StateDone)
	a.observer.AggregationCompleted(ctx, result, time.Since(start))
	return result, nil
}
