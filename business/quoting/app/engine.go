package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/comparador/quote-aggregator/business/quoting/domain"
)

// outcome is the per-provider slot written by exactly one worker.
type outcome struct {
	quote *domain.RawQuote
	err   *domain.ProviderError
}

// Engine fans one request out to every provider concurrently.
type Engine struct {
	caller   ProviderCaller
	observer Observer
}

// NewEngine creates an Engine. A nil observer discards events.
func NewEngine(caller ProviderCaller, observer Observer) *Engine {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Engine{caller: caller, observer: observer}
}

// FetchAll calls every provider at once and waits for all of them. Every
// provider yields exactly one quote or one error, and both slices keep the
// configuration order regardless of completion order. Total latency is
// bounded by the largest provider timeout.
func (e *Engine) FetchAll(ctx context.Context, req domain.QuoteRequest, providers []Provider) ([]domain.RawQuote, []domain.ProviderError) {
	slots := make([]outcome, len(providers))

	// Workers never return an error, so one provider failing cannot cancel
	// the group context of the others.
	var g errgroup.Group
	g.SetLimit(max(len(providers), 1))

	for idx := range providers {
		g.Go(func() error {
			p := providers[idx]
			id := p.ID()

			e.observer.ProviderStarted(ctx, id)
			price, elapsed, err := e.caller.Call(ctx, p, req)
			if err != nil {
				pe := domain.NewProviderError(id, err)
				slots[idx] = outcome{err: &pe}
				e.observer.ProviderFailed(ctx, id, err, elapsed)
				return nil
			}

			q := domain.NewRawQuote(id, price)
			slots[idx] = outcome{quote: &q}
			e.observer.ProviderSucceeded(ctx, id, price, elapsed)
			return nil
		})
	}
	g.Wait()

	quotes := make([]domain.RawQuote, 0, len(providers))
	errs := make([]domain.ProviderError, 0)
	for _, o := range slots {
		switch {
		case o.quote != nil:
			quotes = append(quotes, *o.quote)
		case o.err != nil:
			errs = append(errs, *o.err)
		}
	}
	return quotes, errs
}
