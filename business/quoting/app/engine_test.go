package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/comparador/quote-aggregator/business/quoting/app"
	"github.com/comparador/quote-aggregator/business/quoting/app/mocks"
	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/apperror"
)

// stubAdapter only carries a name; the caller is mocked.
type stubAdapter struct{ name string }

func (s stubAdapter) Name() string { return s.name }

func (s stubAdapter) BuildRequest(domain.QuoteRequest) (app.Payload, error) {
	return app.Payload{}, nil
}

func (s stubAdapter) ParseResponse([]byte) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func providers(ids ...string) []app.Provider {
	out := make([]app.Provider, len(ids))
	for i, id := range ids {
		out[i] = app.Provider{Adapter: stubAdapter{name: id}, Endpoint: "http://test/" + id, Timeout: 10 * time.Second}
	}
	return out
}

func byID(id string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		p, ok := x.(app.Provider)
		return ok && p.ID() == id
	})
}

var testRequest = domain.QuoteRequest{DriverAge: 30, CarType: domain.CarTypeTurismo, CarUse: domain.CarUsePrivado}

func TestEngine_FetchAll_PartitionsOutcomes(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := mocks.NewMockProviderCaller(ctrl)

	caller.EXPECT().Call(gomock.Any(), byID("provider-a"), testRequest).
		Return(decimal.NewFromInt(217), 20*time.Millisecond, nil)
	caller.EXPECT().Call(gomock.Any(), byID("provider-b"), testRequest).
		Return(decimal.Zero, 10*time.Second, apperror.New(apperror.CodeProviderTimeout,
			apperror.WithContext("provider took longer than 10 seconds")))
	caller.EXPECT().Call(gomock.Any(), byID("provider-c"), testRequest).
		Return(decimal.NewFromInt(300), 30*time.Millisecond, nil)

	quotes, errs := app.NewEngine(caller, nil).FetchAll(t.Context(), testRequest, providers("provider-a", "provider-b", "provider-c"))

	require.Len(t, quotes, 2)
	require.Len(t, errs, 1)
	assert.Equal(t, "provider-a", quotes[0].ProviderID)
	assert.Equal(t, "provider-c", quotes[1].ProviderID)
	assert.Equal(t, "EUR", string(quotes[0].Currency))
	assert.Equal(t, "provider-b", errs[0].ProviderID)
	assert.Equal(t, apperror.CodeProviderTimeout, errs[0].Kind)
	assert.Equal(t, "Request timeout: provider took longer than 10 seconds", errs[0].Message)
}

func TestEngine_FetchAll_CallsProvidersConcurrently(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := mocks.NewMockProviderCaller(ctrl)

	const n = 3
	var started sync.WaitGroup
	started.Add(n)
	allStarted := make(chan struct{})
	go func() {
		started.Wait()
		close(allStarted)
	}()

	caller.EXPECT().Call(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, p app.Provider, _ domain.QuoteRequest) (decimal.Decimal, time.Duration, error) {
			started.Done()
			// Every call blocks until all of them are in flight.
			select {
			case <-allStarted:
			case <-time.After(2 * time.Second):
				return decimal.Zero, 0, apperror.New(apperror.CodeProviderTimeout)
			}
			return decimal.NewFromInt(100), time.Millisecond, nil
		}).Times(n)

	quotes, errs := app.NewEngine(caller, nil).FetchAll(t.Context(), testRequest, providers("a", "b", "c"))

	assert.Len(t, quotes, n)
	assert.Empty(t, errs)
}

func TestEngine_FetchAll_KeepsConfigOrderRegardlessOfCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := mocks.NewMockProviderCaller(ctrl)

	delays := map[string]time.Duration{"slow": 60 * time.Millisecond, "medium": 30 * time.Millisecond, "fast": 0}
	caller.EXPECT().Call(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, p app.Provider, _ domain.QuoteRequest) (decimal.Decimal, time.Duration, error) {
			time.Sleep(delays[p.ID()])
			return decimal.NewFromInt(1), delays[p.ID()], nil
		}).Times(3)

	quotes, _ := app.NewEngine(caller, nil).FetchAll(t.Context(), testRequest, providers("slow", "medium", "fast"))

	require.Len(t, quotes, 3)
	assert.Equal(t, []string{"slow", "medium", "fast"},
		[]string{quotes[0].ProviderID, quotes[1].ProviderID, quotes[2].ProviderID})
}

func TestEngine_FetchAll_NotifiesObserver(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := mocks.NewMockProviderCaller(ctrl)
	observer := mocks.NewMockObserver(ctrl)

	failure := apperror.New(apperror.CodeProviderHTTPStatus, apperror.WithMessage("HTTP 500"))
	caller.EXPECT().Call(gomock.Any(), byID("provider-a"), gomock.Any()).Return(decimal.Zero, 5*time.Millisecond, failure)
	caller.EXPECT().Call(gomock.Any(), byID("provider-b"), gomock.Any()).Return(decimal.NewFromInt(300), 7*time.Millisecond, nil)

	observer.EXPECT().ProviderStarted(gomock.Any(), "provider-a")
	observer.EXPECT().ProviderStarted(gomock.Any(), "provider-b")
	observer.EXPECT().ProviderFailed(gomock.Any(), "provider-a", failure, 5*time.Millisecond)
	observer.EXPECT().ProviderSucceeded(gomock.Any(), "provider-b", decimal.NewFromInt(300), 7*time.Millisecond)

	quotes, errs := app.NewEngine(caller, observer).FetchAll(t.Context(), testRequest, providers("provider-a", "provider-b"))

	assert.Len(t, quotes, 1)
	require.Len(t, errs, 1)
	assert.Equal(t, "HTTP 500", errs[0].Message)
}

func TestEngine_FetchAll_EveryProviderAppearsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := mocks.NewMockProviderCaller(ctrl)

	ids := []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7"}
	caller.EXPECT().Call(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p app.Provider, _ domain.QuoteRequest) (decimal.Decimal, time.Duration, error) {
			if p.ID()[1]%2 == 0 {
				return decimal.Zero, 0, apperror.New(apperror.CodeProviderTransportError)
			}
			return decimal.NewFromInt(int64(p.ID()[1])), 0, nil
		}).Times(len(ids))

	quotes, errs := app.NewEngine(caller, nil).FetchAll(t.Context(), testRequest, providers(ids...))

	assert.Equal(t, len(ids), len(quotes)+len(errs))
	seen := map[string]int{}
	for _, q := range quotes {
		seen[q.ProviderID]++
	}
	for _, e := range errs {
		seen[e.ProviderID]++
	}
	for _, id := range ids {
		assert.Equal(t, 1, seen[id], id)
	}
}
