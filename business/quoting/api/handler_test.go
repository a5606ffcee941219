package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comparador/quote-aggregator/business/quoting/app"
	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/apperror"
	"github.com/comparador/quote-aggregator/internal/config"
)

// mockLogger implements logger.LoggerInterface for testing.
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (m *mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

type quoterFunc func(ctx context.Context, req domain.QuoteRequest) (domain.AggregationResult, error)

func (f quoterFunc) Quote(ctx context.Context, req domain.QuoteRequest) (domain.AggregationResult, error) {
	return f(ctx, req)
}

func discounted(price string) domain.PricedQuote {
	p := decimal.RequireFromString(price)
	return domain.ApplyDiscount([]domain.RawQuote{domain.NewRawQuote("provider-a", p)}, true)[0]
}

func newTestRoutes(q Quoter, cfg config.ServerConfig) http.Handler {
	return Routes(NewHandler(q, testValidator(), &mockLogger{}), cfg, &mockLogger{})
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

const validBody = `{"driver_birthday":"2003-01-01","car_type":"turismo","car_use":"privado"}`

func TestHandler_Calculate_CampaignActive(t *testing.T) {
	var gotReq domain.QuoteRequest
	q := quoterFunc(func(ctx context.Context, req domain.QuoteRequest) (domain.AggregationResult, error) {
		gotReq = req
		quote := discounted("287")
		quote.IsCheapest = true
		return domain.AggregationResult{
			CampaignActive:     true,
			DiscountPercentage: domain.DiscountPercentage(true),
			Quotes:             []domain.PricedQuote{quote},
			Errors: []domain.ProviderError{{
				ProviderID: "provider-b",
				Message:    "Request timeout: provider took longer than 10 seconds",
				Kind:       apperror.CodeProviderTimeout,
			}},
		}, nil
	})

	rr := post(t, newTestRoutes(q, config.ServerConfig{}), validBody)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 22, gotReq.DriverAge)
	assert.JSONEq(t, `{
		"campaign_active": true,
		"discount_percentage": 5,
		"quotes": [{
			"provider": "provider-a",
			"price": 287,
			"currency": "EUR",
			"is_cheapest": true,
			"original_price": 287,
			"discounted_price": 272.65
		}],
		"errors": [{"provider": "provider-b", "error": "Request timeout: provider took longer than 10 seconds"}]
	}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
}

func TestHandler_Calculate_CampaignInactiveOmitsDiscountPair(t *testing.T) {
	q := quoterFunc(func(ctx context.Context, req domain.QuoteRequest) (domain.AggregationResult, error) {
		raw := []domain.RawQuote{
			domain.NewRawQuote("provider-a", decimal.NewFromInt(217)),
			domain.NewRawQuote("provider-b", decimal.NewFromInt(300)),
		}
		return domain.AggregationResult{
			DiscountPercentage: domain.DiscountPercentage(false),
			Quotes:             domain.Rank(domain.ApplyDiscount(raw, false), false),
		}, nil
	})

	rr := post(t, newTestRoutes(q, config.ServerConfig{}), validBody)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"campaign_active": false,
		"discount_percentage": 0,
		"quotes": [
			{"provider": "provider-a", "price": 217, "currency": "EUR", "is_cheapest": true},
			{"provider": "provider-b", "price": 300, "currency": "EUR", "is_cheapest": false}
		],
		"errors": []
	}`, rr.Body.String())
}

func TestHandler_Calculate_ValidationError(t *testing.T) {
	called := false
	q := quoterFunc(func(ctx context.Context, req domain.QuoteRequest) (domain.AggregationResult, error) {
		called = true
		return domain.AggregationResult{}, nil
	})

	rr := post(t, newTestRoutes(q, config.ServerConfig{}), `{"car_type":"suv"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Validation error","message":"Missing required fields: driver_birthday, car_type, car_use"}`, rr.Body.String())
	assert.False(t, called)
}

func TestHandler_Calculate_AggregationError(t *testing.T) {
	q := quoterFunc(func(ctx context.Context, req domain.QuoteRequest) (domain.AggregationResult, error) {
		return domain.AggregationResult{}, apperror.New(apperror.CodeNoProvidersConfigured)
	})

	rr := post(t, newTestRoutes(q, config.ServerConfig{}), validBody)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch quotes", body.Error)
	assert.NotEmpty(t, body.Message)
}

func TestHandler_Calculate_PlainError(t *testing.T) {
	q := quoterFunc(func(ctx context.Context, req domain.QuoteRequest) (domain.AggregationResult, error) {
		return domain.AggregationResult{}, errors.New("boom")
	})

	rr := post(t, newTestRoutes(q, config.ServerConfig{}), validBody)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch quotes","message":"boom"}`, rr.Body.String())
}

func TestHandler_Calculate_RequestIDPropagates(t *testing.T) {
	var gotID string
	q := quoterFunc(func(ctx context.Context, req domain.QuoteRequest) (domain.AggregationResult, error) {
		gotID = app.RequestIDFromContext(ctx)
		return domain.AggregationResult{}, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", strings.NewReader(validBody))
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	newTestRoutes(q, config.ServerConfig{}).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "abc-123", gotID)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
	assert.JSONEq(t, `{"campaign_active":false,"discount_percentage":0,"quotes":[],"errors":[]}`, rr.Body.String())
}
