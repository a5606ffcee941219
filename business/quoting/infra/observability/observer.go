// Package observability turns aggregation events into log lines and metrics.
package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/comparador/quote-aggregator/business/quoting/app"
	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/apperror"
	"github.com/comparador/quote-aggregator/internal/logger"
)

const (
	meterName = "quoting"

	// DefaultSlowThreshold is the latency above which a successful call is
	// also logged as slow.
	DefaultSlowThreshold = 5 * time.Second
)

type observerMetrics struct {
	requestsTotal   metric.Int64Counter
	providerCalls   metric.Int64Counter
	providerLatency metric.Float64Histogram
	quoteLatency    metric.Float64Histogram
}

// Observer implements app.Observer on top of the service logger and the
// global OTel meter.
type Observer struct {
	logger        logger.LoggerInterface
	slowThreshold time.Duration
	meter         metric.Meter
	metrics       *observerMetrics
}

var _ app.Observer = (*Observer)(nil)

// Option configures an Observer.
type Option func(*Observer)

// WithSlowThreshold overrides DefaultSlowThreshold. Non-positive values are ignored.
func WithSlowThreshold(d time.Duration) Option {
	return func(o *Observer) {
		if d > 0 {
			o.slowThreshold = d
		}
	}
}

// WithMeter records metrics on m instead of the global meter provider.
func WithMeter(m metric.Meter) Option {
	return func(o *Observer) {
		o.meter = m
	}
}

// New creates an Observer.
func New(log logger.LoggerInterface, opts ...Option) (*Observer, error) {
	o := &Observer{
		logger:        log,
		slowThreshold: DefaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.meter == nil {
		o.meter = otel.Meter(meterName)
	}

	if err := o.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}

	return o, nil
}

func (o *Observer) initMetrics() error {
	var err error

	o.metrics = &observerMetrics{}

	o.metrics.requestsTotal, err = o.meter.Int64Counter(
		"quoting_requests_total",
		metric.WithDescription("Total quote requests"),
	)
	if err != nil {
		return err
	}

	o.metrics.providerCalls, err = o.meter.Int64Counter(
		"quoting_provider_calls_total",
		metric.WithDescription("Provider calls by outcome"),
	)
	if err != nil {
		return err
	}

	o.metrics.providerLatency, err = o.meter.Float64Histogram(
		"quoting_provider_latency_ms",
		metric.WithDescription("Provider call latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	o.metrics.quoteLatency, err = o.meter.Float64Histogram(
		"quoting_quote_latency_ms",
		metric.WithDescription("End to end aggregation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	return nil
}

// SlowThreshold returns the configured slow-call threshold.
func (o *Observer) SlowThreshold() time.Duration {
	return o.slowThreshold
}

// RequestReceived counts and logs an incoming quote request.
func (o *Observer) RequestReceived(ctx context.Context, requestID string, req domain.QuoteRequest) {
	o.metrics.requestsTotal.Add(ctx, 1)
	o.logger.Info(ctx, "Quote request received",
		"request_id", requestID,
		"driver_age", req.DriverAge,
		"car_type", string(req.CarType),
		"car_use", string(req.CarUse),
	)
}

// ProviderStarted logs the start of one provider call.
func (o *Observer) ProviderStarted(ctx context.Context, providerID string) {
	o.logger.Info(ctx, "Calling provider",
		"request_id", app.RequestIDFromContext(ctx),
		"provider", providerID,
	)
}

// ProviderSucceeded records a quote and warns when the call was slow.
func (o *Observer) ProviderSucceeded(ctx context.Context, providerID string, price decimal.Decimal, elapsed time.Duration) {
	o.record(ctx, providerID, "success", elapsed)

	o.logger.Info(ctx, "Provider responded successfully",
		"request_id", app.RequestIDFromContext(ctx),
		"provider", providerID,
		"price", price.String(),
		"response_time_ms", elapsed.Milliseconds(),
	)

	if elapsed > o.slowThreshold {
		o.logger.Warn(ctx, "Provider response slow",
			"request_id", app.RequestIDFromContext(ctx),
			"provider", providerID,
			"response_time_ms", elapsed.Milliseconds(),
			"threshold_ms", o.slowThreshold.Milliseconds(),
		)
	}
}

// ProviderFailed records a failed call. Structured errors also carry their
// full log fields under "details".
func (o *Observer) ProviderFailed(ctx context.Context, providerID string, err error, elapsed time.Duration) {
	kind := string(apperror.GetCode(err))
	o.record(ctx, providerID, kind, elapsed)

	args := []any{
		"request_id", app.RequestIDFromContext(ctx),
		"provider", providerID,
		"kind", kind,
		"error", apperror.Describe(err),
		"response_time_ms", elapsed.Milliseconds(),
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		args = append(args, "details", appErr.ToLog())
	}

	o.logger.Error(ctx, "Provider failed", args...)
}

// AggregationCompleted records the end-to-end latency and the summary line.
func (o *Observer) AggregationCompleted(ctx context.Context, result domain.AggregationResult, elapsed time.Duration) {
	o.metrics.quoteLatency.Record(ctx, float64(elapsed.Milliseconds()),
		metric.WithAttributes(attribute.Bool("campaign_active", result.CampaignActive)))

	cheapest := ""
	if q, ok := result.Cheapest(); ok {
		cheapest = q.ProviderID
	}

	o.logger.Info(ctx, "Quote calculation complete",
		"request_id", result.RequestID,
		"quotes_count", len(result.Quotes),
		"errors_count", len(result.Errors),
		"cheapest_provider", cheapest,
		"campaign_active", result.CampaignActive,
		"duration_ms", elapsed.Milliseconds(),
	)
}

func (o *Observer) record(ctx context.Context, providerID, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("provider", providerID),
		attribute.String("outcome", outcome),
	)
	o.metrics.providerCalls.Add(ctx, 1, attrs)
	o.metrics.providerLatency.Record(ctx, float64(elapsed.Milliseconds()), attrs)
}
