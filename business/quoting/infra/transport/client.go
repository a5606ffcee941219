// Package transport executes provider calls over HTTP under a per-provider timeout.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/comparador/quote-aggregator/business/quoting/app"
	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/apperror"
	"github.com/comparador/quote-aggregator/internal/circuitbreaker"
	"github.com/comparador/quote-aggregator/internal/config"
	"github.com/comparador/quote-aggregator/internal/httpclient"
	"github.com/comparador/quote-aggregator/internal/logger"
)

// ProviderClient implements app.ProviderCaller. Its per-provider state is
// built once in New and only read afterwards.
type ProviderClient struct {
	logger   logger.LoggerInterface
	tracer   trace.Tracer
	clients  map[string]httpclient.Client
	fallback httpclient.Client
	breakers map[string]*circuitbreaker.CircuitBreaker[[]byte]
}

var _ app.ProviderCaller = (*ProviderClient)(nil)

type options struct {
	breaker    *config.CircuitBreakerConfig
	clientOpts []httpclient.ClientOption
	tracer     trace.Tracer
}

// Option configures a ProviderClient.
type Option func(*options)

// WithCircuitBreaker enables one breaker per provider.
func WithCircuitBreaker(cfg config.CircuitBreakerConfig) Option {
	return func(o *options) {
		if cfg.Enabled {
			o.breaker = &cfg
		}
	}
}

// WithClientOptions passes extra options to every underlying HTTP client.
func WithClientOptions(opts ...httpclient.ClientOption) Option {
	return func(o *options) {
		o.clientOpts = append(o.clientOpts, opts...)
	}
}

// WithTracer overrides the tracer used for provider spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// New builds a client for the given providers.
func New(providers []app.Provider, log logger.LoggerInterface, opts ...Option) (*ProviderClient, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer("quoting.transport")
	}

	c := &ProviderClient{
		logger:  log,
		tracer:  o.tracer,
		clients: make(map[string]httpclient.Client, len(providers)),
	}

	for _, p := range providers {
		id := p.ID()
		hc, err := httpclient.NewInstrumentedClient(append([]httpclient.ClientOption{
			httpclient.WithProviderName(id),
			httpclient.WithTraceOptions(o.tracer, httpclient.TraceRequest, httpclient.TraceResponse),
		}, o.clientOpts...)...)
		if err != nil {
			return nil, fmt.Errorf("http client for %s: %w", id, err)
		}
		c.clients[id] = hc

		if o.breaker != nil {
			if c.breakers == nil {
				c.breakers = make(map[string]*circuitbreaker.CircuitBreaker[[]byte], len(providers))
			}
			c.breakers[id] = c.newBreaker(id, *o.breaker)
		}
	}

	fallback, err := httpclient.NewInstrumentedClient(append([]httpclient.ClientOption{
		httpclient.WithTraceOptions(o.tracer),
	}, o.clientOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("default http client: %w", err)
	}
	c.fallback = fallback

	return c, nil
}

func (c *ProviderClient) newBreaker(id string, cfg config.CircuitBreakerConfig) *circuitbreaker.CircuitBreaker[[]byte] {
	cbCfg := circuitbreaker.DefaultConfig(id)
	cbCfg.MaxFailures = cfg.MaxFailures
	if cfg.OpenTimeout > 0 {
		cbCfg.Timeout = cfg.OpenTimeout
	}
	if cfg.Interval > 0 {
		cbCfg.Interval = cfg.Interval
	}
	cbCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		c.logger.Info(context.Background(), "circuit breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	}
	return circuitbreaker.New[[]byte](cbCfg)
}

// BreakerStates reports the breaker state per provider. It is empty when
// breakers are disabled.
func (c *ProviderClient) BreakerStates() map[string]string {
	states := make(map[string]string, len(c.breakers))
	for id, cb := range c.breakers {
		states[id] = cb.State()
	}
	return states
}

// Call sends the provider request and parses its answer. The returned
// duration covers the whole call, failures included.
func (c *ProviderClient) Call(ctx context.Context, p app.Provider, req domain.QuoteRequest) (decimal.Decimal, time.Duration, error) {
	start := time.Now()
	id := p.ID()

	ctx, span := c.tracer.Start(ctx, "provider.call",
		trace.WithAttributes(
			attribute.String("provider", id),
			attribute.String("endpoint", p.Endpoint),
			attribute.Int64("timeout_ms", p.Timeout.Milliseconds()),
		),
	)
	defer span.End()

	price, err := c.call(ctx, p, req, start)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Int64("elapsed_ms", elapsed.Milliseconds()))
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("failure", string(apperror.GetCode(err))))
		span.SetStatus(codes.Error, apperror.Describe(err))
		return decimal.Zero, elapsed, err
	}
	span.SetAttributes(attribute.String("price", price.String()))
	return price, elapsed, nil
}

func (c *ProviderClient) call(ctx context.Context, p app.Provider, req domain.QuoteRequest, start time.Time) (decimal.Decimal, error) {
	payload, err := p.Adapter.BuildRequest(req)
	if err != nil {
		return decimal.Zero, err
	}

	callCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	body, err := c.send(callCtx, p, payload)
	if err != nil {
		return decimal.Zero, classify(callCtx, p.Timeout, err)
	}

	// A body that arrives after the deadline is discarded.
	if time.Since(start) > p.Timeout {
		return decimal.Zero, timeoutError(p.Timeout, nil)
	}

	return p.Adapter.ParseResponse(body)
}

func (c *ProviderClient) send(ctx context.Context, p app.Provider, payload app.Payload) ([]byte, error) {
	do := func() ([]byte, error) {
		resp, err := c.client(p.ID()).NewRequestWithOptions(
			httpclient.WithLabels(httpclient.NewLabel("content_type", payload.ContentType)),
		).
			SetBody(payload.Body).
			SetHeader("Content-Type", payload.ContentType).
			SetHeader("Accept", payload.ContentType).
			Post(ctx, p.Endpoint)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, apperror.New(apperror.CodeProviderHTTPStatus,
				apperror.WithMessage(fmt.Sprintf("HTTP %d", resp.StatusCode)))
		}
		return resp.Body(), nil
	}

	if cb, ok := c.breakers[p.ID()]; ok {
		return cb.Execute(do)
	}
	return do()
}

func (c *ProviderClient) client(id string) httpclient.Client {
	if hc, ok := c.clients[id]; ok {
		return hc
	}
	return c.fallback
}

// classify maps a send failure onto the provider failure kinds.
func classify(ctx context.Context, timeout time.Duration, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return apperror.New(apperror.CodeProviderCircuitOpen, apperror.WithCause(err))
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return timeoutError(timeout, err)
	}

	if errors.Is(err, context.Canceled) {
		return apperror.New(apperror.CodeProviderTransportError,
			apperror.WithContext("request cancelled"), apperror.WithCause(err))
	}

	return apperror.Wrap(err, apperror.CodeProviderTransportError, err.Error())
}

func timeoutError(timeout time.Duration, cause error) error {
	opts := []apperror.Option{
		apperror.WithContext("provider took longer than " + humanDuration(timeout)),
	}
	if cause != nil {
		opts = append(opts, apperror.WithCause(cause))
	}
	return apperror.New(apperror.CodeProviderTimeout, opts...)
}

func humanDuration(d time.Duration) string {
	if d%time.Second == 0 {
		secs := int64(d / time.Second)
		if secs == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", secs)
	}
	return d.String()
}
