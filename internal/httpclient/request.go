package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Request is the interface for building and executing HTTP requests.
type Request interface {
	// HTTP methods
	Post(ctx context.Context, url string) (*Response, error)

	// Configuration
	SetBody(body any) Request
	SetHeader(key, value string) Request
	SetHeaders(headers map[string]string) Request
}

// Response wraps http.Response with additional helpers.
type Response struct {
	*http.Response
	body []byte
}

// Body returns the response body as bytes.
func (r *Response) Body() []byte {
	return r.body
}

// String returns the response body as string.
func (r *Response) String() string {
	return string(r.body)
}

// IsSuccess returns true for 2xx status codes.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is not 2xx.
func (r *Response) IsError() bool {
	return !r.IsSuccess()
}

// requestBuilder implements Request.
type requestBuilder struct {
	client           *http.Client
	requestCounter   metric.Int64Counter
	providerName     string
	tracer           trace.Tracer
	baseURL          string
	headers          map[string]string
	body             any
	errorHandler     ResponseErrorHandler
	labels           []*Label
	maxResponseBytes int64
	logRequest       bool
	logResponse      bool
}

// Post executes a POST request.
func (r *requestBuilder) Post(ctx context.Context, url string) (*Response, error) {
	return r.execute(ctx, http.MethodPost, url)
}

// SetBody sets the request body. []byte and string are sent as-is, other
// values are JSON encoded.
func (r *requestBuilder) SetBody(body any) Request {
	r.body = body
	return r
}

// SetHeader sets a single header.
func (r *requestBuilder) SetHeader(key, value string) Request {
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
	return r
}

// SetHeaders sets multiple headers.
func (r *requestBuilder) SetHeaders(headers map[string]string) Request {
	for k, v := range headers {
		r.SetHeader(k, v)
	}
	return r
}

// execute performs the HTTP request with instrumentation.
func (r *requestBuilder) execute(ctx context.Context, method, url string) (*Response, error) {
	// Start span
	ctx, span := r.tracer.Start(ctx, "http.request",
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", url),
			attribute.String("provider", r.providerName),
		),
	)
	defer span.End()

	// Build full URL
	fullURL := url
	if r.baseURL != "" && !strings.HasPrefix(url, "http") {
		fullURL = strings.TrimSuffix(r.baseURL, "/") + "/" + strings.TrimPrefix(url, "/")
	}

	bodyReader, err := r.encodeBody(span)
	if err != nil {
		return nil, err
	}

	// Create HTTP request
	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create request")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	// Execute request
	resp, err := r.client.Do(req)
	if err != nil {
		r.recordError(ctx, span, err)
		return nil, err
	}

	// Read body
	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxResponseBytes))
	resp.Body.Close()
	if err != nil {
		r.recordError(ctx, span, err)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Log response body to trace
	if r.logResponse {
		span.AddEvent("response.body", trace.WithAttributes(
			attribute.String("http.response_body", string(body)),
		))
	}

	response := &Response{
		Response: resp,
		body:     body,
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if response.IsError() {
		span.SetAttributes(attribute.String("http.error.status", resp.Status))
	}

	// Run custom error handler
	if r.errorHandler != nil {
		if handlerErr := r.errorHandler(resp.StatusCode, body); handlerErr != nil {
			r.recordMetrics(ctx, false, resp.StatusCode)
			span.SetStatus(codes.Error, handlerErr.Error())
			return response, handlerErr
		}
	}

	r.recordMetrics(ctx, response.IsSuccess(), resp.StatusCode)

	return response, nil
}

func (r *requestBuilder) encodeBody(span trace.Span) (io.Reader, error) {
	if r.body == nil {
		return nil, nil
	}

	var raw []byte
	switch b := r.body.(type) {
	case []byte:
		raw = b
	case string:
		raw = []byte(b)
	default:
		jsonBody, err := json.Marshal(b)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to marshal body")
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		raw = jsonBody
		if _, ok := r.headers["Content-Type"]; !ok {
			r.SetHeader("Content-Type", "application/json")
		}
	}

	// Log request body to trace
	if r.logRequest {
		span.AddEvent("request.body", trace.WithAttributes(
			attribute.String("http.request_body", string(raw)),
		))
	}
	return bytes.NewReader(raw), nil
}

// recordError logs network errors to the span.
func (r *requestBuilder) recordError(ctx context.Context, span trace.Span, err error) {
	span.RecordError(err)

	var netErr net.Error
	if errors.Is(err, context.Canceled) {
		span.SetAttributes(attribute.Bool("context.cancelled", true))
	}
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		span.SetAttributes(attribute.Bool("request.timeout", true))
	}

	span.SetStatus(codes.Error, err.Error())
	r.recordMetrics(ctx, false, 0)
}

// recordMetrics increments the request counter.
func (r *requestBuilder) recordMetrics(ctx context.Context, success bool, statusCode int) {
	attrs := []attribute.KeyValue{
		attribute.String("provider", r.providerName),
		attribute.Bool("success", success),
		attribute.Int("status_code", statusCode),
	}

	// Add custom labels
	for _, label := range r.labels {
		attrs = append(attrs, attribute.String(label.Key, label.Value))
	}

	// The request context may already be cancelled; the counter still counts.
	r.requestCounter.Add(context.WithoutCancel(ctx), 1, metric.WithAttributes(attrs...))
}
