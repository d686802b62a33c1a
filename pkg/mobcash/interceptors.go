package mobcash

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Request is the outgoing exchange as seen by interceptors. Headers may be
// modified by request interceptors.
type Request struct {
	Method    string
	Path      string
	Headers   http.Header
	Body      []byte
	StartedAt time.Time
}

// Response is the outcome of an exchange. Error is a *TransportError or a
// *ResponseError when the exchange failed.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain runs interceptors in registration order.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates an empty chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{}
}

// AddRequestInterceptor appends a request interceptor.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor appends a response interceptor.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// ExecuteRequestInterceptors runs the request interceptors. The first error
// aborts the request.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs the response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// idSegment replaces record ids in a route.
const idSegment = ":id"

// RouteOf returns path with numeric and UUID record ids replaced by ":id",
// so "/mobcash/user-phone/12/" and "/mobcash/user-phone/13/" share a route.
func RouteOf(path string) string {
	segments := strings.Split(path, "/")

	for i, segment := range segments {
		if isRecordID(segment) {
			segments[i] = idSegment
		}
	}

	return strings.Join(segments, "/")
}

func isRecordID(segment string) bool {
	if segment == "" {
		return false
	}

	if _, err := strconv.ParseUint(segment, 10, 64); err == nil {
		return true
	}

	_, err := uuid.Parse(segment)

	return err == nil
}

// RequestIDInterceptor tags each request with a fresh UUID unless one is set.
func RequestIDInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		if req.Headers.Get(RequestIDHeader) == "" {
			req.Headers.Set(RequestIDHeader, uuid.NewString())
		}

		return nil
	}
}

// HeaderInterceptor sets fixed headers on every request.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// LoggingInterceptor logs outgoing requests at debug level.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		logger.Debug("API Request", requestFields(req))

		return nil
	}
}

// LoggingResponseInterceptor logs outcomes. Rejected input (4xx) is a
// warning, server and transport failures are errors.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		fields := requestFields(req)
		fields["status_code"] = resp.StatusCode

		switch {
		case resp.Error == nil:
			logger.Debug("API Response", fields)
		case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
			fields["error"] = resp.Error.Error()
			logger.Warn("API Response Rejected", fields)
		default:
			fields["error"] = resp.Error.Error()
			logger.Error("API Response Error", fields)
		}

		return nil
	}
}

func requestFields(req *Request) map[string]interface{} {
	fields := map[string]interface{}{
		"method": req.Method,
		"route":  RouteOf(req.Path),
	}

	if id := req.Headers.Get(RequestIDHeader); id != "" {
		fields["request_id"] = id
	}

	return fields
}

// Metrics aggregates the calls to one route.
type Metrics struct {
	Endpoint       string
	TotalRequests  int64
	TotalErrors    int64
	Rejected       int64
	TotalLatency   time.Duration
	AverageLatency time.Duration
	LastStatus     int
	LastRequestAt  time.Time
}

// MetricsCollector aggregates calls per "METHOD route".
type MetricsCollector struct {
	mu       sync.Mutex
	metrics  map[string]*Metrics
	onChange func(endpoint string, metrics Metrics)
	now      func() time.Time
}

// NewMetricsCollector creates an empty collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[string]*Metrics),
		now:     time.Now,
	}
}

// SetOnChange registers a callback run after each recorded call, outside
// the collector lock.
func (m *MetricsCollector) SetOnChange(fn func(endpoint string, metrics Metrics)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// GetMetrics returns a copy of the metrics of endpoint, or nil.
func (m *MetricsCollector) GetMetrics(endpoint string) *Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	if metrics, ok := m.metrics[endpoint]; ok {
		snapshot := *metrics

		return &snapshot
	}

	return nil
}

// Snapshot returns a copy of every endpoint's metrics sorted by endpoint.
func (m *MetricsCollector) Snapshot() []Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Metrics, 0, len(m.metrics))
	for _, metrics := range m.metrics {
		out = append(out, *metrics)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Endpoint < out[j].Endpoint })

	return out
}

func (m *MetricsCollector) record(req *Request, resp *Response) {
	endpoint := req.Method + " " + RouteOf(req.Path)
	now := m.now()

	m.mu.Lock()

	metrics, ok := m.metrics[endpoint]
	if !ok {
		metrics = &Metrics{Endpoint: endpoint}
		m.metrics[endpoint] = metrics
	}

	metrics.TotalRequests++
	metrics.LastStatus = resp.StatusCode
	metrics.LastRequestAt = now

	if !req.StartedAt.IsZero() {
		metrics.TotalLatency += now.Sub(req.StartedAt)
		metrics.AverageLatency = metrics.TotalLatency / time.Duration(metrics.TotalRequests)
	}

	if resp.Error != nil || resp.StatusCode >= http.StatusBadRequest {
		metrics.TotalErrors++

		if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError {
			metrics.Rejected++
		}
	}

	snapshot := *metrics
	onChange := m.onChange

	m.mu.Unlock()

	if onChange != nil {
		onChange(endpoint, snapshot)
	}
}

// MetricsRequestInterceptor stamps the request start time.
func MetricsRequestInterceptor(collector *MetricsCollector) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		req.StartedAt = collector.now()

		return nil
	}
}

// MetricsResponseInterceptor records the outcome in collector.
func MetricsResponseInterceptor(collector *MetricsCollector) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		collector.record(req, resp)

		return nil
	}
}
