// Package telemetry builds the OpenTelemetry meter provider of the console.
//
// Metrics are off by default. When enabled, the query store counters are
// written to the given writer every interval and once more on shutdown.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// DefaultInterval is the export period of the metrics.
const DefaultInterval = 15 * time.Second

// Options configures Setup.
type Options struct {
	Enabled     bool
	Writer      io.Writer
	ServiceName string
	Version     string
	Interval    time.Duration
}

// Provider is a meter provider with its shutdown hook.
type Provider struct {
	metric.MeterProvider

	shutdown func(context.Context) error
}

// Shutdown flushes pending metrics. It is a no-op for a disabled provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.shutdown == nil {
		return nil
	}

	return p.shutdown(ctx)
}

// Setup returns a no-op provider unless opts.Enabled is set, in which case
// metrics are exported as JSON to opts.Writer.
func Setup(opts Options) (*Provider, error) {
	if !opts.Enabled {
		return &Provider{MeterProvider: noop.NewMeterProvider()}, nil
	}

	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(opts.Writer))
	if err != nil {
		return nil, fmt.Errorf("telemetry: stdout exporter: %w", err)
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", opts.ServiceName),
		attribute.String("service.version", opts.Version),
	)

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval))),
	)

	return &Provider{MeterProvider: mp, shutdown: mp.Shutdown}, nil
}
