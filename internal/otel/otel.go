// Package otel records planner operation metrics through OpenTelemetry and
// exposes them as a Prometheus registry.
package otel

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const meterName = "github.com/renukapawar30/Project-Planner-Tool"

// Common attribute keys for metrics.
var (
	AttrOperation = attribute.Key("operation")
	AttrOutcome   = attribute.Key("outcome")
	AttrStatus    = attribute.Key("status")
)

// Operation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics owns a meter provider backed by its own Prometheus registry.
// A nil *Metrics records nothing.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	registry *prometheus.Registry

	ops         metric.Int64Counter
	opDuration  metric.Float64Histogram
	taskChanges metric.Int64Counter
}

// New initializes a MeterProvider with a Prometheus exporter registered on a
// fresh registry.
func New(ctx context.Context, serviceName string) (*Metrics, error) {
	if serviceName == "" {
		serviceName = "planner"
	}
	reg := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	m := &Metrics{provider: provider, registry: reg}
	meter := provider.Meter(meterName)
	if m.ops, err = meter.Int64Counter("planner_operations_total", metric.WithDescription("Planner operations by name and outcome")); err != nil {
		return nil, err
	}
	if m.opDuration, err = meter.Float64Histogram("planner_operation_duration_seconds", metric.WithDescription("Planner operation duration in seconds")); err != nil {
		return nil, err
	}
	if m.taskChanges, err = meter.Int64Counter("planner_task_status_changes_total", metric.WithDescription("Task status changes by target status")); err != nil {
		return nil, err
	}
	return m, nil
}

// Registry returns the Prometheus registry holding the exported metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes the current metrics in Prometheus text format to path,
// suitable for node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Shutdown flushes and stops the provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
