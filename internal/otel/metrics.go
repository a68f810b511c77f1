package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RecordOp records one operation with its outcome and duration.
func (m *Metrics) RecordOp(ctx context.Context, op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(AttrOperation.String(op), AttrOutcome.String(outcome))
	m.ops.Add(ctx, 1, attrs)
	m.opDuration.Record(ctx, d.Seconds(), metric.WithAttributes(AttrOperation.String(op)))
}

// RecordTaskStatus records a task moving to status.
func (m *Metrics) RecordTaskStatus(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.taskChanges.Add(ctx, 1, metric.WithAttributes(AttrStatus.String(status)))
}
