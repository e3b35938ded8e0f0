package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ProductionMetrics counts production order activity
type ProductionMetrics struct {
	created     metric.Int64Counter
	transitions metric.Int64Counter
	units       metric.Int64Counter
}

// NewProductionMetrics registers the production counters on meter
func NewProductionMetrics(meter metric.Meter) (*ProductionMetrics, error) {
	m := &ProductionMetrics{}
	var err error

	if m.created, err = meter.Int64Counter("production_orders_created_total",
		metric.WithDescription("Production orders created, by creation mode"),
		metric.WithUnit("{order}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create production_orders_created_total: %w", err)
	}
	if m.transitions, err = meter.Int64Counter("production_order_transitions_total",
		metric.WithDescription("Production order status transitions"),
		metric.WithUnit("{transition}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create production_order_transitions_total: %w", err)
	}
	if m.units, err = meter.Int64Counter("production_units_scheduled_total",
		metric.WithDescription("Units moved into stock by executed production orders"),
		metric.WithUnit("{unit}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create production_units_scheduled_total: %w", err)
	}
	return m, nil
}

// RecordCreated counts one created production order
func (m *ProductionMetrics) RecordCreated(ctx context.Context, mode string) {
	m.created.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", mode)))
}

// RecordTransition counts one status change
func (m *ProductionMetrics) RecordTransition(ctx context.Context, from, to string) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

// RecordUnitsScheduled adds the units of an executed order
func (m *ProductionMetrics) RecordUnitsScheduled(ctx context.Context, units int64) {
	if units <= 0 {
		return
	}
	m.units.Add(ctx, units)
}
