package observe

import (
	"context"
	"fmt"

	"github.com/fogfactory/conveyor"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the OpenTelemetry instruments fed by a run.
type Metrics struct {
	produced  metric.Int64Counter
	consumed  metric.Int64Counter
	queueSize metric.Int64Histogram
}

// NewMetrics creates the instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	produced, err := meter.Int64Counter("conveyor.items.produced",
		metric.WithDescription("Number of items put into the queue by producers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating conveyor.items.produced counter: %w", err)
	}

	consumed, err := meter.Int64Counter("conveyor.items.consumed",
		metric.WithDescription("Number of items stored by consumers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating conveyor.items.consumed counter: %w", err)
	}

	queueSize, err := meter.Int64Histogram("conveyor.queue.size",
		metric.WithDescription("Queue length observed after each step"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating conveyor.queue.size histogram: %w", err)
	}

	return &Metrics{produced: produced, consumed: consumed, queueSize: queueSize}, nil
}

// Observer returns an observer recording events into m.
func (m *Metrics) Observer() conveyor.Observer {
	return func(e conveyor.Event) {
		ctx := context.Background()
		attrs := metric.WithAttributes(attribute.String("task", e.Task))
		switch e.Kind {
		case conveyor.EventProduced:
			m.produced.Add(ctx, 1, attrs)
		case conveyor.EventConsumed:
			m.consumed.Add(ctx, 1, attrs)
		}
		m.queueSize.Record(ctx, int64(e.QueueSize), attrs)
	}
}
