package stream

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/skillsenselab/pulse/stream"

// Metrics records fan-out instrumentation. All methods are nil-safe so the
// hub works unchanged when metric setup fails.
type Metrics struct {
	published    metric.Int64Counter
	delivered    metric.Int64Counter
	dropped      metric.Int64Counter
	openChannels metric.Int64UpDownCounter
}

// NewMetrics registers the fan-out instruments on the global meter
// provider (a no-op provider unless observability is enabled).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)

	published, err := meter.Int64Counter("pulse.events.published",
		metric.WithDescription("Events accepted by the publisher"))
	if err != nil {
		return nil, err
	}
	delivered, err := meter.Int64Counter("pulse.events.delivered",
		metric.WithDescription("Per-channel deliveries that succeeded"))
	if err != nil {
		return nil, err
	}
	dropped, err := meter.Int64Counter("pulse.events.dropped",
		metric.WithDescription("Per-channel deliveries that failed and pruned the channel"))
	if err != nil {
		return nil, err
	}
	openChannels, err := meter.Int64UpDownCounter("pulse.channels.open",
		metric.WithDescription("Currently open stream channels"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		published:    published,
		delivered:    delivered,
		dropped:      dropped,
		openChannels: openChannels,
	}, nil
}

func familyAttr(family Family) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("family", string(family)))
}

// Published counts one publish call for the family.
func (m *Metrics) Published(family Family) {
	if m == nil {
		return
	}
	m.published.Add(context.Background(), 1, familyAttr(family))
}

// Delivered counts one successful per-channel delivery.
func (m *Metrics) Delivered(family Family) {
	if m == nil {
		return
	}
	m.delivered.Add(context.Background(), 1, familyAttr(family))
}

// Dropped counts one failed per-channel delivery.
func (m *Metrics) Dropped(family Family) {
	if m == nil {
		return
	}
	m.dropped.Add(context.Background(), 1, familyAttr(family))
}

// ChannelOpened bumps the open-channel gauge.
func (m *Metrics) ChannelOpened(family Family) {
	if m == nil {
		return
	}
	m.openChannels.Add(context.Background(), 1, familyAttr(family))
}

// ChannelClosed decrements the open-channel gauge.
func (m *Metrics) ChannelClosed(family Family) {
	if m == nil {
		return
	}
	m.openChannels.Add(context.Background(), -1, familyAttr(family))
}
