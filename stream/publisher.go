package stream

import (
	"github.com/skillsenselab/pulse/logger"
)

// Publisher delivers one event to all currently-open channels of a target
// subscriber and self-heals the registry when delivery fails.
type Publisher struct {
	registry *Registry
	metrics  *Metrics
	log      *logger.Logger
}

// NewPublisher creates a publisher over the given registry.
func NewPublisher(registry *Registry, metrics *Metrics, log *logger.Logger) *Publisher {
	return &Publisher{
		registry: registry,
		metrics:  metrics,
		log:      log.WithComponent("publisher"),
	}
}

// Publish writes evt to every open channel the subscriber has in the
// family. Publishing to an offline subscriber is a silent no-op, not an
// error. A channel that fails to accept the frame (closed, or its buffer
// saturated) is unregistered and closed, and delivery continues to the
// subscriber's remaining channels. Fire-and-forget: no delivery count is
// reported, and all sends complete before Publish returns, so sequential
// calls reach each channel in call order.
func (p *Publisher) Publish(family Family, subscriberID string, evt Event) {
	channels := p.registry.Channels(family, subscriberID)
	if len(channels) == 0 {
		return
	}

	frame, err := Encode(evt)
	if err != nil {
		p.log.Error("Event encoding failed", logger.Fields(
			logger.FieldFamily, string(family),
			logger.FieldEventKind, string(evt.Kind),
			logger.FieldError, err.Error(),
		))
		return
	}

	p.metrics.Published(family)

	for _, ch := range channels {
		if err := ch.Send(frame); err != nil {
			p.registry.Remove(family, subscriberID, ch)
			ch.Close()
			p.metrics.Dropped(family)
			p.log.Debug("Channel pruned after failed delivery", logger.Fields(
				logger.FieldFamily, string(family),
				logger.FieldSubscriberID, subscriberID,
				logger.FieldChannelID, ch.ID(),
				logger.FieldError, err.Error(),
			))
			continue
		}
		p.metrics.Delivered(family)
	}
}
