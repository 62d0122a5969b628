package stream

import (
	"github.com/skillsenselab/pulse/config"
	"github.com/skillsenselab/pulse/logger"
)

// Hub bundles the registry and publisher behind one handle. Both event
// families share the same bookkeeping; the family parameter keeps their
// subscriber spaces separate.
type Hub struct {
	registry *Registry
	pub      *Publisher
	metrics  *Metrics
	cfg      config.StreamConfig
	log      *logger.Logger
}

// NewHub creates a hub from stream configuration.
func NewHub(cfg config.StreamConfig, log *logger.Logger) *Hub {
	hubLog := log.WithComponent("stream")

	metrics, err := NewMetrics()
	if err != nil {
		hubLog.Warn("Metric registration failed, continuing without metrics", logger.Fields(
			logger.FieldError, err.Error(),
		))
		metrics = nil
	}

	registry := NewRegistry()
	return &Hub{
		registry: registry,
		pub:      NewPublisher(registry, metrics, log),
		metrics:  metrics,
		cfg:      cfg,
		log:      hubLog,
	}
}

// Registry returns the connection registry.
func (h *Hub) Registry() *Registry { return h.registry }

// Publisher returns the event publisher.
func (h *Hub) Publisher() *Publisher { return h.pub }

// Config returns the stream configuration the hub was built with.
func (h *Hub) Config() config.StreamConfig { return h.cfg }

// Shutdown closes every open channel and empties the registry. Stream
// handlers observe their channel's Done and finish their responses.
func (h *Hub) Shutdown() {
	channels := h.registry.drain()
	for _, ch := range channels {
		ch.Close()
	}
	if len(channels) > 0 {
		h.log.Info("All channels closed during shutdown", logger.Fields(
			"channels", len(channels),
		))
	}
}
