package stream

import (
	"context"
	"fmt"

	"github.com/skillsenselab/pulse/component"
)

// Component wraps the Hub as a lifecycle-managed component so shutdown
// closes every open stream before the HTTP server drains.
type Component struct {
	hub *Hub
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a lifecycle component over a fresh hub.
func NewComponent(hub *Hub) *Component {
	return &Component{hub: hub}
}

// Hub returns the underlying hub.
func (c *Component) Hub() *Hub { return c.hub }

// Name returns the component name.
func (c *Component) Name() string { return "stream-hub" }

// Start is a no-op; the hub has no run loop. Registration and delivery
// happen synchronously inside request handlers.
func (c *Component) Start(_ context.Context) error { return nil }

// Stop closes all open channels so in-flight stream responses finish.
func (c *Component) Stop(_ context.Context) error {
	c.hub.Shutdown()
	return nil
}

// Health reports open channel counts per family.
func (c *Component) Health(_ context.Context) component.Health {
	reg := c.hub.Registry()
	return component.Health{
		Name:   c.Name(),
		Status: component.StatusHealthy,
		Message: fmt.Sprintf("%d notification channels, %d message channels",
			reg.Len(FamilyNotifications), reg.Len(FamilyMessages)),
	}
}

// Describe returns summary info for the startup display.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Stream Hub",
		Type:    "stream",
		Details: fmt.Sprintf("families: notifications, messages; buffer=%d", c.hub.Config().ChannelBuffer),
	}
}
