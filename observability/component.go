package observability

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/skillsenselab/pulse/component"
	"github.com/skillsenselab/pulse/config"
)

// Component manages the otel providers' lifecycle. When observability is
// disabled it stays inert and healthy.
type Component struct {
	cfg         config.ObservabilityConfig
	serviceName string
	version     string
	environment string

	mp *sdkmetric.MeterProvider
	tp *sdktrace.TracerProvider
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates the observability component.
func NewComponent(cfg config.ObservabilityConfig, serviceName, version, environment string) *Component {
	return &Component{
		cfg:         cfg,
		serviceName: serviceName,
		version:     version,
		environment: environment,
	}
}

// Name returns the component name.
func (c *Component) Name() string { return "observability" }

// Start initializes the providers when enabled.
func (c *Component) Start(ctx context.Context) error {
	if !c.cfg.Enabled {
		return nil
	}

	mp, err := InitMeter(ctx, c.cfg, c.serviceName, c.version, c.environment)
	if err != nil {
		return err
	}
	c.mp = mp

	tp, err := InitTracer(ctx, c.cfg, c.serviceName, c.version, c.environment)
	if err != nil {
		return err
	}
	c.tp = tp
	return nil
}

// Stop flushes and shuts down the providers.
func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.tp != nil {
		if err := c.tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if c.mp != nil {
		if err := c.mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("observability shutdown: %v", errs)
	}
	return nil
}

// Health reports the component state.
func (c *Component) Health(_ context.Context) component.Health {
	status := component.StatusHealthy
	message := "disabled"
	if c.cfg.Enabled {
		message = "exporting to " + c.cfg.Endpoint
	}
	return component.Health{Name: c.Name(), Status: status, Message: message}
}

// Describe returns summary info for the startup display.
func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.cfg.Enabled {
		details = "OTLP HTTP " + c.cfg.Endpoint
	}
	return component.Description{
		Name:    "Observability",
		Type:    "observability",
		Details: details,
	}
}
