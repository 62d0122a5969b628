package config

import (
	"fmt"

	"github.com/skillsenselab/pulse/logger"
)

// Config is the root configuration of the pulse gateway.
type Config struct {
	Name          string              `yaml:"name" mapstructure:"name"`
	Environment   string              `yaml:"environment" mapstructure:"environment"`
	Version       string              `yaml:"version" mapstructure:"version"`
	Debug         bool                `yaml:"debug" mapstructure:"debug"`
	Logging       logger.Config       `yaml:"logging" mapstructure:"logging"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	Auth          AuthConfig          `yaml:"auth" mapstructure:"auth"`
	Stream        StreamConfig        `yaml:"stream" mapstructure:"stream"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string   `yaml:"host" mapstructure:"host"`
	Port         int      `yaml:"port" mapstructure:"port"`
	ReadTimeout  int      `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int      `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int      `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
	CORSOrigins  []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// AuthConfig holds token verification configuration.
type AuthConfig struct {
	Secret   string `yaml:"secret" mapstructure:"secret"`
	Issuer   string `yaml:"issuer" mapstructure:"issuer"`
	Audience string `yaml:"audience" mapstructure:"audience"`
}

// StreamConfig holds fan-out layer configuration.
type StreamConfig struct {
	// ChannelBuffer is the per-connection frame buffer size. A send to a
	// full buffer counts as a write failure and prunes the channel.
	ChannelBuffer int `yaml:"channel_buffer" mapstructure:"channel_buffer"`
	// KeepAliveSeconds is the interval between keep-alive comment frames.
	KeepAliveSeconds int `yaml:"keep_alive_seconds" mapstructure:"keep_alive_seconds"`
	// AllowCrossUserTrigger permits the manual trigger endpoint to target a
	// subscriber other than the caller. Off by default.
	AllowCrossUserTrigger bool `yaml:"allow_cross_user_trigger" mapstructure:"allow_cross_user_trigger"`
	// AllowQueryIdentity lets stream opens fall back to the userId query
	// parameter when no bearer token is presented.
	AllowQueryIdentity bool `yaml:"allow_query_identity" mapstructure:"allow_query_identity"`
}

// ObservabilityConfig holds OTLP exporter configuration.
type ObservabilityConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
}

// ApplyDefaults applies default values to all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "pulse"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()

	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	// SSE responses stay open indefinitely; the stream handler clears the
	// write deadline per connection, this only covers plain endpoints.
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 120
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}

	if c.Stream.ChannelBuffer == 0 {
		c.Stream.ChannelBuffer = 256
	}
	if c.Stream.KeepAliveSeconds == 0 {
		c.Stream.KeepAliveSeconds = 30
	}
	if c.Environment == "development" {
		c.Stream.AllowQueryIdentity = true
	}

	if c.Observability.Endpoint == "" {
		c.Observability.Endpoint = "localhost:4318"
	}
	if c.Environment == "development" {
		c.Observability.Insecure = true
	}
}

// Validate validates the whole configuration tree.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config.server.port must be between 0 and 65535 (got: %d)", c.Server.Port)
	}
	if c.Auth.Secret == "" && !c.Stream.AllowQueryIdentity {
		return fmt.Errorf("config.auth.secret is required unless stream.allow_query_identity is set")
	}
	if c.Stream.ChannelBuffer < 1 {
		return fmt.Errorf("config.stream.channel_buffer must be positive (got: %d)", c.Stream.ChannelBuffer)
	}
	if c.Stream.KeepAliveSeconds < 1 {
		return fmt.Errorf("config.stream.keep_alive_seconds must be positive (got: %d)", c.Stream.KeepAliveSeconds)
	}
	return nil
}
