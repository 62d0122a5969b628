package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Name != "pulse" {
		t.Errorf("expected default name 'pulse', got '%s'", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected default environment 'development', got '%s'", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("expected debug on in development")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Stream.ChannelBuffer != 256 {
		t.Errorf("expected default channel buffer 256, got %d", cfg.Stream.ChannelBuffer)
	}
	if cfg.Stream.KeepAliveSeconds != 30 {
		t.Errorf("expected default keep-alive 30s, got %d", cfg.Stream.KeepAliveSeconds)
	}
	if !cfg.Stream.AllowQueryIdentity {
		t.Error("expected query identity allowed in development")
	}
	if cfg.Stream.AllowCrossUserTrigger {
		t.Error("cross-user trigger must default off")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaulted config to validate, got: %v", err)
	}

	bad := Config{}
	bad.ApplyDefaults()
	bad.Environment = "testing"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown environment")
	}

	noSecret := Config{}
	noSecret.ApplyDefaults()
	noSecret.Environment = "production"
	noSecret.Stream.AllowQueryIdentity = false
	if err := noSecret.Validate(); err == nil {
		t.Error("expected error when no auth secret and no query identity")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
name: pulse
environment: staging
server:
  port: 9090
auth:
  secret: test-secret
stream:
  channel_buffer: 64
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	var cfg Config
	if err := Load("pulse", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got '%s'", cfg.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Stream.ChannelBuffer != 64 {
		t.Errorf("expected channel buffer 64, got %d", cfg.Stream.ChannelBuffer)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("PULSE_SERVER_PORT", "7070")

	var cfg Config
	if err := Load("pulse", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected env override port 7070, got %d", cfg.Server.Port)
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	var cfg Config
	if err := Load("pulse", &cfg, WithConfigFile(""), WithFileSystem(&emptyFS{})); err != nil {
		t.Fatalf("Load with no files should succeed, got: %v", err)
	}
}

type emptyFS struct{}

func (e *emptyFS) Exists(string) bool   { return false }
func (e *emptyFS) LoadEnv(string) error { return nil }
