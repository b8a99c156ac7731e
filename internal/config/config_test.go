package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeHTTP {
		t.Errorf("Expected default mode to be 'http', got '%s'", cfg.Mode)
	}

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Expected default host to be '127.0.0.1', got '%s'", cfg.Host)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected default port to be 8080, got %d", cfg.Port)
	}

	if cfg.TemplatePath != DefaultTemplate {
		t.Errorf("Expected default template to be '%s', got '%s'", DefaultTemplate, cfg.TemplatePath)
	}

	if cfg.StoreBackend != StoreMemory {
		t.Errorf("Expected default store backend to be 'memory', got '%s'", cfg.StoreBackend)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxTemplateSize != 50*1024*1024 {
		t.Errorf("Expected default max template size to be 50MB, got %d", cfg.MaxTemplateSize)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func(mutate func(*Config)) *Config {
		cfg := DefaultConfig()
		mutate(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config - http mode with memory store",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "valid config - mcp mode",
			config:  valid(func(c *Config) { c.Mode = ModeMCP }),
			wantErr: false,
		},
		{
			name:    "valid config - sqlite store",
			config:  valid(func(c *Config) { c.StoreBackend = StoreSQLite; c.DataDir = t.TempDir() }),
			wantErr: false,
		},
		{
			name:    "valid config - json store",
			config:  valid(func(c *Config) { c.StoreBackend = StoreJSON; c.DataDir = t.TempDir() }),
			wantErr: false,
		},
		{
			name:    "invalid mode",
			config:  valid(func(c *Config) { c.Mode = "stdio" }),
			wantErr: true,
		},
		{
			name:    "invalid port - too low",
			config:  valid(func(c *Config) { c.Port = 0 }),
			wantErr: true,
		},
		{
			name:    "invalid port - too high",
			config:  valid(func(c *Config) { c.Port = 70000 }),
			wantErr: true,
		},
		{
			name:    "port ignored in mcp mode",
			config:  valid(func(c *Config) { c.Mode = ModeMCP; c.Port = 0 }),
			wantErr: false,
		},
		{
			name:    "empty template path",
			config:  valid(func(c *Config) { c.TemplatePath = "" }),
			wantErr: true,
		},
		{
			name:    "non-positive max template size",
			config:  valid(func(c *Config) { c.MaxTemplateSize = 0 }),
			wantErr: true,
		},
		{
			name:    "invalid store backend",
			config:  valid(func(c *Config) { c.StoreBackend = "postgres" }),
			wantErr: true,
		},
		{
			name:    "persistent store without data directory",
			config:  valid(func(c *Config) { c.StoreBackend = StoreJSON; c.DataDir = "" }),
			wantErr: true,
		},
		{
			name:    "invalid log level",
			config:  valid(func(c *Config) { c.LogLevel = "verbose" }),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "drafts")

	cfg := DefaultConfig()
	cfg.StoreBackend = StoreSQLite
	cfg.DataDir = dir

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestConfigAddress(t *testing.T) {
	cfg := &Config{Host: "0.0.0.0", Port: 9090}
	if got := cfg.Address(); got != "0.0.0.0:9090" {
		t.Errorf("Address() = %s, want 0.0.0.0:9090", got)
	}
}

func TestConfigModeHelpers(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.IsHTTPMode() || cfg.IsMCPMode() {
		t.Errorf("default config should be http mode")
	}

	cfg.Mode = ModeMCP
	if cfg.IsHTTPMode() || !cfg.IsMCPMode() {
		t.Errorf("mcp config should be mcp mode")
	}
}

func TestConfigIsDebug(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.IsDebug() {
		t.Error("info level should not report debug")
	}
	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Error("debug level should report debug")
	}
}
