package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeHTTP = "http"
	ModeMCP  = "mcp"

	// Store backend constants
	StoreMemory = "memory"
	StoreJSON   = "json"
	StoreSQLite = "sqlite"

	// Default values
	DefaultPort            = 8080
	DefaultHost            = "127.0.0.1"
	DefaultLogLevel        = "info"
	DefaultTemplate        = "template/original-form.pdf"
	DefaultMaxTemplateSize = 50 * 1024 * 1024 // 50MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the DocFiller service
type Config struct {
	// Server configuration
	Mode string // "http" or "mcp"
	Host string
	Port int

	// Template configuration
	TemplatePath    string
	FieldMapPath    string // optional JSON override for the built-in field map
	MaxTemplateSize int64

	// Persistence configuration
	StoreBackend string // "memory", "json" or "sqlite"
	DataDir      string

	// Application configuration
	Version  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:            ModeHTTP,
		Host:            DefaultHost,
		Port:            DefaultPort,
		TemplatePath:    DefaultTemplate,
		MaxTemplateSize: DefaultMaxTemplateSize,
		StoreBackend:    StoreMemory,
		DataDir:         "data",
		Version:         "1.0.0",
		LogLevel:        DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.TemplatePath != "" {
		if expandedPath, err := filepath.Abs(cfg.TemplatePath); err == nil {
			cfg.TemplatePath = expandedPath
		}
	}
	if cfg.DataDir != "" {
		if expandedPath, err := filepath.Abs(cfg.DataDir); err == nil {
			cfg.DataDir = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("DOCFILLER")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("template", cfg.TemplatePath)
	viper.SetDefault("fieldmap", cfg.FieldMapPath)
	viper.SetDefault("maxtemplatesize", cfg.MaxTemplateSize)
	viper.SetDefault("store", cfg.StoreBackend)
	viper.SetDefault("datadir", cfg.DataDir)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'http' for the REST server, 'mcp' for the MCP stdio server")
	pflag.String("host", cfg.Host, "Server host address (http mode only)")
	pflag.Int("port", cfg.Port, "Server port (http mode only)")
	pflag.String("template", cfg.TemplatePath, "Path to the declaration form PDF template")
	pflag.String("fieldmap", cfg.FieldMapPath, "Path to a JSON field map overriding the built-in one")
	pflag.Int64("maxtemplatesize", cfg.MaxTemplateSize, "Maximum template file size in bytes")
	pflag.String("store", cfg.StoreBackend, "Draft store backend: 'memory', 'json' or 'sqlite'")
	pflag.String("datadir", cfg.DataDir, "Directory for persistent draft data (json and sqlite backends)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("template", pflag.Lookup("template"))
	_ = viper.BindPFlag("fieldmap", pflag.Lookup("fieldmap"))
	_ = viper.BindPFlag("maxtemplatesize", pflag.Lookup("maxtemplatesize"))
	_ = viper.BindPFlag("store", pflag.Lookup("store"))
	_ = viper.BindPFlag("datadir", pflag.Lookup("datadir"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nDocFiller - fills the declaration of self-employed work (Arbeitsagentur form)\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          # HTTP server with in-memory drafts\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --store=sqlite --datadir=/var/docfiller  # HTTP server with sqlite drafts\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=mcp --template=form.pdf           # MCP stdio server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  DOCFILLER_MODE             Run mode\n")
		fmt.Fprintf(os.Stderr, "  DOCFILLER_HOST             Server host\n")
		fmt.Fprintf(os.Stderr, "  DOCFILLER_PORT             Server port\n")
		fmt.Fprintf(os.Stderr, "  DOCFILLER_TEMPLATE         Template PDF path\n")
		fmt.Fprintf(os.Stderr, "  DOCFILLER_FIELDMAP         Field map JSON path\n")
		fmt.Fprintf(os.Stderr, "  DOCFILLER_MAXTEMPLATESIZE  Maximum template size\n")
		fmt.Fprintf(os.Stderr, "  DOCFILLER_STORE            Draft store backend\n")
		fmt.Fprintf(os.Stderr, "  DOCFILLER_DATADIR          Data directory\n")
		fmt.Fprintf(os.Stderr, "  DOCFILLER_LOGLEVEL         Log level\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.TemplatePath = viper.GetString("template")
	cfg.FieldMapPath = viper.GetString("fieldmap")
	cfg.MaxTemplateSize = viper.GetInt64("maxtemplatesize")
	cfg.StoreBackend = viper.GetString("store")
	cfg.DataDir = viper.GetString("datadir")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeHTTP && c.Mode != ModeMCP {
		return errors.New("mode must be either 'http' or 'mcp'")
	}

	if c.Mode == ModeHTTP && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.TemplatePath == "" {
		return errors.New("template path cannot be empty")
	}

	if c.MaxTemplateSize <= 0 {
		return errors.New("maximum template size must be positive")
	}

	switch c.StoreBackend {
	case StoreMemory:
	case StoreJSON, StoreSQLite:
		if c.DataDir == "" {
			return fmt.Errorf("data directory cannot be empty for the %s backend", c.StoreBackend)
		}
		// Create the data directory up front so the store can open files in it.
		if _, err := os.Stat(c.DataDir); os.IsNotExist(err) {
			if err := os.MkdirAll(c.DataDir, DefaultDirPerm); err != nil {
				return fmt.Errorf("cannot create data directory %s: %w", c.DataDir, err)
			}
		} else if err != nil {
			return fmt.Errorf("cannot access data directory %s: %w", c.DataDir, err)
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be one of: memory, json, sqlite)", c.StoreBackend)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, Template: %s, Store: %s, DataDir: %s, LogLevel: %s}",
		c.Mode, c.Host, c.Port, c.TemplatePath, c.StoreBackend, c.DataDir, c.LogLevel)
}

// IsHTTPMode returns true if the service runs the REST server
func (c *Config) IsHTTPMode() bool {
	return c.Mode == ModeHTTP
}

// IsMCPMode returns true if the service runs as an MCP stdio server
func (c *Config) IsMCPMode() bool {
	return c.Mode == ModeMCP
}
