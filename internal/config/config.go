package config

import (
	"fmt"
	"time"

	"github.com/kmullins/linkgen/internal/linkgen"
	"github.com/kmullins/linkgen/internal/qr"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Logging   LoggingConfig
	Generator GeneratorConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port      string
	ServerURL string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	SyncInterval time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Verbose bool
}

// GeneratorConfig holds key generator configuration
type GeneratorConfig struct {
	Salt           string
	MinLength      int
	Alphabet       string
	InitialCounter uint64
	CounterStep    uint64
	QRPayload      string // "url" or "key"
	QRSize         int
}

// DefaultGeneratorConfig returns generator settings suitable for most
// deployments: unsalted ten character keys from the lowercase alphanumeric
// alphabet, QR codes carrying the full short URL.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MinLength:   10,
		Alphabet:    linkgen.DefaultAlphabet,
		CounterStep: 100,
		QRPayload:   "url",
		QRSize:      qr.DefaultSize,
	}
}

// New creates a new config with the given parameters
func New(port, serverURL, dbPath string, syncInterval time.Duration, verbose bool, genCfg GeneratorConfig) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      port,
			ServerURL: serverURL,
		},
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Cache: CacheConfig{
			SyncInterval: syncInterval,
		},
		Logging: LoggingConfig{
			Verbose: verbose,
		},
		Generator: genCfg,
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.Server.ServerURL == "" {
		return fmt.Errorf("server URL cannot be empty")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.Cache.SyncInterval <= 0 {
		return fmt.Errorf("cache sync interval must be positive, got: %v", c.Cache.SyncInterval)
	}

	if c.Generator.MinLength < 0 {
		return fmt.Errorf("minimum key length cannot be negative, got: %d", c.Generator.MinLength)
	}

	if c.Generator.CounterStep == 0 {
		return fmt.Errorf("counter step must be positive")
	}

	switch c.Generator.QRPayload {
	case "url", "key":
	default:
		return fmt.Errorf("QR payload must be %q or %q, got: %q", "url", "key", c.Generator.QRPayload)
	}

	return nil
}

// LinkgenConfig translates the generator settings into a linkgen.Config,
// using the server URL as the base path for generated short URLs.
func (c *Config) LinkgenConfig() linkgen.Config {
	payload := linkgen.PayloadURL
	if c.Generator.QRPayload == "key" {
		payload = linkgen.PayloadKey
	}

	return linkgen.Config{
		BasePath:       c.Server.ServerURL,
		Salt:           c.Generator.Salt,
		MinLength:      c.Generator.MinLength,
		Alphabet:       c.Generator.Alphabet,
		InitialCounter: c.Generator.InitialCounter,
		QRPayload:      payload,
	}
}
