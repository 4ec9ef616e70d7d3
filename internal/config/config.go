// Package config provides configuration management for the frontier
// service. It handles loading, validation, and access to configuration
// values from both YAML files and environment variables using Viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/crawlfrontier/frontier/internal/config/app"
	dbconfig "github.com/crawlfrontier/frontier/internal/config/database"
	"github.com/crawlfrontier/frontier/internal/config/logging"
	redisconfig "github.com/crawlfrontier/frontier/internal/config/redis"
	"github.com/crawlfrontier/frontier/internal/config/server"
)

// Interface defines the interface for configuration management.
type Interface interface {
	GetAppConfig() *app.Config
	GetLogConfig() *logging.Config
	GetServerConfig() *server.Config
	GetDatabaseConfig() *dbconfig.Config
	GetRedisConfig() *redisconfig.Config
	Validate() error
}

// Default configuration values
const (
	DefaultServerAddress      = ":8060"
	DefaultServerReadTimeout  = 30 * time.Second
	DefaultServerWriteTimeout = 30 * time.Second
	DefaultServerIdleTimeout  = 60 * time.Second
)

// Ensure Config implements Interface
var _ Interface = (*Config)(nil)

// Config represents the frontier daemon's configuration.
type Config struct {
	// Environment is the application environment (development, staging, production)
	Environment string `yaml:"environment"`
	// Logger holds logging-specific configuration
	Logger *logging.Config `yaml:"logger"`
	// Server holds the worker API's server configuration
	Server *server.Config `yaml:"server"`
	// App holds application-specific configuration
	App *app.Config `yaml:"app"`
	// Database holds the Postgres configuration backing the frontier store
	Database *dbconfig.Config `yaml:"database"`
	// Redis holds the Redis configuration backing the job-finish lock
	Redis *redisconfig.Config `yaml:"redis"`
}

// NewConfig creates a new config instance.
func NewConfig() *Config {
	return &Config{}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database: host is required")
	}
	return nil
}

// LoadConfig loads the configuration from Viper. InitializeViper must
// be called first.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment: viper.GetString("environment"),
		Logger: &logging.Config{
			Level:    viper.GetString("logger.level"),
			Encoding: viper.GetString("logger.encoding"),
		},
		Server:   server.NewConfig(),
		Database: dbconfig.LoadFromViper(viper.GetViper()),
		Redis:    redisconfig.LoadFromViper(viper.GetViper()),
		App: &app.Config{
			Name:        viper.GetString("app.name"),
			Version:     viper.GetString("app.version"),
			Environment: viper.GetString("app.environment"),
			Debug:       viper.GetBool("app.debug"),
		},
	}

	if cfg.App.Name == "" {
		cfg.App.Name = "frontier"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	cfg.Server.Address = viper.GetString("server.address")
	if cfg.Server.Address == "" {
		cfg.Server.Address = DefaultServerAddress
	}
	cfg.Server.ReadTimeout = viper.GetDuration("server.read_timeout")
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	cfg.Server.WriteTimeout = viper.GetDuration("server.write_timeout")
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	cfg.Server.IdleTimeout = viper.GetDuration("server.idle_timeout")
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultServerIdleTimeout
	}
	cfg.Server.SecurityEnabled = viper.GetBool("server.security.enabled")
	cfg.Server.APIKey = viper.GetString("server.security.api_key")
	cfg.Server.AllowedOrigins = viper.GetStringSlice("server.security.allowed_origins")
	cfg.Server.Host = viper.GetString("server.host")
	cfg.Server.Port = viper.GetInt("server.port")
	cfg.Server.MaxHeaderBytes = viper.GetInt("server.max_header_bytes")
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("invalid config: %w", validateErr)
	}

	return cfg, nil
}

// GetAppConfig returns the application configuration.
func (c *Config) GetAppConfig() *app.Config { return c.App }

// GetLogConfig returns the logging configuration.
func (c *Config) GetLogConfig() *logging.Config { return c.Logger }

// GetServerConfig returns the server configuration.
func (c *Config) GetServerConfig() *server.Config { return c.Server }

// GetDatabaseConfig returns the database configuration.
func (c *Config) GetDatabaseConfig() *dbconfig.Config { return c.Database }

// GetRedisConfig returns the Redis configuration.
func (c *Config) GetRedisConfig() *redisconfig.Config { return c.Redis }
