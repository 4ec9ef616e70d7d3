// Package app provides application-identity configuration.
package app

import "errors"

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
	"test":        true,
}

// Config represents application-specific configuration settings.
type Config struct {
	// Name is the name of the application
	Name string `yaml:"name"`
	// Version is the version of the application
	Version string `yaml:"version"`
	// Environment is the application environment (development, staging, production)
	Environment string `yaml:"environment"`
	// Debug indicates whether debug mode is enabled
	Debug bool `yaml:"debug"`
}

// Validate checks that the required fields are present and well-formed.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return errors.New("environment is required")
	}
	if !validEnvironments[c.Environment] {
		return errors.New("invalid environment")
	}
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Version == "" {
		return errors.New("version is required")
	}
	return nil
}

// Option configures a Config at construction time.
type Option func(*Config)

// WithEnvironment sets the application environment.
func WithEnvironment(env string) Option {
	return func(c *Config) { c.Environment = env }
}

// WithName sets the application name.
func WithName(name string) Option {
	return func(c *Config) { c.Name = name }
}

// WithVersion sets the application version.
func WithVersion(version string) Option {
	return func(c *Config) { c.Version = version }
}

// WithDebug sets the debug flag.
func WithDebug(debug bool) Option {
	return func(c *Config) { c.Debug = debug }
}

// New creates a new Config with the given options applied over defaults.
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment: "development",
		Name:        "frontier",
		Version:     "0.1.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
