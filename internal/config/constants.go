// Package config provides configuration management for the frontier service.
package config

import "time"

// ValidLogLevels defines the valid logging levels
var ValidLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidEnvironments defines the valid environment types
var ValidEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
	"test":        true,
}

// Default configuration values
const (
	// DefaultReadTimeout is the default HTTP server read timeout
	DefaultReadTimeout = 30 * time.Second
	// DefaultWriteTimeout is the default HTTP server write timeout
	DefaultWriteTimeout = 30 * time.Second
	// DefaultIdleTimeout is the default HTTP server idle timeout
	DefaultIdleTimeout = 60 * time.Second
	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "info"
	// DefaultEnvironment is the default application environment
	DefaultEnvironment = "development"
	// DefaultLogFormat is the default logging format
	DefaultLogFormat = "json"
	// DefaultAppName is the default application name
	DefaultAppName = "frontier"
	// DefaultAppVersion is the default application version
	DefaultAppVersion = "1.0.0"
	// DefaultMaxHeaderBytes is the default maximum header bytes (1 MB)
	DefaultMaxHeaderBytes = 1 << 20
)

// ValidHTTPMethods defines the valid HTTP methods
var ValidHTTPMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"DELETE": true,
}

// Environment types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvTest        = "test"
)
