// Package database provides database configuration management.
package database

import "github.com/spf13/viper"

// Default configuration values
const (
	DefaultHost    = "localhost"
	DefaultPort    = "5432"
	DefaultUser    = "postgres"
	DefaultDBName  = "frontier"
	DefaultSSLMode = "disable"
)

// Config represents database configuration settings.
type Config struct {
	Host     string `env:"POSTGRES_FRONTIER_HOST"     yaml:"host"`
	Port     string `env:"POSTGRES_FRONTIER_PORT"     yaml:"port"`
	User     string `env:"POSTGRES_FRONTIER_USER"     yaml:"user"`
	Password string `env:"POSTGRES_FRONTIER_PASSWORD" yaml:"password"`
	DBName   string `env:"POSTGRES_FRONTIER_DB"       yaml:"dbname"`
	SSLMode  string `env:"POSTGRES_FRONTIER_SSLMODE"  yaml:"sslmode"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Host:    DefaultHost,
		Port:    DefaultPort,
		User:    DefaultUser,
		DBName:  DefaultDBName,
		SSLMode: DefaultSSLMode,
	}
}

// LoadFromViper builds a Config from v, falling back to defaults for
// anything not set.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := NewConfig()
	if host := v.GetString("database.host"); host != "" {
		cfg.Host = host
	}
	if port := v.GetString("database.port"); port != "" {
		cfg.Port = port
	}
	if user := v.GetString("database.user"); user != "" {
		cfg.User = user
	}
	cfg.Password = v.GetString("database.password")
	if name := v.GetString("database.dbname"); name != "" {
		cfg.DBName = name
	}
	if sslMode := v.GetString("database.sslmode"); sslMode != "" {
		cfg.SSLMode = sslMode
	}
	return cfg
}
