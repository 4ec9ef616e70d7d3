// Package redis provides Redis configuration management, used to back
// the job-finish distributed lock.
package redis

import "github.com/spf13/viper"

// Default configuration values
const (
	DefaultAddress = "localhost:6379"
	DefaultDB      = 0
)

// Config represents Redis connection configuration.
type Config struct {
	Address  string `env:"FRONTIER_REDIS_ADDRESS"  yaml:"address"`
	Password string `env:"FRONTIER_REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"FRONTIER_REDIS_DB"       yaml:"db"`
	// Enabled gates whether the daemon wires up a JobFinishLocker at
	// all; without it, maybeFinishJob runs unlocked, which is correct
	// (if wasteful on races) for a single-process deployment.
	Enabled bool `yaml:"enabled"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Address: DefaultAddress,
		DB:      DefaultDB,
	}
}

// LoadFromViper builds a Config from v, falling back to defaults for
// anything not set.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := NewConfig()
	if addr := v.GetString("redis.address"); addr != "" {
		cfg.Address = addr
	}
	cfg.Password = v.GetString("redis.password")
	if v.IsSet("redis.db") {
		cfg.DB = v.GetInt("redis.db")
	}
	cfg.Enabled = v.GetBool("redis.enabled")
	return cfg
}
