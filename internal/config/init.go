package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// InitializeViper initializes Viper configuration from environment variables and config files.
// This must be called before LoadConfig() to ensure Viper is properly configured.
func InitializeViper() error {
	loadEnvFile()
	setupViper()
	setDefaults()
	readConfigFile()

	if err := bindEnvironmentVariables(); err != nil {
		return fmt.Errorf("failed to bind environment variables: %w", err)
	}

	setupDevelopmentLogging()
	return nil
}

// loadEnvFile loads .env file (ignores error if file doesn't exist).
func loadEnvFile() {
	_ = godotenv.Load()
}

// setupViper configures Viper for environment variable and config file reading.
func setupViper() {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
}

// readConfigFile reads config file (ignores error if file doesn't exist).
func readConfigFile() {
	_ = viper.ReadInConfig()
}

// bindEnvironmentVariables binds all environment variables to config keys.
func bindEnvironmentVariables() error {
	if err := bindAppEnvVars(); err != nil {
		return fmt.Errorf("failed to bind app env vars: %w", err)
	}
	if err := bindDatabaseEnvVars(); err != nil {
		return fmt.Errorf("failed to bind database env vars: %w", err)
	}
	if err := bindRedisEnvVars(); err != nil {
		return fmt.Errorf("failed to bind redis env vars: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "frontier",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":    "info",
		"encoding": "json",
	})

	viper.SetDefault("server", map[string]any{
		"address":          ":8060",
		"read_timeout":     "30s",
		"write_timeout":    "30s",
		"idle_timeout":     "60s",
		"security_enabled": false,
	})

	viper.SetDefault("database", map[string]any{
		"host":    "localhost",
		"port":    "5432",
		"user":    "postgres",
		"dbname":  "frontier",
		"sslmode": "disable",
	})

	viper.SetDefault("redis", map[string]any{
		"address": "localhost:6379",
		"db":      0,
		"enabled": false,
	})
}

// bindAppEnvVars binds application and logger environment variables to config keys.
func bindAppEnvVars() error {
	if err := viper.BindEnv("app.environment", "APP_ENV"); err != nil {
		return fmt.Errorf("failed to bind APP_ENV: %w", err)
	}
	if err := viper.BindEnv("app.debug", "APP_DEBUG"); err != nil {
		return fmt.Errorf("failed to bind APP_DEBUG: %w", err)
	}
	if err := viper.BindEnv("logger.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}
	if err := viper.BindEnv("logger.encoding", "LOG_FORMAT"); err != nil {
		return fmt.Errorf("failed to bind LOG_FORMAT: %w", err)
	}
	return nil
}

// bindDatabaseEnvVars binds Postgres environment variables to config keys.
func bindDatabaseEnvVars() error {
	if err := viper.BindEnv("database.host", "POSTGRES_FRONTIER_HOST"); err != nil {
		return fmt.Errorf("failed to bind POSTGRES_FRONTIER_HOST: %w", err)
	}
	if err := viper.BindEnv("database.port", "POSTGRES_FRONTIER_PORT"); err != nil {
		return fmt.Errorf("failed to bind POSTGRES_FRONTIER_PORT: %w", err)
	}
	if err := viper.BindEnv("database.user", "POSTGRES_FRONTIER_USER"); err != nil {
		return fmt.Errorf("failed to bind POSTGRES_FRONTIER_USER: %w", err)
	}
	if err := viper.BindEnv("database.password", "POSTGRES_FRONTIER_PASSWORD"); err != nil {
		return fmt.Errorf("failed to bind POSTGRES_FRONTIER_PASSWORD: %w", err)
	}
	if err := viper.BindEnv("database.dbname", "POSTGRES_FRONTIER_DB"); err != nil {
		return fmt.Errorf("failed to bind POSTGRES_FRONTIER_DB: %w", err)
	}
	return nil
}

// bindRedisEnvVars binds Redis environment variables to config keys.
func bindRedisEnvVars() error {
	if err := viper.BindEnv("redis.address", "FRONTIER_REDIS_ADDRESS"); err != nil {
		return fmt.Errorf("failed to bind FRONTIER_REDIS_ADDRESS: %w", err)
	}
	if err := viper.BindEnv("redis.password", "FRONTIER_REDIS_PASSWORD"); err != nil {
		return fmt.Errorf("failed to bind FRONTIER_REDIS_PASSWORD: %w", err)
	}
	if err := viper.BindEnv("redis.enabled", "FRONTIER_REDIS_ENABLED"); err != nil {
		return fmt.Errorf("failed to bind FRONTIER_REDIS_ENABLED: %w", err)
	}
	return nil
}

// setupDevelopmentLogging configures logging settings based on environment variables.
func setupDevelopmentLogging() {
	debugFlag := viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}
	if isDev {
		viper.Set("logger.encoding", "console")
	}
}
