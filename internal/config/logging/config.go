// Package logging provides logging configuration for the frontier daemon.
package logging

import (
	"errors"
)

// Default configuration values.
const (
	DefaultLevel      = "info"
	DefaultEncoding   = "json"
	DefaultOutput     = "stdout"
	DefaultDebug      = false
	DefaultCaller     = false
	DefaultStacktrace = false
	defaultMaxSize    = 100
	defaultMaxBackups = 3
	defaultMaxAge     = 30
)

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validEncodings = map[string]bool{"json": true, "console": true}
var validOutputs = map[string]bool{"stdout": true, "stderr": true, "file": true}

// Config holds logging-specific configuration settings.
type Config struct {
	// Level is the logging level (debug, info, warn, error)
	Level string `yaml:"level"`
	// Encoding is the log encoding format (json, console)
	Encoding string `yaml:"encoding"`
	// Output is the log output destination (stdout, stderr, file)
	Output string `yaml:"output"`
	// File is the log file path (only used when output is file)
	File string `yaml:"file"`
	// Debug enables debug mode for additional logging
	Debug bool `yaml:"debug"`
	// Caller enables caller information in logs
	Caller bool `yaml:"caller"`
	// Stacktrace enables stacktrace in error logs
	Stacktrace bool `yaml:"stacktrace"`
	// MaxSize is the maximum size of the log file in megabytes
	MaxSize int `yaml:"max_size"`
	// MaxBackups is the maximum number of old log files to retain
	MaxBackups int `yaml:"max_backups"`
	// MaxAge is the maximum number of days to retain old log files
	MaxAge int `yaml:"max_age"`
	// Compress determines if the rotated log files should be compressed
	Compress bool `yaml:"compress"`
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Level == "" {
		return errors.New("level is required")
	}
	if !validLevels[c.Level] {
		return errors.New("invalid level")
	}
	if c.Encoding == "" {
		return errors.New("encoding is required")
	}
	if !validEncodings[c.Encoding] {
		return errors.New("invalid encoding")
	}
	if c.Output == "" {
		return errors.New("output is required")
	}
	if !validOutputs[c.Output] {
		return errors.New("invalid output")
	}
	if c.Output == "file" && c.File == "" {
		return errors.New("file path is required when output is file")
	}
	if c.MaxSize < 0 {
		return errors.New("max_size must not be negative")
	}
	if c.MaxBackups < 0 {
		return errors.New("max_backups must not be negative")
	}
	if c.MaxAge < 0 {
		return errors.New("max_age must not be negative")
	}
	return nil
}

// Option configures a Config at construction time.
type Option func(*Config)

func WithLevel(level string) Option      { return func(c *Config) { c.Level = level } }
func WithEncoding(enc string) Option     { return func(c *Config) { c.Encoding = enc } }
func WithOutput(output string) Option    { return func(c *Config) { c.Output = output } }
func WithFile(file string) Option        { return func(c *Config) { c.File = file } }
func WithDebug(debug bool) Option        { return func(c *Config) { c.Debug = debug } }
func WithCaller(caller bool) Option      { return func(c *Config) { c.Caller = caller } }
func WithStacktrace(st bool) Option      { return func(c *Config) { c.Stacktrace = st } }
func WithMaxSize(size int) Option        { return func(c *Config) { c.MaxSize = size } }
func WithMaxBackups(backups int) Option  { return func(c *Config) { c.MaxBackups = backups } }
func WithMaxAge(age int) Option          { return func(c *Config) { c.MaxAge = age } }
func WithCompress(compress bool) Option  { return func(c *Config) { c.Compress = compress } }

// New creates a new Config with the given options applied over defaults.
func New(opts ...Option) *Config {
	cfg := &Config{
		Level:      DefaultLevel,
		Encoding:   DefaultEncoding,
		Output:     DefaultOutput,
		Debug:      DefaultDebug,
		Caller:     DefaultCaller,
		Stacktrace: DefaultStacktrace,
		MaxSize:    defaultMaxSize,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAge,
		Compress:   true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
