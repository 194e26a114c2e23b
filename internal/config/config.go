package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/bbernstein/nstravel/internal/ns"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const defaultListenAddr = ":8080"

type Config struct {
	Environment string
	LogLevel    zerolog.Level
	HTTPTimeout time.Duration
	NSBaseURL   string
	NSAPIKey    string
	ListenAddr  string
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

func WithNSBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.NSBaseURL = baseURL
	}
}

func WithNSAPIKey(key string) Option {
	return func(c *Config) {
		c.NSAPIKey = key
	}
}

func WithListenAddr(addr string) Option {
	return func(c *Config) {
		c.ListenAddr = addr
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment: "production",
		LogLevel:    zerolog.InfoLevel,
		HTTPTimeout: 10 * time.Second,
		NSBaseURL:   ns.DefaultBaseURL,
		ListenAddr:  defaultListenAddr,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// stdout carries the MCP stream in stdio mode, so logs always go to stderr
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = log.Output(os.Stderr)
	}
}

// WarnOnCredential logs when the NS key is missing or does not look like one.
// Tool calls still fail with a proper error in the first case.
func (c *Config) WarnOnCredential() {
	switch {
	case c.NSAPIKey == "":
		log.Warn().Msg("NS_API_KEY is not set; every tool call will fail")
	case !IsValidAPIKey(c.NSAPIKey):
		log.Warn().Msg("NS_API_KEY does not look like a 32 character hex key")
	}
}

var apiKeyPattern = regexp.MustCompile(`(?i)^[a-f0-9]{32}$`)

// IsValidAPIKey reports whether key has the shape of an NS API portal key.
func IsValidAPIKey(key string) bool {
	return apiKeyPattern.MatchString(key)
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return New(envOptions()...)
}

// Load reads the optional YAML file at path and then applies environment
// variables on top of it.
func Load(path string) (*Config, error) {
	var opts []Option
	if path != "" {
		fileOpts, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fileOpts...)
	}
	opts = append(opts, envOptions()...)
	return New(opts...), nil
}

type fileConfig struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	HTTPTimeout string `yaml:"http_timeout"`
	ListenAddr  string `yaml:"listen_addr"`
	NS          struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"ns"`
}

// LoadFile turns a YAML config file into options. Empty keys are left at
// their defaults.
func LoadFile(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	var opts []Option
	if fc.Environment != "" {
		opts = append(opts, WithEnvironment(fc.Environment))
	}
	if fc.LogLevel != "" {
		opts = append(opts, WithLogLevel(fc.LogLevel))
	}
	if fc.HTTPTimeout != "" {
		timeout, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing http_timeout: %w", err)
		}
		opts = append(opts, WithHTTPTimeout(timeout))
	}
	if fc.ListenAddr != "" {
		opts = append(opts, WithListenAddr(fc.ListenAddr))
	}
	if fc.NS.BaseURL != "" {
		opts = append(opts, WithNSBaseURL(fc.NS.BaseURL))
	}
	if fc.NS.APIKey != "" {
		opts = append(opts, WithNSAPIKey(fc.NS.APIKey))
	}
	return opts, nil
}

func envOptions() []Option {
	var opts []Option
	if v := os.Getenv("ENV"); v != "" {
		opts = append(opts, WithEnvironment(v))
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		opts = append(opts, WithLogLevel(v))
	}
	if _, ok := os.LookupEnv("HTTP_TIMEOUT"); ok {
		opts = append(opts, WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)))
	}
	if v := os.Getenv("NS_BASE_URL"); v != "" {
		opts = append(opts, WithNSBaseURL(v))
	}
	if v := os.Getenv("NS_API_KEY"); v != "" {
		opts = append(opts, WithNSAPIKey(v))
	}
	if v := getEnvOrDefault("LISTEN_ADDR", ""); v != "" {
		opts = append(opts, WithListenAddr(v))
	} else if port := os.Getenv("PORT"); port != "" {
		opts = append(opts, WithListenAddr(":"+port))
	}
	return opts
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
