package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile      = ".env"
	defaultAddress      = ":8080"
	defaultEnvironment  = "Development"
	defaultSubmitDelay  = time.Second
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultLogLevel     = "info"
)

// Config captures runtime configuration for the accounts web server.
type Config struct {
	Server ServerConfig
	Forms  FormsConfig
	Log    LogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Address      string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// FormsConfig tunes the login and sign-up handlers.
type FormsConfig struct {
	// SubmitDelay is how long the simulated request takes.
	SubmitDelay time.Duration
}

// LogConfig selects the logger level.
type LogConfig struct {
	Level string
}

// ValidationError is returned when configuration values are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides. An empty
// path disables .env loading.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values
// in the map take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, an optional .env file and
// environment variables (explicit map > process env > .env).
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}

	var invalid []string
	duration := func(key string, fallback time.Duration) time.Duration {
		d, ok := durationWithDefault(lookup, key, fallback)
		if !ok {
			invalid = append(invalid, key)
		}
		return d
	}

	address := stringWithDefault(lookup, "ACCOUNTS_HTTP_ADDR", "")
	if address == "" {
		if port := stringWithDefault(lookup, "PORT", ""); port != "" {
			address = ":" + port
		} else {
			address = defaultAddress
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Address:      address,
			Environment:  stringWithDefault(lookup, "ACCOUNTS_ENVIRONMENT", defaultEnvironment),
			ReadTimeout:  duration("ACCOUNTS_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: duration("ACCOUNTS_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  duration("ACCOUNTS_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Forms: FormsConfig{
			SubmitDelay: duration("ACCOUNTS_SUBMIT_DELAY", defaultSubmitDelay),
		},
		Log: LogConfig{
			Level: strings.ToLower(stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
		},
	}

	if cfg.Forms.SubmitDelay < 0 {
		invalid = append(invalid, "ACCOUNTS_SUBMIT_DELAY")
	}
	if len(invalid) > 0 {
		return Config{}, &ValidationError{fields: invalid}
	}
	return cfg, nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// durationWithDefault reports false when the key is set but does not parse.
func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) (time.Duration, bool) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, true
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback, false
	}
	return d, true
}
