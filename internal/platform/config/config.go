package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config captures process level configuration. Values come from defaults,
// then an optional YAML file named by CONFIG_FILE, then the environment.
type Config struct {
	Server   Server   `yaml:"server"`
	Sessions Sessions `yaml:"sessions"`
	Limits   Limits   `yaml:"limits"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string        `yaml:"addr"`
	Env            string        `yaml:"app_env"`
	LogLevel       string        `yaml:"log_level"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Sessions bounds the in-process session store.
type Sessions struct {
	TTL         time.Duration `yaml:"ttl"`
	MaxSessions int           `yaml:"max_sessions"`
}

// Limits caps upload sizes in bytes.
type Limits struct {
	MaxDocumentBytes int64 `yaml:"max_document_bytes"`
	MaxPayloadBytes  int64 `yaml:"max_payload_bytes"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: Server{
			Addr:           ":8080",
			Env:            "local",
			LogLevel:       "info",
			RequestTimeout: 30 * time.Second,
		},
		Sessions: Sessions{
			TTL:         30 * time.Minute,
			MaxSessions: 256,
		},
		Limits: Limits{
			MaxDocumentBytes: 16 << 20,
			MaxPayloadBytes:  64 << 20,
		},
	}
}

// Load reads .env (if present), the CONFIG_FILE YAML (if set) and the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(os.Getenv)
}

// LoadFrom builds a Config using getenv for every lookup.
func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	var errs []error
	setString(getenv, "ADDR", &cfg.Server.Addr)
	setString(getenv, "APP_ENV", &cfg.Server.Env)
	setString(getenv, "LOG_LEVEL", &cfg.Server.LogLevel)
	errs = append(errs,
		setDuration(getenv, "REQUEST_TIMEOUT", &cfg.Server.RequestTimeout),
		setDuration(getenv, "SESSION_TTL", &cfg.Sessions.TTL),
		setInt(getenv, "MAX_SESSIONS", &cfg.Sessions.MaxSessions),
		setInt64(getenv, "MAX_DOCUMENT_BYTES", &cfg.Limits.MaxDocumentBytes),
		setInt64(getenv, "MAX_PAYLOAD_BYTES", &cfg.Limits.MaxPayloadBytes),
	)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	}
	if c.Sessions.TTL < 0 {
		errs = append(errs, errors.New("session ttl must not be negative"))
	}
	if c.Sessions.MaxSessions < 0 {
		errs = append(errs, errors.New("max_sessions must not be negative"))
	}
	if c.Limits.MaxDocumentBytes <= 0 || c.Limits.MaxPayloadBytes <= 0 {
		errs = append(errs, errors.New("upload limits must be positive"))
	}
	return errors.Join(errs...)
}

func setString(getenv func(string) string, key string, dst *string) {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		*dst = v
	}
}

func setDuration(getenv func(string) string, key string, dst *time.Duration) error {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func setInt(getenv func(string) string, key string, dst *int) error {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setInt64(getenv func(string) string, key string, dst *int64) error {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
