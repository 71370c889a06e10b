package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	HTTP     HTTPConfig     `yaml:"http"`
	JWT      JWTConfig      `yaml:"jwt"`
	Live     LiveConfig     `yaml:"live"`
	Auth     AuthConfig     `yaml:"auth"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// LiveConfig holds live-stream configuration.
type LiveConfig struct {
	// StreamInterval is the fixed cadence between spectator frames.
	StreamInterval time.Duration `yaml:"stream_interval"`
}

// AuthConfig holds auth middleware configuration.
type AuthConfig struct {
	LoginRatePerSecond   float64       `yaml:"login_rate_per_second"`
	LoginBurst           int           `yaml:"login_burst"`
	TokenCleanupInterval time.Duration `yaml:"token_cleanup_interval"`
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is missing. Env vars always win.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.JWT.DefaultTTL = d
		}
	}
	if v := os.Getenv("LIVE_STREAM_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Live.StreamInterval = d
		}
	}
	if v := os.Getenv("LOGIN_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Auth.LoginRatePerSecond = f
		}
	}
	if v := os.Getenv("LOGIN_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Auth.LoginBurst = n
		}
	}
	if v := os.Getenv("TOKEN_CLEANUP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenCleanupInterval = d
		}
	}

	applyDefaults(&cfg)

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":3000"
	}
	if cfg.JWT.DefaultTTL == 0 {
		cfg.JWT.DefaultTTL = 7 * 24 * time.Hour
	}
	if cfg.Live.StreamInterval == 0 {
		cfg.Live.StreamInterval = time.Second
	}
	if cfg.Auth.LoginRatePerSecond == 0 {
		cfg.Auth.LoginRatePerSecond = 1
	}
	if cfg.Auth.LoginBurst == 0 {
		cfg.Auth.LoginBurst = 5
	}
	if cfg.Auth.TokenCleanupInterval == 0 {
		cfg.Auth.TokenCleanupInterval = time.Hour
	}
}
