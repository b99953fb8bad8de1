package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server holds settings for the HTTP API, read from the environment.
type Server struct {
	Addr            string        `env:"ROUNDROBIN_ADDR" envDefault:":8080"`
	DatabasePath    string        `env:"ROUNDROBIN_DB" envDefault:"roundrobin.db"`
	LogLevel        string        `env:"ROUNDROBIN_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"ROUNDROBIN_LOG_FORMAT" envDefault:"console"`
	AllowedOrigins  []string      `env:"ROUNDROBIN_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	ShutdownTimeout time.Duration `env:"ROUNDROBIN_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadServer reads server settings from the environment. A .env file in the
// working directory is loaded first if present.
func LoadServer() (*Server, error) {
	_ = godotenv.Load()

	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("ROUNDROBIN_SHUTDOWN_TIMEOUT must be positive, got %s", cfg.ShutdownTimeout)
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("ROUNDROBIN_LOG_FORMAT must be console or json, got %q", cfg.LogFormat)
	}
	return &cfg, nil
}
