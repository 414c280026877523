package config

import (
	"time"

	pkgconfig "github.com/weiawesome/wes-io-live/feed-service/pkg/config"
)

type Config struct {
	Server  ServerConfig
	Session SessionConfig
	Seed    SeedConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SessionConfig bounds the in-memory session registry.
type SessionConfig struct {
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	MaxSessions   int           `mapstructure:"max_sessions"`
}

// SeedConfig selects the demo world loaded into new sessions.
// An empty File uses the embedded demo data.
type SeedConfig struct {
	File string `mapstructure:"file"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8096)
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("session.idle_timeout", "30m")
	v.SetDefault("session.sweep_interval", "60s")
	v.SetDefault("session.max_sessions", 1000)
	v.SetDefault("seed.file", "")
	v.SetDefault("log.level", "info")

	// Bind environment variables
	v.BindEnv("server.host", "SERVER_HOST")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT")
	v.BindEnv("session.idle_timeout", "SESSION_IDLE_TIMEOUT")
	v.BindEnv("session.sweep_interval", "SESSION_SWEEP_INTERVAL")
	v.BindEnv("session.max_sessions", "SESSION_MAX")
	v.BindEnv("seed.file", "SEED_FILE")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
