// Package config loads the server's settings from CITADELS_* environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Port     int    `env:"CITADELS_PORT" envDefault:"8080"`
	DBPath   string `env:"CITADELS_DB_PATH" envDefault:"citadels.db"`
	LogLevel string `env:"CITADELS_LOG_LEVEL" envDefault:"info"`
	Dev      bool   `env:"CITADELS_DEV"`
	// BaseURL is used in join links; empty means the request's host.
	BaseURL string `env:"CITADELS_BASE_URL"`
	QRSize  int    `env:"CITADELS_QR_SIZE" envDefault:"256"`
	Preset  string `env:"CITADELS_PRESET"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.QRSize < 21 {
		return fmt.Errorf("qr size %d is too small", c.QRSize)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Logger builds the server logger: development output when Dev is set,
// JSON otherwise.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}
