package main

import (
	"log/slog"
	"time"

	"github.com/moniclaundry/deposit-service/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT"`
	Postgres        config.PostgresConfig
}
