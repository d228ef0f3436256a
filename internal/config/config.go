package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	Server   Server
	Postgres Postgres
	Probe    Probe
	Metrics  Metrics
}

type App struct {
	Name         string `env:"APP_NAME" envDefault:"flashsale"`
	Version      string `env:"APP_VERSION" envDefault:"dev"`
	SeedDemoData bool   `env:"APP_SEED_DEMO_DATA" envDefault:"false"`

	// LogFieldMaxLen caps request/response bodies in logs.
	LogFieldMaxLen int `env:"APP_LOG_FIELD_MAX_LEN" envDefault:"2048"`
}

type Probe struct {
	ListenAddress string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8091"`
}

type Metrics struct {
	ListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":8092"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
