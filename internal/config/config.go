package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// EnvProduction значение ENV, при котором cookie выдаются с Secure+HttpOnly
const EnvProduction = "production"

// Config хранит все конфигурационные параметры процесса
// Собирается один раз на старте и дальше только читается
type Config struct {
	ServerAddress string        `env:"SERVER_ADDRESS" envDefault:":6060"`
	Env           string        `env:"ENV" envDefault:"development"`
	CORSOrigins   []string      `env:"CORS_ORIGINS" envSeparator:","`
	StorageDriver string        `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	DatabasePath  string        `env:"DATABASE_PATH" envDefault:"userhub.db"`
	JWTSecret     string        `env:"JWT_SECRET,required"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"336h"` // 14 дней, столько же живет cookie
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load загружает конфигурацию из переменных окружения
// В режиме разработки сначала подхватывает .env файл, если он есть
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.StorageDriver != DriverSQLite && cfg.StorageDriver != DriverBolt {
		return nil, fmt.Errorf("unknown storage driver %q (use %q or %q)",
			cfg.StorageDriver, DriverSQLite, DriverBolt)
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}

	// Дефолтный origin локального фронтенда
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}

	return cfg, nil
}

// IsProduction сообщает, запущен ли процесс в production окружении
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
