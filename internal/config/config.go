// Package config содержит логику чтения конфигурации банковского сервиса.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации банковского сервиса.
// DatabaseURI и RedisAddress выбирают бэкенд хранилища записей; если не задан
// ни один, используется файловое хранилище по пути StoreFile.
type Config struct {
	RunAddress   string        `env:"RUN_ADDRESS"`
	DatabaseURI  string        `env:"DATABASE_URI"`
	RedisAddress string        `env:"REDIS_ADDRESS"`
	StoreFile    string        `env:"STORE_FILE"`
	AuthSecret   string        `env:"AUTH_SECRET"`
	LoginDelay   time.Duration `env:"LOGIN_DELAY"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envRedisAddress := cfg.RedisAddress
	envStoreFile := cfg.StoreFile
	envAuthSecret := cfg.AuthSecret
	envLoginDelay := cfg.LoginDelay

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI for the record store")
	flag.StringVar(&cfg.RedisAddress, "r", "", "redis address for the record store")
	flag.StringVar(&cfg.StoreFile, "f", "bank_store.json", "file path for the default record store")
	flag.StringVar(&cfg.AuthSecret, "s", "", "secret key for auth cookies")
	flag.DurationVar(&cfg.LoginDelay, "l", time.Second, "simulated login delay")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envRedisAddress != "" {
		cfg.RedisAddress = envRedisAddress
	}
	if envStoreFile != "" {
		cfg.StoreFile = envStoreFile
	}
	if envAuthSecret != "" {
		cfg.AuthSecret = envAuthSecret
	}
	if envLoginDelay != 0 {
		cfg.LoginDelay = envLoginDelay
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}
	if cfg.StoreFile == "" {
		cfg.StoreFile = "bank_store.json"
	}

	return cfg, nil
}
