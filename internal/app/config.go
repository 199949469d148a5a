package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config описывает настройки запуска приложения. Значения читаются из
// окружения с префиксом BOOKSTORE_; .env подхватывается в main через godotenv.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	// PostgresDSN пустой — работаем на in-memory хранилищах (dev-режим).
	PostgresDSN string

	// KafkaBrokers пустой — outbox события остаются в хранилище.
	KafkaBrokers []string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
}

// DefaultConfig возвращает базовые адреса HTTP API и метрик.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:           ":8080",
		MetricsAddr:        ":9090",
		OutboxPollInterval: time.Second,
		OutboxBatchSize:    100,
	}
}

// LoadConfig собирает конфигурацию из переменных окружения поверх значений
// по умолчанию.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if addr := strings.TrimSpace(os.Getenv("BOOKSTORE_HTTP_ADDR")); addr != "" {
		cfg.HTTPAddr = addr
	}
	if addr := strings.TrimSpace(os.Getenv("BOOKSTORE_METRICS_ADDR")); addr != "" {
		cfg.MetricsAddr = addr
	}
	cfg.PostgresDSN = strings.TrimSpace(os.Getenv("BOOKSTORE_POSTGRES_DSN"))

	if brokers := strings.TrimSpace(os.Getenv("BOOKSTORE_KAFKA_BROKERS")); brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	if raw := strings.TrimSpace(os.Getenv("BOOKSTORE_OUTBOX_POLL_INTERVAL")); raw != "" {
		if interval, err := time.ParseDuration(raw); err == nil && interval > 0 {
			cfg.OutboxPollInterval = interval
		}
	}
	if raw := strings.TrimSpace(os.Getenv("BOOKSTORE_OUTBOX_BATCH_SIZE")); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			cfg.OutboxBatchSize = size
		}
	}

	return cfg
}
