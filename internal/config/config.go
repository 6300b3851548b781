// Package config загружает конфигурацию из переменных окружения.
package config

import (
	"log/slog"
	"os"
	"time"
)

// Config — конфигурация процесса ordersim.
type Config struct {
	// ProcessingTime — время обработки одного заказа ботом.
	ProcessingTime time.Duration

	// Tick — шаг проверки остановки при обработке.
	Tick time.Duration

	// PollTimeout — таймаут блокирующего взятия из очереди.
	PollTimeout time.Duration

	// MetricsPort — порт HTTP-listener'а для /metrics и /healthz.
	// Пустое значение — listener не запускается.
	MetricsPort string
}

// Load читает конфигурацию из окружения, подставляя значения по
// умолчанию. Некорректная длительность игнорируется с предупреждением:
// неверная переменная окружения не должна мешать запуску.
func Load() Config {
	return Config{
		ProcessingTime: envDuration("ORDERSIM_PROCESSING_TIME", 10*time.Second),
		Tick:           envDuration("ORDERSIM_TICK", 50*time.Millisecond),
		PollTimeout:    envDuration("ORDERSIM_POLL_TIMEOUT", 200*time.Millisecond),
		MetricsPort:    os.Getenv("ORDERSIM_METRICS_PORT"),
	}
}

// envDuration читает длительность вида "10s" / "50ms" из окружения.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default",
			"key", key,
			"value", v,
			"default", def,
		)
		return def
	}
	return d
}
