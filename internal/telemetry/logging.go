package telemetry

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// LogLevel определяет уровень логирования из переменной окружения.
// Возможные значения: DEBUG, INFO, WARN, ERROR
// По умолчанию: WARN — интерактивная сессия не должна тонуть в логах.
func LogLevel() slog.Level {
	level := os.Getenv("LOG_LEVEL")
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SetupLogger инициализирует глобальный логгер.
//
// Логи пишутся в stderr: stdout принадлежит выводу команд (таблицы,
// JSON), и смешивать их нельзя.
//
// Формат определяется переменной LOG_FORMAT:
//   - "text" (по умолчанию) — человекочитаемый формат для терминала
//   - "json" — JSON формат
//
// Каждому запуску присваивается session_id для корреляции записей
// одной сессии.
func SetupLogger() *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     LogLevel(),
		AddSource: LogLevel() == slog.LevelDebug,
	}

	if os.Getenv("LOG_FORMAT") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler).With("session_id", uuid.NewString())
	slog.SetDefault(logger)

	return logger
}

// WithBotID возвращает логгер с добавленным bot_id.
func WithBotID(logger *slog.Logger, botID int64) *slog.Logger {
	return logger.With("bot_id", botID)
}

// WithOrderID возвращает логгер с добавленным order_id.
func WithOrderID(logger *slog.Logger, orderID int64) *slog.Logger {
	return logger.With("order_id", orderID)
}
