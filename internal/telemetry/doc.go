// Package telemetry обеспечивает наблюдаемость системы.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики
//
// Логи пишутся в stderr с единым session_id,
// метрики экспортируются на /metrics endpoint (если он включён).
package telemetry
