package domain

import (
	"fmt"
	"strings"
)

// PriorityClass — класс приоритета заказа.
//
// VIP-заказы всегда обслуживаются раньше обычных; внутри одного
// класса сохраняется FIFO-порядок.
type PriorityClass string

const (
	// ClassVIP — приоритетный заказ.
	ClassVIP PriorityClass = "VIP"

	// ClassNormal — обычный заказ.
	ClassNormal PriorityClass = "NORMAL"
)

// Valid возвращает true для известного класса приоритета.
func (c PriorityClass) Valid() bool {
	return c == ClassVIP || c == ClassNormal
}

// ParsePriorityClass разбирает класс приоритета без учёта регистра.
func ParsePriorityClass(s string) (PriorityClass, error) {
	c := PriorityClass(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidClass, s)
	}
	return c, nil
}

// String возвращает строковое представление PriorityClass.
func (c PriorityClass) String() string {
	return string(c)
}

// OrderStatus — статус жизненного цикла заказа.
//
// Жизненный цикл:
//
//	PENDING → PROCESSING → COMPLETE
//	             ↓
//	          PENDING (отмена: заказ возвращается в очередь)
//
// COMPLETE — финальный статус, обратных переходов из него нет.
type OrderStatus string

const (
	// OrderPending — заказ ожидает обработки в очереди.
	OrderPending OrderStatus = "PENDING"

	// OrderProcessing — заказ обрабатывается ботом.
	OrderProcessing OrderStatus = "PROCESSING"

	// OrderComplete — заказ успешно завершён.
	OrderComplete OrderStatus = "COMPLETE"
)

// IsTerminal возвращает true, если статус финальный.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderComplete
}

// CanTransitionTo проверяет допустимость перехода статуса.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderProcessing
	case OrderProcessing:
		return next == OrderComplete || next == OrderPending
	default:
		return false
	}
}

// BotState — состояние жизненного цикла бота.
//
// Жизненный цикл:
//
//	IDLE → BUSY → IDLE (обычный цикл обработки)
//	IDLE → STOPPED, BUSY → STOPPED (запрос остановки)
//
// STOPPED — финальное состояние: остановленный бот не берёт новые
// заказы и не перезапускается.
type BotState string

const (
	// BotIdle — бот ожидает заказ.
	BotIdle BotState = "IDLE"

	// BotBusy — бот обрабатывает заказ.
	BotBusy BotState = "BUSY"

	// BotStopped — бот остановлен.
	BotStopped BotState = "STOPPED"
)

// IsTerminal возвращает true, если состояние финальное.
func (s BotState) IsTerminal() bool {
	return s == BotStopped
}
