package domain

import (
	"errors"
	"fmt"
)

// Ошибки доменной модели.
var (
	// ErrInvalidClass — неизвестный класс приоритета.
	ErrInvalidClass = errors.New("invalid priority class")

	// ErrInvalidTransition — недопустимый переход статуса заказа.
	// Такой переход означает нарушение инварианта, а не рабочую ситуацию.
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Order — заказ.
//
// ID уникален и монотонно растёт, присваивается менеджером один раз.
// Class неизменяем после создания. Status изменяется только текущим
// владельцем заказа: очередью (под её мьютексом) либо ботом, который
// держит заказ в обработке. В двух местах одновременно заказ не виден.
type Order struct {
	ID     int64
	Class  PriorityClass
	Status OrderStatus
}

// NewOrder создаёт заказ в статусе PENDING.
func NewOrder(id int64, class PriorityClass) (*Order, error) {
	if !class.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidClass, class)
	}
	return &Order{
		ID:     id,
		Class:  class,
		Status: OrderPending,
	}, nil
}

// SetStatus переводит заказ в статус next.
//
// Недопустимый переход (например COMPLETE → PENDING) возвращает
// ErrInvalidTransition: это ошибка программирования, вызывающая
// сторона не должна её подавлять.
func (o *Order) SetStatus(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s (order %d)", ErrInvalidTransition, o.Status, next, o.ID)
	}
	o.Status = next
	return nil
}
