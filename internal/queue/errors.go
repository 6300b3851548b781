package queue

import "errors"

// Ошибки очереди.
var (
	// ErrInvalidEnd — неизвестный конец вставки (не Head и не Tail).
	ErrInvalidEnd = errors.New("invalid queue end")

	// ErrNilOrder — попытка положить nil вместо заказа.
	ErrNilOrder = errors.New("nil order")
)
