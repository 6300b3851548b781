package queue

import "ordersim/internal/domain"

const initialDequeCapacity = 16

// deque — растущий кольцевой буфер заказов с O(1) вставкой и
// извлечением с обоих концов. Не потокобезопасен: синхронизацию
// обеспечивает PendingQueue.
type deque struct {
	buf  []*domain.Order
	head int // индекс первого элемента
	size int
}

func newDeque() *deque {
	return &deque{buf: make([]*domain.Order, initialDequeCapacity)}
}

func (d *deque) Len() int { return d.size }

// grow удваивает буфер, переукладывая элементы с нулевого индекса.
func (d *deque) grow() {
	buf := make([]*domain.Order, len(d.buf)*2)
	for i := 0; i < d.size; i++ {
		buf[i] = d.buf[(d.head+i)%len(d.buf)]
	}
	d.buf = buf
	d.head = 0
}

// PushBack добавляет заказ в хвост.
func (d *deque) PushBack(o *domain.Order) {
	if d.size == len(d.buf) {
		d.grow()
	}
	d.buf[(d.head+d.size)%len(d.buf)] = o
	d.size++
}

// PushFront добавляет заказ в голову.
func (d *deque) PushFront(o *domain.Order) {
	if d.size == len(d.buf) {
		d.grow()
	}
	d.head = (d.head - 1 + len(d.buf)) % len(d.buf)
	d.buf[d.head] = o
	d.size++
}

// PopFront извлекает заказ из головы; nil если пусто.
func (d *deque) PopFront() *domain.Order {
	if d.size == 0 {
		return nil
	}
	o := d.buf[d.head]
	d.buf[d.head] = nil
	d.head = (d.head + 1) % len(d.buf)
	d.size--
	return o
}

// PopBack извлекает заказ из хвоста; nil если пусто.
func (d *deque) PopBack() *domain.Order {
	if d.size == 0 {
		return nil
	}
	i := (d.head + d.size - 1) % len(d.buf)
	o := d.buf[i]
	d.buf[i] = nil
	d.size--
	return o
}

// PeekFront возвращает голову, не извлекая её; nil если пусто.
func (d *deque) PeekFront() *domain.Order {
	if d.size == 0 {
		return nil
	}
	return d.buf[d.head]
}

// CopyN возвращает копию первых n элементов в текущем порядке.
// n <= 0 означает "все".
func (d *deque) CopyN(n int) []*domain.Order {
	if n <= 0 || n > d.size {
		n = d.size
	}
	out := make([]*domain.Order, n)
	for i := 0; i < n; i++ {
		out[i] = d.buf[(d.head+i)%len(d.buf)]
	}
	return out
}
