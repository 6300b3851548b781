package queue

import (
	"fmt"
	"sync"
	"time"

	"ordersim/internal/domain"
)

// End — конец последовательности для вставки или извлечения.
type End string

const (
	// Tail — хвост последовательности (обычная вставка).
	Tail End = "tail"

	// Head — голова последовательности (возврат с немедленным
	// повторным взятием).
	Head End = "head"
)

// Valid возвращает true для известного конца.
func (e End) Valid() bool {
	return e == Tail || e == Head
}

// PendingQueue — очередь ожидающих заказов с двумя классами приоритета.
//
// Нулевое значение непригодно, создавать через New.
type PendingQueue struct {
	mu     sync.Mutex
	vip    *deque
	normal *deque

	// notEmpty закрывается при переходе очереди из пустого состояния
	// в непустое и тут же пересоздаётся. Ожидающие держат ссылку на
	// канал, полученную под mu, и после пробуждения перепроверяют
	// очередь.
	notEmpty chan struct{}
}

// New создаёт пустую PendingQueue.
func New() *PendingQueue {
	return &PendingQueue{
		vip:      newDeque(),
		normal:   newDeque(),
		notEmpty: make(chan struct{}),
	}
}

// Put кладёт заказ в последовательность его класса.
//
// end задаёт конец вставки (Tail по умолчанию используют вызывающие).
// Неизвестный класс или конец отклоняются синхронно.
func (q *PendingQueue) Put(o *domain.Order, end End) error {
	if o == nil {
		return ErrNilOrder
	}
	if !o.Class.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidClass, o.Class)
	}
	if !end.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidEnd, end)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.insertLocked(o, end)
	return nil
}

// Requeue возвращает ранее извлечённый заказ в последовательность его
// класса, сбрасывая статус в PENDING.
//
// Head используется при выводе бота из эксплуатации (заказ должен быть
// взят повторно немедленно), Tail — при обычном возврате. Попытка
// вернуть завершённый заказ — нарушение инварианта и отклоняется.
func (q *PendingQueue) Requeue(o *domain.Order, end End) error {
	if o == nil {
		return ErrNilOrder
	}
	if !o.Class.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidClass, o.Class)
	}
	if !end.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidEnd, end)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if o.Status != domain.OrderPending {
		if err := o.SetStatus(domain.OrderPending); err != nil {
			return err
		}
	}
	q.insertLocked(o, end)
	return nil
}

// insertLocked вставляет заказ и будит ожидающих при переходе целевой
// последовательности из пустого состояния в непустое. Переход именно
// целевой, а не всей очереди: ожидающий TakeClass ждёт свой класс и
// должен быть разбужен, даже когда другой класс непуст. Вызывается
// под mu.
func (q *PendingQueue) insertLocked(o *domain.Order, end End) {
	d := q.normal
	if o.Class == domain.ClassVIP {
		d = q.vip
	}
	wasEmpty := d.Len() == 0

	if end == Head {
		d.PushFront(o)
	} else {
		d.PushBack(o)
	}

	if wasEmpty {
		close(q.notEmpty)
		q.notEmpty = make(chan struct{})
	}
}

// TakeNext извлекает следующий заказ по приоритету: голова VIP, при
// пустом VIP — голова Normal.
//
// При block=false возвращает nil сразу, если обе последовательности
// пусты. При block=true ждёт вставки; timeout > 0 ограничивает
// ожидание, timeout <= 0 означает ждать без ограничения. nil
// возвращается только по истечении дедлайна, когда взять нечего.
func (q *PendingQueue) TakeNext(block bool, timeout time.Duration) *domain.Order {
	return q.take(q.popPriorityLocked, block, timeout)
}

// TakeClass извлекает заказ только из последовательности class,
// с конца end. Семантика блокировки как у TakeNext.
func (q *PendingQueue) TakeClass(class domain.PriorityClass, end End, block bool, timeout time.Duration) (*domain.Order, error) {
	if !class.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidClass, class)
	}
	if !end.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEnd, end)
	}

	d := q.normal
	if class == domain.ClassVIP {
		d = q.vip
	}
	pop := func() *domain.Order {
		if end == Head {
			return d.PopFront()
		}
		return d.PopBack()
	}
	return q.take(pop, block, timeout), nil
}

// take — общий цикл "взять или ждать". pop вызывается только под mu.
func (q *PendingQueue) take(pop func() *domain.Order, block bool, timeout time.Duration) *domain.Order {
	var deadline time.Time
	bounded := block && timeout > 0
	if bounded {
		deadline = time.Now().Add(timeout)
	}

	q.mu.Lock()
	for {
		if o := pop(); o != nil {
			q.mu.Unlock()
			return o
		}
		if !block {
			q.mu.Unlock()
			return nil
		}

		wake := q.notEmpty
		q.mu.Unlock()

		if bounded {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return nil
			}
			timer := time.NewTimer(remaining)
			select {
			case <-wake:
				timer.Stop()
			case <-timer.C:
				// Дедлайн: финальная перепроверка, вставка могла
				// успеть одновременно с таймером.
				q.mu.Lock()
				o := pop()
				q.mu.Unlock()
				return o
			}
		} else {
			<-wake
		}

		// Проснулись — перепроверяем: заказ мог достаться другому.
		q.mu.Lock()
	}
}

// popPriorityLocked снимает голову VIP, затем голову Normal.
// Вызывается под mu.
func (q *PendingQueue) popPriorityLocked() *domain.Order {
	if o := q.vip.PopFront(); o != nil {
		return o
	}
	return q.normal.PopFront()
}

// PeekNext возвращает заказ, который вернул бы TakeNext, не извлекая
// его. Результат носит справочный характер: после возврата очередь
// может измениться.
func (q *PendingQueue) PeekNext() *domain.Order {
	q.mu.Lock()
	defer q.mu.Unlock()
	if o := q.vip.PeekFront(); o != nil {
		return o
	}
	return q.normal.PeekFront()
}

// LenVIP возвращает длину VIP-последовательности.
func (q *PendingQueue) LenVIP() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.vip.Len()
}

// LenNormal возвращает длину Normal-последовательности.
func (q *PendingQueue) LenNormal() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.normal.Len()
}

// TotalLen возвращает суммарную длину обеих последовательностей.
func (q *PendingQueue) TotalLen() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.vip.Len() + q.normal.Len()
}

// IsEmpty возвращает true, если обе последовательности пусты.
func (q *PendingQueue) IsEmpty() bool {
	return q.TotalLen() == 0
}

// Snapshot — моментальный срез очереди для отображения.
//
// VIP и Normal содержат ссылки на первые maxPerClass заказов каждого
// класса в текущем порядке; размеры всегда точные, даже когда списки
// усечены.
type Snapshot struct {
	VIP        []*domain.Order
	Normal     []*domain.Order
	VIPSize    int
	NormalSize int
	TotalSize  int
}

// Snapshot возвращает срез первых maxPerClass заказов каждого класса.
// maxPerClass <= 0 означает без ограничения. Возвращаемые срезы не
// связаны с живыми последовательностями.
func (q *PendingQueue) Snapshot(maxPerClass int) Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Snapshot{
		VIP:        q.vip.CopyN(maxPerClass),
		Normal:     q.normal.CopyN(maxPerClass),
		VIPSize:    q.vip.Len(),
		NormalSize: q.normal.Len(),
		TotalSize:  q.vip.Len() + q.normal.Len(),
	}
}

// WaitNotEmpty блокируется, пока очередь пуста, до вставки или
// истечения timeout (timeout <= 0 — без ограничения). Возвращает
// true, если на момент возврата очередь непуста.
func (q *PendingQueue) WaitNotEmpty(timeout time.Duration) bool {
	var deadline time.Time
	bounded := timeout > 0
	if bounded {
		deadline = time.Now().Add(timeout)
	}

	q.mu.Lock()
	for {
		if q.vip.Len()+q.normal.Len() > 0 {
			q.mu.Unlock()
			return true
		}

		wake := q.notEmpty
		q.mu.Unlock()

		if bounded {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return q.TotalLen() > 0
			}
			timer := time.NewTimer(remaining)
			select {
			case <-wake:
				timer.Stop()
			case <-timer.C:
				return q.TotalLen() > 0
			}
		} else {
			<-wake
		}

		q.mu.Lock()
	}
}
