package bot

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"ordersim/internal/domain"
	"ordersim/internal/queue"
	"ordersim/internal/telemetry"
)

// Default configuration values.
const (
	// DefaultProcessingTime — длительность обработки одного заказа.
	DefaultProcessingTime = 10 * time.Second

	// DefaultTick — шаг сна при обработке; ограничивает задержку
	// реакции на остановку.
	DefaultTick = 50 * time.Millisecond

	// DefaultPollTimeout — таймаут блокирующего взятия из очереди,
	// чтобы простаивающий бот периодически проверял сигнал остановки.
	DefaultPollTimeout = 200 * time.Millisecond
)

// CompleteFunc — callback о завершении заказа.
type CompleteFunc func(*domain.Order)

// Config — конфигурация Bot.
type Config struct {
	// ID — уникальный номер бота, присваивается менеджером.
	ID int64

	// Queue — общая очередь ожидающих заказов.
	Queue *queue.PendingQueue

	// ProcessingTime — время обработки заказа (default: 10s).
	ProcessingTime time.Duration

	// Tick — шаг проверки остановки при обработке (default: 50ms).
	Tick time.Duration

	// PollTimeout — таймаут взятия из очереди (default: 200ms).
	PollTimeout time.Duration

	// OnComplete — вызывается после завершения заказа (опционально).
	OnComplete CompleteFunc

	// OnRequeue — вызывается после возврата отменённого заказа в
	// очередь (опционально).
	OnRequeue CompleteFunc

	// Logger
	Logger *slog.Logger
}

// Info — снимок состояния бота для отображения.
type Info struct {
	ID             int64
	State          domain.BotState
	CurrentOrderID *int64
}

// Bot — исполнитель заказов.
//
// Жизненный цикл: IDLE → BUSY → IDLE (обычный цикл), любой → STOPPED
// по запросу остановки. Создавать через New, запускать через Start.
type Bot struct {
	id             int64
	queue          *queue.PendingQueue
	processingTime time.Duration
	tick           time.Duration
	pollTimeout    time.Duration
	onComplete     CompleteFunc
	onRequeue      CompleteFunc
	logger         *slog.Logger

	// Состояние, читаемое менеджером конкурентно с рабочей горутиной.
	mu      sync.RWMutex
	state   domain.BotState
	current *domain.Order

	// requeueHead — предпочтение конца возврата, записанное Stop до
	// закрытия stop.
	requeueHead atomic.Bool

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// New создаёт бота, не запуская его горутину.
func New(cfg Config) *Bot {
	processingTime := cfg.ProcessingTime
	if processingTime <= 0 {
		processingTime = DefaultProcessingTime
	}

	tick := cfg.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	if tick > processingTime {
		tick = processingTime
	}

	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Bot{
		id:             cfg.ID,
		queue:          cfg.Queue,
		processingTime: processingTime,
		tick:           tick,
		pollTimeout:    pollTimeout,
		onComplete:     cfg.OnComplete,
		onRequeue:      cfg.OnRequeue,
		logger:         telemetry.WithBotID(logger, cfg.ID),
		state:          domain.BotIdle,
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// Start запускает рабочую горутину бота.
func (b *Bot) Start() {
	b.logger.Info("starting bot")
	go b.run()
}

// Stop запрашивает остановку.
//
// requeueAtHead задаёт конец возврата заказа, если бот держит его в
// обработке: true — в голову (заказ немедленно подхватит оставшийся
// бот), false — в хвост. При wait=true вызов блокируется до полного
// выхода цикла бота, включая возврат заказа. Повторный Stop — no-op.
func (b *Bot) Stop(wait, requeueAtHead bool) {
	b.stopOnce.Do(func() {
		b.requeueHead.Store(requeueAtHead)
		close(b.stop)
	})
	if wait {
		<-b.done
	}
}

// ID возвращает номер бота.
func (b *Bot) ID() int64 { return b.id }

// State возвращает текущее состояние бота.
func (b *Bot) State() domain.BotState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Snapshot возвращает согласованный снимок состояния.
func (b *Bot) Snapshot() Info {
	b.mu.RLock()
	defer b.mu.RUnlock()
	info := Info{ID: b.id, State: b.state}
	if b.current != nil {
		id := b.current.ID
		info.CurrentOrderID = &id
	}
	return info
}

// Done возвращает канал, закрываемый после полного выхода цикла.
func (b *Bot) Done() <-chan struct{} { return b.done }

// run — главный цикл: взять заказ, обработать, повторить.
func (b *Bot) run() {
	defer close(b.done)
	defer b.cleanup()

	for {
		select {
		case <-b.stop:
			return
		default:
		}

		o := b.queue.TakeNext(true, b.pollTimeout)
		if o == nil {
			// Таймаут простоя: проверяем остановку и ждём дальше.
			continue
		}

		b.process(o)

		if b.stopRequested() {
			return
		}
	}
}

// process обрабатывает один заказ: ticked sleep с проверкой остановки
// на каждом шаге. Сон выполняется вне каких-либо блокировок.
func (b *Bot) process(o *domain.Order) {
	// current назначается до смены статуса: зачистка при выходе видит
	// заказ на любом пути, включая панику на нарушенном инварианте.
	b.mu.Lock()
	b.state = domain.BotBusy
	b.current = o
	b.mu.Unlock()

	if err := o.SetStatus(domain.OrderProcessing); err != nil {
		// Заказ из очереди обязан быть PENDING.
		panic(err)
	}

	b.logger.Info("processing order", "order_id", o.ID, "class", o.Class)

	cancelled := false
	for remaining := b.processingTime; remaining > 0 && !cancelled; {
		step := min(b.tick, remaining)
		select {
		case <-b.stop:
			cancelled = true
		case <-time.After(step):
			remaining -= step
		}
	}

	if cancelled {
		// Заказ остаётся в current со статусом PROCESSING: его вернёт
		// в очередь отложенная зачистка при выходе из run.
		b.logger.Info("processing cancelled", "order_id", o.ID)
		return
	}

	if err := o.SetStatus(domain.OrderComplete); err != nil {
		panic(err)
	}
	b.logger.Info("order complete", "order_id", o.ID, "class", o.Class)
	b.invokeOnComplete(o)

	b.mu.Lock()
	b.current = nil
	if b.stopRequested() {
		b.state = domain.BotStopped
	} else {
		b.state = domain.BotIdle
	}
	b.mu.Unlock()
}

// invokeOnComplete вызывает callback завершения, изолируя панику:
// сбой callback не должен ронять бота.
func (b *Bot) invokeOnComplete(o *domain.Order) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("completion callback panicked", "order_id", o.ID, "panic", r)
		}
	}()
	if b.onComplete != nil {
		b.onComplete(o)
	}
}

// invokeOnRequeue вызывает callback возврата с той же изоляцией
// паники, что и invokeOnComplete.
func (b *Bot) invokeOnRequeue(o *domain.Order) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("requeue callback panicked", "order_id", o.ID, "panic", r)
		}
	}()
	if b.onRequeue != nil {
		b.onRequeue(o)
	}
}

// cleanup — отложенная зачистка на всех путях выхода из run.
//
// Гасит панику цикла, переводит бота в STOPPED и возвращает
// удерживаемый незавершённый заказ в очередь (голова или хвост по
// предпочтению, записанному Stop).
func (b *Bot) cleanup() {
	if r := recover(); r != nil {
		b.logger.Error("bot run loop panicked", "panic", r)
	}

	b.mu.Lock()
	o := b.current
	b.current = nil
	b.state = domain.BotStopped
	b.mu.Unlock()

	if o != nil && o.Status != domain.OrderComplete {
		end := queue.Tail
		if b.requeueHead.Load() {
			end = queue.Head
		}
		if err := b.queue.Requeue(o, end); err != nil {
			b.logger.Error("failed to requeue order", "order_id", o.ID, "error", err)
		} else {
			b.logger.Info("order requeued", "order_id", o.ID, "end", string(end))
			b.invokeOnRequeue(o)
		}
	}

	b.logger.Info("bot stopped")
}

// stopRequested — неблокирующая проверка сигнала остановки.
func (b *Bot) stopRequested() bool {
	select {
	case <-b.stop:
		return true
	default:
		return false
	}
}
