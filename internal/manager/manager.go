package manager

import (
	"log/slog"
	"sync"
	"time"

	"ordersim/internal/bot"
	"ordersim/internal/domain"
	"ordersim/internal/queue"
	"ordersim/internal/telemetry"
)

// Default configuration values.
const (
	// snapshotPerClass — сколько заказов каждого класса попадает в
	// снимок очереди для отображения.
	snapshotPerClass = 50

	// completedShown — сколько последних завершённых заказов попадает
	// в снимок.
	completedShown = 50
)

// Config — конфигурация Manager.
type Config struct {
	// ProcessingTime — время обработки заказа ботом (default: 10s).
	ProcessingTime time.Duration

	// Tick — шаг проверки остановки при обработке (default: 50ms).
	Tick time.Duration

	// PollTimeout — таймаут взятия из очереди (default: 200ms).
	PollTimeout time.Duration

	// Logger
	Logger *slog.Logger
}

// Status — сводный снимок системы для отображения.
type Status struct {
	Queue          queue.Snapshot
	Bots           []bot.Info
	CompletedCount int
	CompletedIDs   []int64
}

// Manager — владелец очереди и набора ботов.
//
// Счётчики номеров однопоточны относительно mu: команды приходят из
// одного CLI-контекста, но защита нужна, потому что Status и команды
// могут накладываться на callbacks ботов.
type Manager struct {
	queue *queue.PendingQueue

	mu          sync.Mutex
	bots        []*bot.Bot
	nextOrderID int64
	nextBotID   int64
	shutdown    bool

	// Архив завершённых под отдельным мьютексом: callback завершения
	// выполняется в горутине бота, а RemoveBot ждёт выхода бота, держа
	// mu — общий мьютекс дал бы взаимную блокировку.
	completedMu sync.Mutex
	completed   []*domain.Order

	processingTime time.Duration
	tick           time.Duration
	pollTimeout    time.Duration
	logger         *slog.Logger
}

// New создаёт Manager с пустой очередью; нумерация с 1.
func New(cfg Config) *Manager {
	processingTime := cfg.ProcessingTime
	if processingTime <= 0 {
		processingTime = bot.DefaultProcessingTime
	}

	tick := cfg.Tick
	if tick <= 0 {
		tick = bot.DefaultTick
	}

	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = bot.DefaultPollTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		queue:          queue.New(),
		nextOrderID:    1,
		nextBotID:      1,
		processingTime: processingTime,
		tick:           tick,
		pollTimeout:    pollTimeout,
		logger:         logger,
	}
}

// Queue возвращает общую очередь (для отображения и метрик).
func (m *Manager) Queue() *queue.PendingQueue { return m.queue }

// NewOrder создаёт заказ указанного класса и ставит его в хвост
// последовательности своего класса.
func (m *Manager) NewOrder(class domain.PriorityClass) (*domain.Order, error) {
	m.mu.Lock()
	if m.shutdown {
		m.mu.Unlock()
		return nil, ErrShutdown
	}
	id := m.nextOrderID
	o, err := domain.NewOrder(id, class)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.nextOrderID++
	m.mu.Unlock()

	if err := m.queue.Put(o, queue.Tail); err != nil {
		return nil, err
	}

	telemetry.OrdersCreated.WithLabelValues(class.String()).Inc()
	telemetry.WithOrderID(m.logger, o.ID).Info("order created", "class", class)
	return o, nil
}

// AddBot создаёт и запускает нового бота, привязанного к общей очереди.
func (m *Manager) AddBot() (bot.Info, error) {
	m.mu.Lock()
	if m.shutdown {
		m.mu.Unlock()
		return bot.Info{}, ErrShutdown
	}
	id := m.nextBotID
	m.nextBotID++

	b := bot.New(bot.Config{
		ID:             id,
		Queue:          m.queue,
		ProcessingTime: m.processingTime,
		Tick:           m.tick,
		PollTimeout:    m.pollTimeout,
		OnComplete:     m.onComplete,
		OnRequeue:      m.onRequeue,
		Logger:         m.logger,
	})
	m.bots = append(m.bots, b)
	m.mu.Unlock()

	b.Start()
	telemetry.Bots.Inc()
	m.logger.Info("bot added", "bot_id", id)
	return b.Snapshot(), nil
}

// RemoveBot останавливает и удаляет новейшего бота, дожидаясь полного
// выхода его цикла. Удерживаемый заказ возвращается в голову своей
// последовательности, чтобы его немедленно подхватил оставшийся бот.
func (m *Manager) RemoveBot() (bot.Info, error) {
	m.mu.Lock()
	if len(m.bots) == 0 {
		m.mu.Unlock()
		return bot.Info{}, ErrNoBots
	}
	b := m.bots[len(m.bots)-1]
	m.bots = m.bots[:len(m.bots)-1]
	m.mu.Unlock()

	// Остановка вне mu: ожидание выхода бота может занять до тика.
	b.Stop(true, true)

	telemetry.Bots.Dec()
	m.logger.Info("bot removed", "bot_id", b.ID())
	return b.Snapshot(), nil
}

// Status возвращает сводный снимок: очередь, боты, последние
// завершённые заказы.
func (m *Manager) Status() Status {
	m.mu.Lock()
	bots := make([]bot.Info, len(m.bots))
	for i, b := range m.bots {
		bots[i] = b.Snapshot()
	}
	m.mu.Unlock()

	m.completedMu.Lock()
	count := len(m.completed)
	from := count - completedShown
	if from < 0 {
		from = 0
	}
	ids := make([]int64, 0, count-from)
	for _, o := range m.completed[from:] {
		ids = append(ids, o.ID)
	}
	m.completedMu.Unlock()

	return Status{
		Queue:          m.queue.Snapshot(snapshotPerClass),
		Bots:           bots,
		CompletedCount: count,
		CompletedIDs:   ids,
	}
}

// Shutdown останавливает всех ботов, новейшие первыми, дожидаясь
// выхода каждого. Заказы, бывшие в обработке, возвращаются в хвост.
// Повторный Shutdown — no-op.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	if m.shutdown {
		m.mu.Unlock()
		return
	}
	m.shutdown = true
	bots := m.bots
	m.bots = nil
	m.mu.Unlock()

	m.logger.Info("shutting down", "bots", len(bots))
	for i := len(bots) - 1; i >= 0; i-- {
		bots[i].Stop(true, false)
		telemetry.Bots.Dec()
	}
	m.logger.Info("shutdown complete")
}

// onComplete — callback завершения заказа, выполняется в горутине бота.
func (m *Manager) onComplete(o *domain.Order) {
	m.completedMu.Lock()
	m.completed = append(m.completed, o)
	m.completedMu.Unlock()
	telemetry.OrdersCompleted.WithLabelValues(o.Class.String()).Inc()
}

// onRequeue — callback возврата отменённого заказа, выполняется в
// горутине бота.
func (m *Manager) onRequeue(o *domain.Order) {
	telemetry.OrdersRequeued.WithLabelValues(o.Class.String()).Inc()
}
