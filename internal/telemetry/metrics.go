package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики конвейера. Экспортируются на /metrics, когда
// настроен HTTP-listener (см. cmd/ordersim).
var (
	// OrdersCreated — созданные заказы по классу приоритета.
	OrdersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ordersim_orders_created_total",
		Help: "Total number of orders created, by priority class.",
	}, []string{"class"})

	// OrdersCompleted — завершённые заказы по классу приоритета.
	OrdersCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ordersim_orders_completed_total",
		Help: "Total number of orders completed, by priority class.",
	}, []string{"class"})

	// OrdersRequeued — заказы, возвращённые в очередь отменённым ботом.
	OrdersRequeued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ordersim_orders_requeued_total",
		Help: "Total number of orders returned to the queue by a cancelled bot.",
	}, []string{"class"})

	// Bots — текущее число ботов.
	Bots = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ordersim_bots",
		Help: "Current number of bots.",
	})
)

// RegisterQueueDepth регистрирует gauge-функции глубины очереди,
// читающие живые размеры: значения не могут устареть между операциями.
func RegisterQueueDepth(vipLen, normalLen func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "ordersim_queue_depth",
		Help:        "Current number of pending orders, by priority class.",
		ConstLabels: prometheus.Labels{"class": "VIP"},
	}, func() float64 { return float64(vipLen()) })

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "ordersim_queue_depth",
		Help:        "Current number of pending orders, by priority class.",
		ConstLabels: prometheus.Labels{"class": "NORMAL"},
	}, func() float64 { return float64(normalLen()) })
}
