package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics wraps the Prometheus registry for the order management service.
// All methods are safe on a nil receiver so tests can run without one.
type Metrics struct {
	registry *prometheus.Registry

	ordersAdded         *prometheus.CounterVec
	ordersSuperseded    *prometheus.CounterVec
	ordersDeleted       *prometheus.CounterVec
	executionsTriggered *prometheus.CounterVec
	matchedQuantity     prometheus.Counter
	matchLatency        prometheus.Histogram
	activeOrders        prometheus.Gauge
}

// New creates a registry and registers all service metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	ordersAdded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_added_total",
		Help: "Total number of orders added.",
	}, []string{"book", "type"})

	ordersSuperseded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_superseded_total",
		Help: "Total number of orders replaced through an edit.",
	}, []string{"book"})

	ordersDeleted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_deleted_total",
		Help: "Total number of orders deleted.",
	}, []string{"book"})

	executionsTriggered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "executions_triggered_total",
		Help: "Total number of triggered executions.",
	}, []string{"book", "type"})

	matchedQuantity := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matched_quantity_total",
		Help: "Total quantity consumed from resting orders.",
	})

	matchLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "match_latency_seconds",
		Help:    "Latency of the fetch-match-persist sequence in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	activeOrders := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "active_orders_count",
		Help: "Current number of active orders across all books.",
	})

	registry.MustRegister(ordersAdded, ordersSuperseded, ordersDeleted,
		executionsTriggered, matchedQuantity, matchLatency, activeOrders)

	return &Metrics{
		registry:            registry,
		ordersAdded:         ordersAdded,
		ordersSuperseded:    ordersSuperseded,
		ordersDeleted:       ordersDeleted,
		executionsTriggered: executionsTriggered,
		matchedQuantity:     matchedQuantity,
		matchLatency:        matchLatency,
		activeOrders:        activeOrders,
	}
}

// Handler exposes the registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) IncOrderAdded(book, orderType string) {
	if m == nil {
		return
	}
	m.ordersAdded.WithLabelValues(book, orderType).Inc()
}

func (m *Metrics) IncOrderSuperseded(book string) {
	if m == nil {
		return
	}
	m.ordersSuperseded.WithLabelValues(book).Inc()
}

func (m *Metrics) IncOrderDeleted(book string) {
	if m == nil {
		return
	}
	m.ordersDeleted.WithLabelValues(book).Inc()
}

func (m *Metrics) IncExecutionTriggered(book, executionType string) {
	if m == nil {
		return
	}
	m.executionsTriggered.WithLabelValues(book, executionType).Inc()
}

func (m *Metrics) AddMatchedQuantity(quantity int) {
	if m == nil {
		return
	}
	m.matchedQuantity.Add(float64(quantity))
}

func (m *Metrics) ObserveMatchLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.matchLatency.Observe(d.Seconds())
}

func (m *Metrics) SetActiveOrders(count int) {
	if m == nil {
		return
	}
	m.activeOrders.Set(float64(count))
}

func (m *Metrics) IncActiveOrders() {
	if m == nil {
		return
	}
	m.activeOrders.Inc()
}

func (m *Metrics) DecActiveOrders() {
	if m == nil {
		return
	}
	m.activeOrders.Dec()
}
