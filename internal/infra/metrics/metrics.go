// Package metrics exposes prometheus counters for the API and for orders.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"burgerhub/config"
	"burgerhub/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const defaultNamespace = "burgerhub"

// Metrics owns a dedicated registry so tests can create one per case.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	ordersCreated prometheus.Counter
	statusChanges *prometheus.CounterVec
}

// NewMetrics registers every collector on registry.
func NewMetrics(namespace string, registry *prometheus.Registry) *Metrics {
	if namespace == "" {
		namespace = defaultNamespace
	}

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Total number of orders placed.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Total number of order status changes by new status.",
		}, []string{"status"}),
	}

	registry.MustRegister(m.requests, m.latency, m.ordersCreated, m.statusChanges)

	return m
}

// Params holds dependencies for Metrics, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
}

// New returns nil when metrics are disabled.
func New(params Params) *Metrics {
	cfg := params.Config.Metrics
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return NewMetrics(cfg.Namespace, registry)
}

// NewOrderMetrics adapts Metrics to the order use case. A nil Metrics yields a
// nil interface so callers can skip recording.
func NewOrderMetrics(m *Metrics) service.OrderMetrics {
	if m == nil {
		return nil
	}

	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency labelled by route template.
func (m *Metrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// Let the error handler write the response so the status is final.
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request().Method

		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
		m.latency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return nil
	}
}

func (m *Metrics) OrderCreated() {
	m.ordersCreated.Inc()
}

func (m *Metrics) StatusChanged(status string) {
	m.statusChanges.WithLabelValues(status).Inc()
}

// Module provides the metrics FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New, NewOrderMetrics),
)
