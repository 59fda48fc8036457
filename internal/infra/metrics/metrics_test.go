package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"burgerhub/config"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRouteAndStatus(t *testing.T) {
	m := NewMetrics("test", prometheus.NewRegistry())

	e := echo.New()
	e.Use(m.Middleware)
	e.GET("/productos/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	})

	for _, path := range []string{"/productos/1", "/productos/2", "/boom"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/productos/:id", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/boom", "418")), 0)
}

func TestOrderCounters(t *testing.T) {
	m := NewMetrics("test", prometheus.NewRegistry())

	m.OrderCreated()
	m.OrderCreated()
	m.StatusChanged("Entregado")

	assert.InDelta(t, 2, testutil.ToFloat64(m.ordersCreated), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.statusChanges.WithLabelValues("Entregado")), 0)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := NewMetrics("test", prometheus.NewRegistry())
	m.OrderCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_orders_created_total 1"))
}

func TestNew_Disabled(t *testing.T) {
	cfg := &config.Config{}
	assert.Nil(t, New(Params{Config: cfg}))
	assert.Nil(t, NewOrderMetrics(nil))

	cfg.Metrics = &config.MetricsConfig{Enabled: true}
	m := New(Params{Config: cfg})
	require.NotNil(t, m)
	assert.NotNil(t, NewOrderMetrics(m))
}
