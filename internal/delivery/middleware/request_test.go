package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"burgerhub/config"
	deliverycontext "burgerhub/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithRequestID(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	var fromCtx string
	e.GET("/", func(c echo.Context) error {
		fromCtx = deliverycontext.GetRequestIDFromContext(c.Request().Context())

		return c.NoContent(http.StatusOK)
	}, NewRequestIDMiddleware(slog.New(slog.DiscardHandler)).Process)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec, fromCtx
}

func TestRequestIDMiddleware_ReusesCallerID(t *testing.T) {
	rec, fromCtx := serveWithRequestID(t, "trace-abc-123")

	assert.Equal(t, "trace-abc-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Equal(t, "trace-abc-123", fromCtx)
}

func TestRequestIDMiddleware_ReplacesMalformedID(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "too long", header: strings.Repeat("a", maxRequestIDLength+1)},
		{name: "whitespace", header: "abc def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, fromCtx := serveWithRequestID(t, tt.header)

			got := rec.Header().Get(deliverycontext.HeaderXRequestID)
			id, err := uuid.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), id.Version())
			assert.Equal(t, got, fromCtx)
		})
	}
}

func TestLoggerMiddleware_LogsFailuresOnly(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	cfg := &config.Config{}

	e := echo.New()
	mw := NewLoggerMiddleware(logger, cfg)
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, mw.Handle)
	e.GET("/missing", func(c echo.Context) error { return echo.ErrNotFound }, mw.Handle)

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Empty(t, buf.String())

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing?password=secret", nil))
	out := buf.String()
	assert.Contains(t, out, "status=404")
	assert.Contains(t, out, "level=WARN")
	assert.NotContains(t, out, "secret")
}

func TestLoggerMiddleware_DebugLogsEverything(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Debug = true

	e := echo.New()
	mw := NewLoggerMiddleware(slog.New(slog.NewTextHandler(&buf, nil)), cfg)
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, mw.Handle)

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Contains(t, buf.String(), "route=/ok")
	assert.Contains(t, buf.String(), "status=200")
}
