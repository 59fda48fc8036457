// Package context carries request-scoped values between echo handlers and the
// use cases: the request id, a logger tagged with it and the authenticated customer.
package context

import (
	"context"
	"log/slog"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the header echoed on every response.
const HeaderXRequestID = "X-Request-Id"

type ctxKey uint8

const (
	requestIDKey ctxKey = iota + 1
	loggerKey
)

// echo.Context keys
const (
	echoRequestIDKey = "request_id"
	echoCustomerKey  = "customer"
)

// GetRequestID returns the id assigned by the request id middleware, or a
// fresh one when the middleware did not run.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoRequestIDKey).(string); ok && id != "" {
		return id
	}

	return uuid.NewString()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoRequestIDKey, requestID)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestIDFromContext returns "" outside a request.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLoggerOrDefault returns the request logger stored in ctx, or fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// SetCustomer records the authenticated customer on c and tags the request
// logger, when present, with the customer's id.
func SetCustomer(c echo.Context, customer *entity.Customer) {
	c.Set(echoCustomerKey, customer)

	req := c.Request()
	if logger, ok := req.Context().Value(loggerKey).(*slog.Logger); ok && logger != nil {
		ctx := WithLogger(req.Context(), logger.With(slog.String("customer_id", customer.ID.String())))
		c.SetRequest(req.WithContext(ctx))
	}
}

func GetCustomer(c echo.Context) (*entity.Customer, bool) {
	customer, ok := c.Get(echoCustomerKey).(*entity.Customer)

	return customer, ok && customer != nil
}

func GetCustomerID(c echo.Context) (uuid.UUID, bool) {
	customer, ok := GetCustomer(c)
	if !ok {
		return uuid.Nil, false
	}

	return customer.ID, true
}
