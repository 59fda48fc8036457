package middleware

import (
	"log/slog"
	"net/http"

	"burgerhub/internal/delivery/api/response"
	deliverycontext "burgerhub/internal/delivery/context"
	domainerrors "burgerhub/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware is the echo HTTPErrorHandler. Domain errors keep their own
// status and code, echo errors become HTTP_ERROR and anything else is a
// generic 500 whose cause is only logged.
type ErrorMiddleware struct {
	logger *slog.Logger
}

func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		appErr  domainerrors.AppError
		httpErr *echo.HTTPError
	)
	switch {
	case errors.As(err, &appErr):
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logFailure(c, "Request failed", err)
		}
		_ = response.HandleAppError(c, appErr)

	case errors.As(err, &httpErr):
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		}
		if httpErr.Code >= http.StatusInternalServerError {
			m.logFailure(c, "Request failed", err)
		}
		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, nil)

	default:
		m.logFailure(c, "Unhandled error", err)
		_ = response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error, please try again later")
	}
}

func (m *ErrorMiddleware) logFailure(c echo.Context, msg string, err error) {
	req := c.Request()
	deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).Error(msg,
		slog.Any("error", err),
		slog.String("route", c.Path()),
		slog.String("method", req.Method),
	)
}
