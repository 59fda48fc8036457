// Package response writes the JSON envelopes every API endpoint answers with:
// {"data": ..., "meta": {...}} on success and {"error": ..., "meta": {...}} on failure.
package response

import (
	"net/http"

	deliverycontext "burgerhub/internal/delivery/context"
	domainerrors "burgerhub/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo carries a stable machine code such as CART_CLOSED next to the
// human message. Details are only sent for client errors.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type MetaInfo struct {
	RequestID string `json:"request_id"`
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}

func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{Data: data, Meta: meta(c)})
}

// Text answers the endpoints that reply with a plain confirmation sentence.
func Text(c echo.Context, statusCode int, body string) error {
	return c.String(statusCode, body)
}

// Error writes an error envelope. Details are dropped for server errors and
// for 401/403 so they never leak internals or account state.
func Error(c echo.Context, statusCode int, errorCode, message string, details any) error {
	switch {
	case statusCode >= http.StatusInternalServerError,
		statusCode == http.StatusUnauthorized,
		statusCode == http.StatusForbidden:
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{Code: errorCode, Message: message, Details: details},
		Meta:  meta(c),
	})
}

// BindingError answers a request body or query that could not be decoded.
func BindingError(c echo.Context, errorCode, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, nil)
}

func Unauthorized(c echo.Context, errorCode, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message, nil)
}

func InternalServerError(c echo.Context, errorCode, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}

// ValidationError answers 400 VALIDATION_FAILED with the failed rule per field.
func ValidationError(c echo.Context, fields map[string]string) error {
	return Error(c, http.StatusBadRequest,
		domainerrors.ErrValidationFailed.ErrorCode(), domainerrors.ErrValidationFailed.Message(), fields)
}

// HandleAppError renders a domain error with its own status and code. Any
// other error is returned, stack attached, for the central error handler.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if !errors.As(err, &appErr) {
		return errors.WithStack(err)
	}

	var details any
	if d := appErr.Details(); d != "" {
		details = d
	}

	return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)
}
