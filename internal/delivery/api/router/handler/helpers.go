package handler

import (
	"net/http"

	deliverycontext "burgerhub/internal/delivery/context"
	domainerrors "burgerhub/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses the named path parameter as a uuid.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidID.WithDetails(name)
	}

	return id, nil
}

// optionalID parses raw as a uuid, returning nil for an empty value.
func optionalID(raw, name string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil //nolint:nilnil // absent is not an error
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerrors.ErrInvalidID.WithDetails(name)
	}

	return &id, nil
}

// currentCustomerID returns the authenticated customer or an Unauthorized error.
func currentCustomerID(c echo.Context) (uuid.UUID, error) {
	id, ok := deliverycontext.GetCustomerID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrInvalidToken
	}

	return id, nil
}
