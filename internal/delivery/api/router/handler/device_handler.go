package handler

import (
	"log/slog"
	"net/http"

	"burgerhub/internal/delivery/api/response"
	"burgerhub/internal/delivery/api/validator"
	"burgerhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DeviceHandlerParams holds dependencies for DeviceHandler, injected by Fx.
type DeviceHandlerParams struct {
	fx.In

	DeviceUC usecase.DeviceUsecase
	Logger   *slog.Logger
}

// DeviceHandler holds dependencies for device-related handlers
type DeviceHandler struct {
	deviceUC usecase.DeviceUsecase
	logger   *slog.Logger
}

// NewDeviceHandler is the constructor for DeviceHandler
func NewDeviceHandler(params DeviceHandlerParams) *DeviceHandler {
	return &DeviceHandler{
		deviceUC: params.DeviceUC,
		logger:   params.Logger,
	}
}

// RegisterDeviceRequest represents the request body for registering a device
type RegisterDeviceRequest struct {
	FCMToken string `json:"fcm_token" validate:"required"`
	DeviceID string `json:"device_id" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android"`
}

// RegisterDevice registers or refreshes a device for order notifications
func (h *DeviceHandler) RegisterDevice(c echo.Context) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req RegisterDeviceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid device input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	device, err := h.deviceUC.RegisterDevice(c.Request().Context(), customerID, &usecase.DeviceInfo{
		FCMToken: req.FCMToken,
		DeviceID: req.DeviceID,
		Platform: req.Platform,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, device)
}

// GetDevices lists the customer's active devices
func (h *DeviceHandler) GetDevices(c echo.Context) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	devices, err := h.deviceUC.GetCustomerDevices(c.Request().Context(), customerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, devices)
}

// DeactivateDevice removes one of the customer's devices
func (h *DeviceHandler) DeactivateDevice(c echo.Context) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	deviceID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.deviceUC.DeactivateDevice(c.Request().Context(), customerID, deviceID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Dispositivo desactivado"})
}
