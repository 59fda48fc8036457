package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"burgerhub/internal/delivery/api/response"
	"burgerhub/internal/delivery/api/validator"
	"burgerhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StaffHandlerParams holds dependencies for StaffHandler, injected by Fx.
type StaffHandlerParams struct {
	fx.In

	StaffUC     usecase.StaffUsecase
	DashboardUC usecase.DashboardUsecase
	Logger      *slog.Logger
}

// StaffHandler serves the courier and operator directories and the dashboard.
type StaffHandler struct {
	staffUC     usecase.StaffUsecase
	dashboardUC usecase.DashboardUsecase
	logger      *slog.Logger
}

// NewStaffHandler is the constructor for StaffHandler.
func NewStaffHandler(params StaffHandlerParams) *StaffHandler {
	return &StaffHandler{
		staffUC:     params.StaffUC,
		dashboardUC: params.DashboardUC,
		logger:      params.Logger,
	}
}

// CourierRequest is the body of courier create and update requests.
type CourierRequest struct {
	Name       string `json:"name" validate:"required"`
	IDNumber   string `json:"id_number" validate:"required"`
	Available  bool   `json:"available"`
	OperatorID string `json:"operator_id" validate:"omitempty,uuid"`
}

// OperatorRequest is the body of operator create and update requests.
type OperatorRequest struct {
	Name      string `json:"name" validate:"required"`
	IDNumber  string `json:"id_number" validate:"required"`
	Available bool   `json:"available"`
}

// bindCourier parses the request. A nil input means the error response has
// already been written and err is the write result.
func (h *StaffHandler) bindCourier(c echo.Context) (*usecase.CourierInput, error) {
	var req CourierRequest
	if err := c.Bind(&req); err != nil {
		return nil, response.BindingError(c, "INVALID_INPUT", "Invalid courier input")
	}
	if err := c.Validate(&req); err != nil {
		return nil, response.ValidationError(c, validator.FieldErrors(err))
	}

	operatorID, err := optionalID(req.OperatorID, "operator_id")
	if err != nil {
		return nil, response.HandleAppError(c, err)
	}

	return &usecase.CourierInput{
		Name:       req.Name,
		IDNumber:   req.IDNumber,
		Available:  req.Available,
		OperatorID: operatorID,
	}, nil
}

// CreateCourier adds a courier.
func (h *StaffHandler) CreateCourier(c echo.Context) error {
	input, err := h.bindCourier(c)
	if input == nil {
		return err
	}

	courier, err := h.staffUC.CreateCourier(c.Request().Context(), *input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, courier)
}

// UpdateCourier replaces a courier's fields.
func (h *StaffHandler) UpdateCourier(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	input, err := h.bindCourier(c)
	if input == nil {
		return err
	}

	courier, err := h.staffUC.UpdateCourier(c.Request().Context(), id, *input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, courier)
}

// DeleteCourier removes a courier.
func (h *StaffHandler) DeleteCourier(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.staffUC.DeleteCourier(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetCourier returns one courier.
func (h *StaffHandler) GetCourier(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	courier, err := h.staffUC.GetCourier(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, courier)
}

// ListCouriers handles GET /domiciliario/listar?disponibles=true.
func (h *StaffHandler) ListCouriers(c echo.Context) error {
	couriers, err := h.staffUC.ListCouriers(c.Request().Context(), availableOnly(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, couriers)
}

func (h *StaffHandler) bindOperator(c echo.Context) (*usecase.OperatorInput, error) {
	var req OperatorRequest
	if err := c.Bind(&req); err != nil {
		return nil, response.BindingError(c, "INVALID_INPUT", "Invalid operator input")
	}
	if err := c.Validate(&req); err != nil {
		return nil, response.ValidationError(c, validator.FieldErrors(err))
	}

	return &usecase.OperatorInput{
		Name:      req.Name,
		IDNumber:  req.IDNumber,
		Available: req.Available,
	}, nil
}

// CreateOperator adds an operator.
func (h *StaffHandler) CreateOperator(c echo.Context) error {
	input, err := h.bindOperator(c)
	if input == nil {
		return err
	}

	operator, err := h.staffUC.CreateOperator(c.Request().Context(), *input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, operator)
}

// UpdateOperator replaces an operator's fields.
func (h *StaffHandler) UpdateOperator(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	input, err := h.bindOperator(c)
	if input == nil {
		return err
	}

	operator, err := h.staffUC.UpdateOperator(c.Request().Context(), id, *input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, operator)
}

// DeleteOperator removes an operator.
func (h *StaffHandler) DeleteOperator(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.staffUC.DeleteOperator(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetOperator returns one operator.
func (h *StaffHandler) GetOperator(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	operator, err := h.staffUC.GetOperator(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, operator)
}

// ListOperators handles GET /operador/listar?disponibles=true.
func (h *StaffHandler) ListOperators(c echo.Context) error {
	operators, err := h.staffUC.ListOperators(c.Request().Context(), availableOnly(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, operators)
}

// Stats returns the dashboard statistics.
func (h *StaffHandler) Stats(c echo.Context) error {
	stats, err := h.dashboardUC.Stats(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats)
}

func availableOnly(c echo.Context) bool {
	only, _ := strconv.ParseBool(c.QueryParam("disponibles"))

	return only
}
