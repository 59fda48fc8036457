package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"burgerhub/internal/delivery/api/response"
	"burgerhub/internal/delivery/api/validator"
	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/errors"
	"burgerhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	CartUC  usecase.CartUsecase
	Logger  *slog.Logger
}

// OrderHandler serves order creation, tracking and dispatch endpoints.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	cartUC  usecase.CartUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		cartUC:  params.CartUC,
		logger:  params.Logger,
	}
}

// CreateOrderRequest names the closed cart to convert.
type CreateOrderRequest struct {
	CartID string `json:"cart_id" validate:"required,uuid"`
}

// StatusRequest is the body of POST /pedidos/:id/estado.
type StatusRequest struct {
	Status string `json:"status"`
}

// CourierAssignmentRequest is the body of POST /pedidos/:id/domiciliario.
type CourierAssignmentRequest struct {
	CourierID string `json:"courier_id" validate:"required,uuid"`
}

// OperatorAssignmentRequest is the body of POST /pedidos/:id/operador.
type OperatorAssignmentRequest struct {
	OperatorID string `json:"operator_id" validate:"required,uuid"`
}

// ListOrdersRequest filters the staff order listing.
type ListOrdersRequest struct {
	Status     string `query:"estado"`
	CustomerID string `query:"clienteId" validate:"omitempty,uuid"`
}

// CreateOrder converts one of the customer's closed carts into an order.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	ctx := c.Request().Context()
	cartID := uuid.MustParse(req.CartID)

	cart, err := h.cartUC.GetCart(ctx, cartID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrCartNotFound) {
			return response.HandleAppError(c, domainerrors.ErrUnknownCart)
		}

		return response.HandleAppError(c, err)
	}
	if cart.CustomerID != customerID {
		return response.HandleAppError(c, domainerrors.ErrCartAccessForbidden)
	}

	order, err := h.orderUC.CreateOrder(ctx, cartID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Text(c, http.StatusOK, fmt.Sprintf("Pedido creado: %s", order.ID))
}

// Checkout closes the active cart and creates its order.
func (h *OrderHandler) Checkout(c echo.Context) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.Checkout(c.Request().Context(), customerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// GetOrder returns one of the customer's orders.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.ownedOrder(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// TrackingQR returns the order tracking QR code as PNG.
func (h *OrderHandler) TrackingQR(c echo.Context) error {
	order, err := h.ownedOrder(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	png, err := h.orderUC.TrackingQR(c.Request().Context(), order.ID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// AdvanceStatus sets the order status.
func (h *OrderHandler) AdvanceStatus(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	order, err := h.orderUC.AdvanceStatus(c.Request().Context(), orderID, req.Status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Text(c, http.StatusOK, fmt.Sprintf("Estado actualizado: %s", order.Status))
}

// AssignCourier sets the courier delivering the order.
func (h *OrderHandler) AssignCourier(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CourierAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid courier input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	order, err := h.orderUC.AssignCourier(c.Request().Context(), orderID, uuid.MustParse(req.CourierID))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// AssignOperator sets the operator dispatching the order.
func (h *OrderHandler) AssignOperator(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req OperatorAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid operator input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	order, err := h.orderUC.AssignOperator(c.Request().Context(), orderID, uuid.MustParse(req.OperatorID))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// ListOrders is the staff order listing.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	var req ListOrdersRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid filter")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	filter := entity.OrderFilter{Status: strings.TrimSpace(req.Status)}
	if req.CustomerID != "" {
		customerID := uuid.MustParse(req.CustomerID)
		filter.CustomerID = &customerID
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders)
}

func (h *OrderHandler) ownedOrder(c echo.Context) (*entity.Order, error) {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return nil, err
	}

	orderID, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}

	order, err := h.orderUC.GetByID(c.Request().Context(), orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainerrors.ErrOrderAccessForbidden
	}

	return order, nil
}
