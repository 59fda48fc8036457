package handler

import (
	"context"
	"log/slog"
	"net/http"

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

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler serves the cart endpoints. Every endpoint acts on carts owned by
// the authenticated customer.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler.
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// AddItemRequest is the body of POST /carrito/agregar.
type AddItemRequest struct {
	ProductID string   `json:"product_id" validate:"required,uuid"`
	AddOnIDs  []string `json:"add_on_ids" validate:"dive,uuid"`
	Quantity  int      `json:"quantity"`
	CartID    string   `json:"cart_id" validate:"omitempty,uuid"`
}

// CartRequest optionally names the cart, defaulting to the active one.
type CartRequest struct {
	CartID string `json:"cart_id" validate:"omitempty,uuid"`
}

// GetActive returns the customer's open cart, creating it when needed.
func (h *CartHandler) GetActive(c echo.Context) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	requested, err := pathID(c, "clienteId")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if requested != customerID {
		return response.HandleAppError(c, domainerrors.ErrCartAccessForbidden)
	}

	cart, err := h.cartUC.GetOrCreateActiveCart(c.Request().Context(), customerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart)
}

// GetCart returns one cart of the customer.
func (h *CartHandler) GetCart(c echo.Context) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	cartID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	cart, err := h.cartUC.GetCart(c.Request().Context(), cartID)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if cart.CustomerID != customerID {
		return response.HandleAppError(c, domainerrors.ErrCartAccessForbidden)
	}

	return response.Success(c, http.StatusOK, cart)
}

// AddItem adds a product with its add-ons to a cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	input := usecase.AddItemInput{
		CustomerID: customerID,
		ProductID:  uuid.MustParse(req.ProductID),
		Quantity:   req.Quantity,
	}
	for _, raw := range req.AddOnIDs {
		input.AddOnIDs = append(input.AddOnIDs, uuid.MustParse(raw))
	}
	if input.CartID, err = optionalID(req.CartID, "cart_id"); err != nil {
		return response.HandleAppError(c, err)
	}

	cart, err := h.cartUC.AddItem(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart)
}

// RemoveItem handles DELETE /carrito/item/:itemId?carritoId=.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	itemID, err := pathID(c, "itemId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	requested, err := optionalID(c.QueryParam("carritoId"), "carritoId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	ctx := c.Request().Context()
	cartID, err := h.ownedCartID(ctx, customerID, requested)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	cart, err := h.cartUC.RemoveItem(ctx, cartID, itemID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart)
}

// EmptyCart removes every item from the cart.
func (h *CartHandler) EmptyCart(c echo.Context) error {
	return h.mutate(c, h.cartUC.EmptyCart)
}

// CloseCart sends the cart, closing it for changes.
func (h *CartHandler) CloseCart(c echo.Context) error {
	return h.mutate(c, h.cartUC.CloseCart)
}

// ClosedWithoutOrder returns the newest closed cart not yet turned into an order.
func (h *CartHandler) ClosedWithoutOrder(c echo.Context) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	cart, err := h.cartUC.MostRecentClosedCartWithoutOrder(c.Request().Context(), customerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart)
}

func (h *CartHandler) mutate(c echo.Context, op func(context.Context, uuid.UUID) (*entity.Cart, error)) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CartRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	requested, err := optionalID(req.CartID, "cart_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	ctx := c.Request().Context()
	cartID, err := h.ownedCartID(ctx, customerID, requested)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	cart, err := op(ctx, cartID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart)
}

// ownedCartID resolves the requested cart, or the existing active one when
// none is named, and checks it belongs to the customer.
func (h *CartHandler) ownedCartID(ctx context.Context, customerID uuid.UUID, requested *uuid.UUID) (uuid.UUID, error) {
	if requested == nil {
		cart, err := h.cartUC.FindActiveCart(ctx, customerID)
		if err != nil {
			return uuid.Nil, err
		}

		return cart.ID, nil
	}

	cart, err := h.cartUC.GetCart(ctx, *requested)
	if err != nil {
		if errors.Is(err, domainerrors.ErrCartNotFound) {
			return uuid.Nil, domainerrors.ErrUnknownCart
		}

		return uuid.Nil, err
	}
	if cart.CustomerID != customerID {
		return uuid.Nil, domainerrors.ErrCartAccessForbidden
	}

	return cart.ID, nil
}
