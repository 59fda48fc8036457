package handler

import (
	"log/slog"
	"net/http"

	"burgerhub/internal/delivery/api/response"
	"burgerhub/internal/delivery/api/validator"
	"burgerhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// AddOnHandlerParams holds dependencies for AddOnHandler, injected by Fx.
type AddOnHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// AddOnHandler serves add-on (adicional) endpoints.
type AddOnHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewAddOnHandler is the constructor for AddOnHandler.
func NewAddOnHandler(params AddOnHandlerParams) *AddOnHandler {
	return &AddOnHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// AddOnRequest is the body of add-on create and update requests.
type AddOnRequest struct {
	Name       string          `json:"name" validate:"required"`
	Price      decimal.Decimal `json:"price"`
	Active     *bool           `json:"active"`
	Categories []string        `json:"categories" validate:"required,min=1"`
}

func (r *AddOnRequest) toInput() usecase.AddOnInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return usecase.AddOnInput{
		Name:       r.Name,
		Price:      r.Price,
		Active:     active,
		Categories: r.Categories,
	}
}

// CreateAddOn adds an add-on to the catalog.
func (h *AddOnHandler) CreateAddOn(c echo.Context) error {
	var req AddOnRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid add-on input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	addOn, err := h.catalogUC.CreateAddOn(c.Request().Context(), req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, addOn)
}

// UpdateAddOn replaces the editable fields of an add-on.
func (h *AddOnHandler) UpdateAddOn(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req AddOnRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid add-on input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	addOn, err := h.catalogUC.UpdateAddOn(c.Request().Context(), id, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, addOn)
}

// DeleteAddOn removes an add-on.
func (h *AddOnHandler) DeleteAddOn(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.catalogUC.DeleteAddOn(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetAddOn returns one add-on.
func (h *AddOnHandler) GetAddOn(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	addOn, err := h.catalogUC.GetAddOn(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, addOn)
}

// SearchAddOns handles GET /adicional/buscar?nombre=.
func (h *AddOnHandler) SearchAddOns(c echo.Context) error {
	addOns, err := h.catalogUC.SearchAddOns(c.Request().Context(), c.QueryParam("nombre"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, addOns)
}

// ListForProduct returns the add-ons offered with a product.
func (h *AddOnHandler) ListForProduct(c echo.Context) error {
	productID, err := pathID(c, "productId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	addOns, err := h.catalogUC.ListAddOnsForProduct(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, addOns)
}
