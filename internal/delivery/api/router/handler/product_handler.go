package handler

import (
	"log/slog"
	"net/http"

	"burgerhub/internal/delivery/api/response"
	"burgerhub/internal/delivery/api/validator"
	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// imageFormField is the multipart field carrying a product picture.
const imageFormField = "imagen"

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// ProductHandler serves product catalog endpoints.
type ProductHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// ProductRequest is the body of product create and update requests.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category" validate:"required"`
	Ingredients []string        `json:"ingredients"`
	Stock       int             `json:"stock"`
	Active      *bool           `json:"active"`
	New         bool            `json:"new"`
	Popular     bool            `json:"popular"`
}

func (r *ProductRequest) toInput() usecase.ProductInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return usecase.ProductInput{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Category:    r.Category,
		Ingredients: r.Ingredients,
		Stock:       r.Stock,
		Active:      active,
		New:         r.New,
		Popular:     r.Popular,
	}
}

// ListProductsRequest filters the product listing.
type ListProductsRequest struct {
	Category   string `query:"categoria"`
	ActiveOnly bool   `query:"activos"`
	NewOnly    bool   `query:"nuevos"`
	Popular    bool   `query:"populares"`
}

// StockRequest adjusts stock by a signed delta.
type StockRequest struct {
	Delta int `json:"delta"`
}

// CreateProduct adds a product to the catalog.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	product, err := h.catalogUC.CreateProduct(c.Request().Context(), req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product)
}

// UpdateProduct replaces the editable fields of a product.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	product, err := h.catalogUC.UpdateProduct(c.Request().Context(), id, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// DeleteProduct removes a product.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.catalogUC.DeleteProduct(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetProduct returns one product.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// ListProducts returns products matching the filter flags.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid filter")
	}

	filter := entity.ProductFilter{
		ActiveOnly:  req.ActiveOnly,
		NewOnly:     req.NewOnly,
		PopularOnly: req.Popular,
	}
	if req.Category != "" {
		category, ok := entity.ParseCategory(req.Category)
		if !ok {
			return response.HandleAppError(c, domainerrors.ErrInvalidCategory.WithDetails(req.Category))
		}
		filter.Category = category
	}

	products, err := h.catalogUC.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

// SearchProducts handles GET /producto/buscar?q=.
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	products, err := h.catalogUC.SearchProducts(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

// AdjustStock adds a signed delta to the product stock.
func (h *ProductHandler) AdjustStock(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req StockRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid stock input")
	}

	product, err := h.catalogUC.AdjustStock(c.Request().Context(), id, req.Delta)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// UploadImage stores a multipart picture for the product.
func (h *ProductHandler) UploadImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrInvalidImage.WithDetails("missing form field "+imageFormField))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrInvalidImage.WithDetails("unreadable upload"))
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close upload", slog.Any("error", closeErr))
		}
	}()

	product, err := h.catalogUC.UploadProductImage(c.Request().Context(), id, usecase.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}
