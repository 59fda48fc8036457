package handler

import (
	"log/slog"
	"net/http"

	"burgerhub/internal/delivery/api/response"
	"burgerhub/internal/delivery/api/view"
	"burgerhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MenuHandlerParams holds dependencies for MenuHandler, injected by Fx.
type MenuHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// MenuHandler renders the public menu page.
type MenuHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewMenuHandler is the constructor for MenuHandler.
func NewMenuHandler(params MenuHandlerParams) *MenuHandler {
	return &MenuHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// Menu renders the active products grouped by category.
func (h *MenuHandler) Menu(c echo.Context) error {
	sections, err := h.catalogUC.Menu(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Render(http.StatusOK, view.MenuTemplate, sections)
}
