package handler

import (
	"log/slog"
	"net/http"

	"burgerhub/internal/delivery/api/response"
	"burgerhub/internal/delivery/api/validator"
	"burgerhub/internal/domain/entity"
	"burgerhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CustomerHandlerParams holds dependencies for CustomerHandler, injected by Fx.
type CustomerHandlerParams struct {
	fx.In

	CustomerUC usecase.CustomerUsecase
	OrderUC    usecase.OrderUsecase
	Logger     *slog.Logger
}

// CustomerHandler serves account, session and profile endpoints.
type CustomerHandler struct {
	customerUC usecase.CustomerUsecase
	orderUC    usecase.OrderUsecase
	logger     *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler.
func NewCustomerHandler(params CustomerHandlerParams) *CustomerHandler {
	return &CustomerHandler{
		customerUC: params.CustomerUC,
		orderUC:    params.OrderUC,
		logger:     params.Logger,
	}
}

// CustomerRequest is the body of register and profile update requests.
type CustomerRequest struct {
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// LoginRequest carries the credentials as query parameters.
type LoginRequest struct {
	Email    string `query:"email" validate:"required"`
	Password string `query:"password" validate:"required"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresIn   int64            `json:"expires_in"`
	Customer    *entity.Customer `json:"customer"`
}

// SetActiveRequest toggles a customer account.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// Register handles customer sign up.
func (h *CustomerHandler) Register(c echo.Context) error {
	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	customer, err := h.customerUC.Register(c.Request().Context(), usecase.RegisterCustomerInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, customer)
}

// Login handles GET /cliente/iniciar-sesion?email&password.
func (h *CustomerHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	output, err := h.customerUC.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(output.ExpiresIn.Seconds()),
		Customer:    output.Customer,
	})
}

// GetProfile returns the authenticated customer.
func (h *CustomerHandler) GetProfile(c echo.Context) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	customer, err := h.customerUC.GetProfile(c.Request().Context(), customerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customer)
}

// UpdateProfile changes the authenticated customer's data.
func (h *CustomerHandler) UpdateProfile(c echo.Context) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	customer, err := h.customerUC.UpdateProfile(c.Request().Context(), customerID, usecase.UpdateCustomerInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customer)
}

// ListMyOrders returns the authenticated customer's orders, newest first.
func (h *CustomerHandler) ListMyOrders(c echo.Context) error {
	customerID, err := currentCustomerID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), entity.OrderFilter{CustomerID: &customerID})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders)
}

// ListCustomers is a staff listing of every account.
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	customers, err := h.customerUC.ListCustomers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customers)
}

// SetActive enables or disables an account.
func (h *CustomerHandler) SetActive(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req SetActiveRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	customer, err := h.customerUC.SetActive(c.Request().Context(), id, *req.Active)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customer)
}
