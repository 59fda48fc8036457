package middleware

import (
	"crypto/subtle"
	"strings"

	"burgerhub/config"
	"burgerhub/internal/delivery/api/response"
	deliverycontext "burgerhub/internal/delivery/context"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HeaderAdminKey carries the staff key.
const HeaderAdminKey = "X-Admin-Key"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	CustomerUC usecase.CustomerUsecase
	Config     *config.Config
}

// AuthMiddleware authenticates customers by bearer token and staff by admin key.
type AuthMiddleware struct {
	customerUC usecase.CustomerUsecase
	adminKey   []byte
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		customerUC: params.CustomerUC,
		adminKey:   []byte(params.Config.SecretKey.Admin),
	}
}

// Authenticate validates the bearer token and loads the current customer.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}

		customer, err := m.customerUC.Authenticate(c.Request().Context(), tokenString)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		deliverycontext.SetCustomer(c, customer)

		return next(c)
	}
}

// RequireStaff checks the admin key header in constant time.
func (m *AuthMiddleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := []byte(c.Request().Header.Get(HeaderAdminKey))
		if len(m.adminKey) == 0 || subtle.ConstantTimeCompare(key, m.adminKey) != 1 {
			return response.HandleAppError(c, domainerrors.ErrStaffKeyInvalid)
		}

		return next(c)
	}
}
