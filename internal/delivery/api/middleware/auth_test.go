package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"burgerhub/config"
	deliverycontext "burgerhub/internal/delivery/context"
	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	mockUC "burgerhub/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAuthMiddleware(t *testing.T, adminKey string) (*AuthMiddleware, *mockUC.MockCustomerUsecase) {
	cfg := &config.Config{}
	cfg.SecretKey.Admin = adminKey
	customerUC := mockUC.NewMockCustomerUsecase(t)

	return NewAuthMiddleware(AuthMiddlewareParams{CustomerUC: customerUC, Config: cfg}), customerUC
}

func serve(mw echo.MiddlewareFunc, header http.Header) (*httptest.ResponseRecorder, echo.Context, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	_ = mw(func(c echo.Context) error {
		called = true

		return c.NoContent(http.StatusNoContent)
	})(c)

	return rec, c, called
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	m, customerUC := newTestAuthMiddleware(t, "")
	customer := &entity.Customer{ID: uuid.New(), Active: true}

	customerUC.EXPECT().Authenticate(mock.Anything, "good").Return(customer, nil).Once()
	rec, c, called := serve(m.Authenticate, http.Header{"Authorization": {"Bearer good"}})
	require.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	id, ok := deliverycontext.GetCustomerID(c)
	require.True(t, ok)
	assert.Equal(t, customer.ID, id)

	customerUC.EXPECT().Authenticate(mock.Anything, "old").Return(nil, domainerrors.ErrCustomerInactive).Once()
	rec, _, called = serve(m.Authenticate, http.Header{"Authorization": {"Bearer old"}})
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "CUSTOMER_INACTIVE")

	rec, _, called = serve(m.Authenticate, nil)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "MISSING_TOKEN")

	rec, _, called = serve(m.Authenticate, http.Header{"Authorization": {"Basic abc"}})
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN_FORMAT")
}

func TestAuthMiddleware_RequireStaff(t *testing.T) {
	m, _ := newTestAuthMiddleware(t, "s3cret")

	_, _, called := serve(m.RequireStaff, http.Header{HeaderAdminKey: {"s3cret"}})
	assert.True(t, called)

	rec, _, called := serve(m.RequireStaff, http.Header{HeaderAdminKey: {"guess"}})
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// An unset key locks the staff endpoints instead of opening them.
	open, _ := newTestAuthMiddleware(t, "")
	_, _, called = serve(open.RequireStaff, http.Header{HeaderAdminKey: {""}})
	assert.False(t, called)
}
