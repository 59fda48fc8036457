package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"burgerhub/config"
	apimiddleware "burgerhub/internal/delivery/api/middleware"
	"burgerhub/internal/delivery/api/router"
	"burgerhub/internal/delivery/api/router/handler"
	"burgerhub/internal/domain/constants"
	"burgerhub/internal/infra/auth"
	"burgerhub/internal/infra/persistence/model"
	"burgerhub/internal/infra/persistence/postgres"
	"burgerhub/internal/infra/qrcode"
	"burgerhub/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testAdminKey = "admin-key"

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "2M"
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Admin = testAdminKey
	cfg.Auth.BcryptCost = 4
	cfg.Cart.Pricing = constants.CartPricingLineSum
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := postgres.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	db = db.Session(&gorm.Session{SkipDefaultTransaction: true})
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, model.AutoMigrate(db))

	txManager := postgres.NewTransactionManager(db)
	productRepo := postgres.NewProductRepository(db)
	addOnRepo := postgres.NewAddOnRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	courierRepo := postgres.NewCourierRepository(db)
	operatorRepo := postgres.NewOperatorRepository(db)
	deviceRepo := postgres.NewDeviceRepository(db)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	catalogUC := impl.NewCatalogService(impl.CatalogServiceParams{
		TxManager: txManager, ProductRepo: productRepo, AddOnRepo: addOnRepo, Config: cfg, Logger: logger,
	})
	customerUC := impl.NewCustomerService(impl.CustomerServiceParams{
		TxManager: txManager, CustomerRepo: customerRepo, Hasher: auth.NewBcryptHasher(cfg),
		TokenService: tokens, Config: cfg, Logger: logger,
	})
	cartUC := impl.NewCartService(impl.CartServiceParams{
		TxManager: txManager, CartRepo: cartRepo, CustomerRepo: customerRepo,
		ProductRepo: productRepo, AddOnRepo: addOnRepo, Config: cfg, Logger: logger,
	})
	orderUC := impl.NewOrderService(impl.OrderServiceParams{
		TxManager: txManager, OrderRepo: orderRepo, CartRepo: cartRepo, CourierRepo: courierRepo,
		OperatorRepo: operatorRepo, QRService: qrcode.NewQRCodeService(256, "M", "https://burgerhub.test/pedidos"),
		Logger: logger,
	})
	staffUC := impl.NewStaffService(impl.StaffServiceParams{CourierRepo: courierRepo, OperatorRepo: operatorRepo, Logger: logger})
	dashboardUC := impl.NewDashboardService(impl.DashboardServiceParams{OrderRepo: orderRepo, CustomerRepo: customerRepo, CartRepo: cartRepo})
	deviceUC := impl.NewDeviceService(impl.DeviceServiceParams{DeviceRepo: deviceRepo, Logger: logger})

	e, err := NewEcho(ServerParams{
		Cfg:    cfg,
		Logger: logger,
		RouterParams: router.RouterParams{
			CustomerHandler: handler.NewCustomerHandler(handler.CustomerHandlerParams{CustomerUC: customerUC, OrderUC: orderUC, Logger: logger}),
			CartHandler:     handler.NewCartHandler(handler.CartHandlerParams{CartUC: cartUC, Logger: logger}),
			OrderHandler:    handler.NewOrderHandler(handler.OrderHandlerParams{OrderUC: orderUC, CartUC: cartUC, Logger: logger}),
			ProductHandler:  handler.NewProductHandler(handler.ProductHandlerParams{CatalogUC: catalogUC, Logger: logger}),
			AddOnHandler:    handler.NewAddOnHandler(handler.AddOnHandlerParams{CatalogUC: catalogUC, Logger: logger}),
			StaffHandler:    handler.NewStaffHandler(handler.StaffHandlerParams{StaffUC: staffUC, DashboardUC: dashboardUC, Logger: logger}),
			DeviceHandler:   handler.NewDeviceHandler(handler.DeviceHandlerParams{DeviceUC: deviceUC, Logger: logger}),
			MenuHandler:     handler.NewMenuHandler(handler.MenuHandlerParams{CatalogUC: catalogUC, Logger: logger}),
			AuthMiddleware:  apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{CustomerUC: customerUC, Config: cfg}),
		},
	})
	require.NoError(t, err)

	return e
}

type client struct {
	t     *testing.T
	e     *echo.Echo
	token string
	admin bool
}

func (c *client) do(method, target, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if c.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+c.token)
	}
	if c.admin {
		req.Header.Set(apimiddleware.HeaderAdminKey, testAdminKey)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)

	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.NotNil(t, env.Error, rec.Body.String())

	return env.Error.Code
}

// signUp registers a customer and returns a client holding their token.
func signUp(t *testing.T, e *echo.Echo, email string) (*client, uuid.UUID) {
	t.Helper()
	anon := &client{t: t, e: e}

	rec := anon.do(http.MethodPost, "/cliente/registrar",
		`{"name":"Ana","surname":"Gómez","email":"`+email+`","password":"supersecreta"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	query := url.Values{"email": {email}, "password": {"supersecreta"}}
	rec = anon.do(http.MethodGet, "/cliente/iniciar-sesion?"+query.Encode(), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		AccessToken string `json:"access_token"`
		Customer    struct {
			ID uuid.UUID `json:"id"`
		} `json:"customer"`
	}
	decodeData(t, rec, &login)
	require.NotEmpty(t, login.AccessToken)

	return &client{t: t, e: e, token: login.AccessToken}, login.Customer.ID
}

func TestServer_OrderFlow(t *testing.T) {
	e := newTestEcho(t)
	staff := &client{t: t, e: e, admin: true}

	rec := staff.do(http.MethodPost, "/producto/crear",
		`{"name":"Clásica","price":18000,"category":"hamburguesa","stock":10,"ingredients":["pan","carne"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var product struct {
		ID uuid.UUID `json:"id"`
	}
	decodeData(t, rec, &product)

	ana, anaID := signUp(t, e, "ana@example.com")

	rec = ana.do(http.MethodPost, "/carrito/agregar", `{"product_id":"`+product.ID.String()+`","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cart struct {
		ID         uuid.UUID `json:"id"`
		TotalPrice string    `json:"total_price"`
		CustomerID uuid.UUID `json:"customer_id"`
	}
	decodeData(t, rec, &cart)
	assert.Equal(t, "36000", cart.TotalPrice)
	assert.Equal(t, anaID, cart.CustomerID)

	rec = ana.do(http.MethodPost, "/carrito/enviar", `{}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ana.do(http.MethodPost, "/pedidos/crear", `{"cart_id":"`+cart.ID.String()+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, strings.HasPrefix(rec.Body.String(), "Pedido creado: "), rec.Body.String())
	orderID := strings.TrimPrefix(rec.Body.String(), "Pedido creado: ")

	// Another customer cannot see the order.
	luis, _ := signUp(t, e, "luis@example.com")
	rec = luis.do(http.MethodGet, "/pedidos/"+orderID, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ana.do(http.MethodGet, "/pedidos/"+orderID+"/qr", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))

	rec = staff.do(http.MethodPost, "/pedidos/"+orderID+"/estado", `{"status":"Entregado"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Estado actualizado: Entregado", rec.Body.String())

	rec = ana.do(http.MethodGet, "/cliente/pedidos", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var orders []struct {
		Status      string  `json:"status"`
		DeliveredAt *string `json:"delivered_at"`
	}
	decodeData(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, "Entregado", orders[0].Status)
	assert.NotNil(t, orders[0].DeliveredAt)

	// The cart is now closed for changes.
	rec = ana.do(http.MethodPost, "/carrito/vaciar", `{"cart_id":"`+cart.ID.String()+`"}`)
	assert.Equal(t, "CART_CLOSED", errorCode(t, rec))
}

func TestServer_AuthGuards(t *testing.T) {
	e := newTestEcho(t)
	anon := &client{t: t, e: e}

	rec := anon.do(http.MethodPost, "/carrito/agregar", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, rec))

	rec = (&client{t: t, e: e, token: "garbage"}).do(http.MethodGet, "/cliente/perfil", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = anon.do(http.MethodGet, "/clientes", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "STAFF_KEY_INVALID", errorCode(t, rec))

	ana, anaID := signUp(t, e, "ana@example.com")
	_, luisID := signUp(t, e, "luis@example.com")

	// Mutating without an open cart does not create one.
	rec = ana.do(http.MethodDelete, "/carrito/item/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "NO_OPEN_CART", errorCode(t, rec))

	rec = ana.do(http.MethodGet, "/carrito/activo/"+anaID.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = ana.do(http.MethodGet, "/carrito/activo/"+luisID.String(), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_MenuPage(t *testing.T) {
	e := newTestEcho(t)
	staff := &client{t: t, e: e, admin: true}

	rec := staff.do(http.MethodPost, "/producto/crear", `{"name":"Perro Especial","price":15000,"category":"perro caliente","stock":3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = staff.do(http.MethodGet, "/menu", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Contains(t, rec.Body.String(), "Perro Especial")
	assert.Contains(t, rec.Body.String(), "15.000")

	rec = staff.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
