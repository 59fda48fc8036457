// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"burgerhub/internal/delivery/api/middleware"
	"burgerhub/internal/delivery/api/router/handler"
	"burgerhub/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CustomerHandler *handler.CustomerHandler
	CartHandler     *handler.CartHandler
	OrderHandler    *handler.OrderHandler
	ProductHandler  *handler.ProductHandler
	AddOnHandler    *handler.AddOnHandler
	StaffHandler    *handler.StaffHandler
	DeviceHandler   *handler.DeviceHandler
	MenuHandler     *handler.MenuHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Metrics         *metrics.Metrics `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	customerHandler *handler.CustomerHandler
	cartHandler     *handler.CartHandler
	orderHandler    *handler.OrderHandler
	productHandler  *handler.ProductHandler
	addOnHandler    *handler.AddOnHandler
	staffHandler    *handler.StaffHandler
	deviceHandler   *handler.DeviceHandler
	menuHandler     *handler.MenuHandler
	authMiddleware  *middleware.AuthMiddleware
	metrics         *metrics.Metrics
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		customerHandler: params.CustomerHandler,
		cartHandler:     params.CartHandler,
		orderHandler:    params.OrderHandler,
		productHandler:  params.ProductHandler,
		addOnHandler:    params.AddOnHandler,
		staffHandler:    params.StaffHandler,
		deviceHandler:   params.DeviceHandler,
		menuHandler:     params.MenuHandler,
		authMiddleware:  params.AuthMiddleware,
		metrics:         params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.authMiddleware.Authenticate
	staff := r.authMiddleware.RequireStaff

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)
	if r.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
	}

	// Public menu page
	e.GET("/menu", r.menuHandler.Menu)

	// Customer account and session
	customerGroup := e.Group("/cliente")
	{
		customerGroup.POST("/registrar", r.customerHandler.Register)
		customerGroup.GET("/iniciar-sesion", r.customerHandler.Login)
		customerGroup.GET("/perfil", r.customerHandler.GetProfile, auth)
		customerGroup.PUT("/perfil", r.customerHandler.UpdateProfile, auth)
		customerGroup.GET("/pedidos", r.customerHandler.ListMyOrders, auth)
		customerGroup.POST("/dispositivos", r.deviceHandler.RegisterDevice, auth)
		customerGroup.GET("/dispositivos", r.deviceHandler.GetDevices, auth)
		customerGroup.DELETE("/dispositivos/:id", r.deviceHandler.DeactivateDevice, auth)
	}

	// Cart lifecycle, customer only
	cartGroup := e.Group("/carrito", auth)
	{
		cartGroup.GET("/activo/:clienteId", r.cartHandler.GetActive)
		cartGroup.GET("/cerrado-sin-pedido", r.cartHandler.ClosedWithoutOrder)
		cartGroup.GET("/:id", r.cartHandler.GetCart)
		cartGroup.POST("/agregar", r.cartHandler.AddItem)
		cartGroup.DELETE("/item/:itemId", r.cartHandler.RemoveItem)
		cartGroup.POST("/vaciar", r.cartHandler.EmptyCart)
		cartGroup.POST("/enviar", r.cartHandler.CloseCart)
	}

	// Orders: customers create and track, staff dispatch
	orderGroup := e.Group("/pedidos")
	{
		orderGroup.POST("/crear", r.orderHandler.CreateOrder, auth)
		orderGroup.POST("/checkout", r.orderHandler.Checkout, auth)
		orderGroup.GET("/:id", r.orderHandler.GetOrder, auth)
		orderGroup.GET("/:id/qr", r.orderHandler.TrackingQR, auth)
		orderGroup.GET("", r.orderHandler.ListOrders, staff)
		orderGroup.POST("/:id/estado", r.orderHandler.AdvanceStatus, staff)
		orderGroup.POST("/:id/domiciliario", r.orderHandler.AssignCourier, staff)
		orderGroup.POST("/:id/operador", r.orderHandler.AssignOperator, staff)
	}

	// Products
	productGroup := e.Group("/producto")
	{
		productGroup.GET("/listar", r.productHandler.ListProducts)
		productGroup.GET("/buscar", r.productHandler.SearchProducts)
		productGroup.GET("/:id", r.productHandler.GetProduct)
		productGroup.POST("/crear", r.productHandler.CreateProduct, staff)
		productGroup.PUT("/actualizar/:id", r.productHandler.UpdateProduct, staff)
		productGroup.DELETE("/borrar/:id", r.productHandler.DeleteProduct, staff)
		productGroup.POST("/:id/stock", r.productHandler.AdjustStock, staff)
		productGroup.POST("/:id/imagen", r.productHandler.UploadImage, staff)
	}

	// Add-ons
	addOnGroup := e.Group("/adicional")
	{
		addOnGroup.GET("/buscar", r.addOnHandler.SearchAddOns)
		addOnGroup.GET("/producto/:productId", r.addOnHandler.ListForProduct)
		addOnGroup.GET("/:id", r.addOnHandler.GetAddOn)
		addOnGroup.POST("/crear", r.addOnHandler.CreateAddOn, staff)
		addOnGroup.PUT("/actualizar/:id", r.addOnHandler.UpdateAddOn, staff)
		addOnGroup.DELETE("/borrar/:id", r.addOnHandler.DeleteAddOn, staff)
	}

	// Staff directories
	courierGroup := e.Group("/domiciliario", staff)
	{
		courierGroup.POST("/crear", r.staffHandler.CreateCourier)
		courierGroup.PUT("/actualizar/:id", r.staffHandler.UpdateCourier)
		courierGroup.DELETE("/borrar/:id", r.staffHandler.DeleteCourier)
		courierGroup.GET("/listar", r.staffHandler.ListCouriers)
		courierGroup.GET("/:id", r.staffHandler.GetCourier)
	}

	operatorGroup := e.Group("/operador", staff)
	{
		operatorGroup.POST("/crear", r.staffHandler.CreateOperator)
		operatorGroup.PUT("/actualizar/:id", r.staffHandler.UpdateOperator)
		operatorGroup.DELETE("/borrar/:id", r.staffHandler.DeleteOperator)
		operatorGroup.GET("/listar", r.staffHandler.ListOperators)
		operatorGroup.GET("/:id", r.staffHandler.GetOperator)
	}

	e.GET("/clientes", r.customerHandler.ListCustomers, staff)
	e.POST("/clientes/:id/estado", r.customerHandler.SetActive, staff)
	e.GET("/dashboard/estadisticas", r.staffHandler.Stats, staff)
}
