package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"burgerhub/internal/domain/constants"
	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/domain/service"
	"burgerhub/internal/infra/qrcode"
	mockSvc "burgerhub/internal/mocks/service"
	"burgerhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	store     *storeFixtures
	carts     *cartService
	service   *orderService
	publisher *mockSvc.MockEventPublisher
	metrics   *mockSvc.MockOrderMetrics
	now       time.Time
}

func createTestOrderService(t *testing.T) *orderServiceFixtures {
	store := newStoreFixtures(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	metrics := mockSvc.NewMockOrderMetrics(t)

	srv := NewOrderService(OrderServiceParams{
		TxManager:    store.txManager,
		OrderRepo:    store.orderRepo,
		CartRepo:     store.cartRepo,
		CourierRepo:  store.courierRepo,
		OperatorRepo: store.operatorRepo,
		Publisher:    publisher,
		Metrics:      metrics,
		QRService:    qrcode.NewQRCodeService(256, "M", "https://burgerhub.test/pedidos"),
		Logger:       newDiscardLogger(),
	}).(*orderService)

	now := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	srv.now = func() time.Time { return now }

	return &orderServiceFixtures{
		store:     store,
		carts:     store.newCartService(constants.CartPricingLegacy),
		service:   srv,
		publisher: publisher,
		metrics:   metrics,
		now:       now,
	}
}

// closedCart builds a closed cart holding quantity units of an 18000 burger.
func (f *orderServiceFixtures) closedCart(t *testing.T, customer *entity.Customer, quantity int) *entity.Cart {
	t.Helper()
	ctx := context.Background()

	product := f.store.createProduct(t, "Clásica", 18000, entity.CategoryBurger)
	cart, err := f.carts.AddItem(ctx, usecase.AddItemInput{CustomerID: customer.ID, ProductID: product.ID, Quantity: quantity})
	require.NoError(t, err)
	cart, err = f.carts.CloseCart(ctx, cart.ID)
	require.NoError(t, err)

	return cart
}

func (f *orderServiceFixtures) expectCreatedEvent() {
	f.metrics.EXPECT().OrderCreated().Return().Once()
	f.publisher.EXPECT().
		PublishOrderEvent(mock.Anything, mock.MatchedBy(func(msg *service.OrderEventMessage) bool {
			return msg.Type == entity.OrderEventCreated && msg.Status == entity.OrderStatusCooking
		})).
		Return(nil).
		Once()
}

func TestOrderService_CreateOrder_Lifecycle(t *testing.T) {
	f := createTestOrderService(t)
	ctx := context.Background()
	customer := f.store.createCustomer(t, "ana@example.com")
	cart := f.closedCart(t, customer, 2)

	f.expectCreatedEvent()
	order, err := f.service.CreateOrder(ctx, cart.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCooking, order.Status)
	assert.Nil(t, order.DeliveredAt)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(36000)))
	assert.Equal(t, customer.ID, order.CustomerID)
	assert.Equal(t, cart.ID, order.CartID)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "Clásica", order.Lines[0].ProductName)
	assert.Equal(t, 2, order.Lines[0].Quantity)

	f.metrics.EXPECT().StatusChanged("Entregado").Return().Once()
	f.publisher.EXPECT().
		PublishOrderEvent(mock.Anything, mock.MatchedBy(func(msg *service.OrderEventMessage) bool {
			return msg.Type == entity.OrderEventStatusChanged && msg.OrderID == order.ID
		})).
		Return(nil).
		Once()

	delivered, err := f.service.AdvanceStatus(ctx, order.ID, "Entregado")
	require.NoError(t, err)
	assert.Equal(t, "Entregado", delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)
	assert.True(t, f.now.Equal(*delivered.DeliveredAt))

	stored, err := f.service.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Entregado", stored.Status)
	require.NotNil(t, stored.DeliveredAt)
}

func TestOrderService_AdvanceStatus_DeliveredIgnoresCase(t *testing.T) {
	f := createTestOrderService(t)
	ctx := context.Background()
	customer := f.store.createCustomer(t, "ana@example.com")
	cart := f.closedCart(t, customer, 1)

	f.expectCreatedEvent()
	order, err := f.service.CreateOrder(ctx, cart.ID)
	require.NoError(t, err)

	f.metrics.EXPECT().StatusChanged(mock.Anything).Return()
	f.publisher.EXPECT().PublishOrderEvent(mock.Anything, mock.Anything).Return(nil)

	onTheWay, err := f.service.AdvanceStatus(ctx, order.ID, "En camino")
	require.NoError(t, err)
	assert.Nil(t, onTheWay.DeliveredAt)

	delivered, err := f.service.AdvanceStatus(ctx, order.ID, "  entregado ")
	require.NoError(t, err)
	assert.Equal(t, "entregado", delivered.Status)
	assert.NotNil(t, delivered.DeliveredAt)

	reopened, err := f.service.AdvanceStatus(ctx, order.ID, "En camino")
	require.NoError(t, err)
	assert.Nil(t, reopened.DeliveredAt)

	stored, err := f.service.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DeliveredAt)
}

func TestOrderService_AdvanceStatus_Invalid(t *testing.T) {
	f := createTestOrderService(t)
	ctx := context.Background()

	_, err := f.service.AdvanceStatus(ctx, uuid.New(), "   ")
	assert.True(t, errors.Is(err, domainerrors.ErrOrderStatusEmpty))

	_, err = f.service.AdvanceStatus(ctx, uuid.New(), strings.Repeat("x", entity.MaxStatusLength+1))
	assert.True(t, errors.Is(err, domainerrors.ErrOrderStatusTooLong))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidArgument))

	_, err = f.service.AdvanceStatus(ctx, uuid.New(), "Entregado")
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}

func TestOrderService_CreateOrder_Rejections(t *testing.T) {
	f := createTestOrderService(t)
	ctx := context.Background()
	customer := f.store.createCustomer(t, "ana@example.com")
	product := f.store.createProduct(t, "Clásica", 18000, entity.CategoryBurger)

	t.Run("unknown cart", func(t *testing.T) {
		_, err := f.service.CreateOrder(ctx, uuid.New())
		assert.True(t, errors.Is(err, domainerrors.ErrUnknownCart))
	})

	t.Run("open cart", func(t *testing.T) {
		cart, err := f.carts.AddItem(ctx, usecase.AddItemInput{CustomerID: customer.ID, ProductID: product.ID, Quantity: 1})
		require.NoError(t, err)

		_, err = f.service.CreateOrder(ctx, cart.ID)
		assert.True(t, errors.Is(err, domainerrors.ErrOrderCartOpen))
	})

	t.Run("empty cart", func(t *testing.T) {
		other := f.store.createCustomer(t, "luis@example.com")
		cart, err := f.carts.GetOrCreateActiveCart(ctx, other.ID)
		require.NoError(t, err)
		require.NoError(t, f.store.cartRepo.UpdateCartState(ctx, cart.ID, false))

		_, err = f.service.CreateOrder(ctx, cart.ID)
		assert.True(t, errors.Is(err, domainerrors.ErrOrderCartEmpty))
	})
}

func TestOrderService_CreateOrder_Twice(t *testing.T) {
	f := createTestOrderService(t)
	ctx := context.Background()
	customer := f.store.createCustomer(t, "ana@example.com")
	cart := f.closedCart(t, customer, 1)

	f.expectCreatedEvent()
	_, err := f.service.CreateOrder(ctx, cart.ID)
	require.NoError(t, err)

	_, err = f.service.CreateOrder(ctx, cart.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderAlreadyExists))

	_, err = f.carts.MostRecentClosedCartWithoutOrder(ctx, customer.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNoClosedCart))
}

func TestOrderService_CreateOrder_PublishFailureIsLogged(t *testing.T) {
	f := createTestOrderService(t)
	ctx := context.Background()
	customer := f.store.createCustomer(t, "ana@example.com")
	cart := f.closedCart(t, customer, 1)

	f.metrics.EXPECT().OrderCreated().Return().Once()
	f.publisher.EXPECT().PublishOrderEvent(mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	order, err := f.service.CreateOrder(ctx, cart.ID)
	require.NoError(t, err)

	stored, err := f.service.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)
}

func TestOrderService_Checkout(t *testing.T) {
	f := createTestOrderService(t)
	ctx := context.Background()
	customer := f.store.createCustomer(t, "ana@example.com")
	product := f.store.createProduct(t, "Clásica", 18000, entity.CategoryBurger)

	_, err := f.service.Checkout(ctx, customer.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrCartEmpty))

	cart, err := f.carts.AddItem(ctx, usecase.AddItemInput{CustomerID: customer.ID, ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	f.expectCreatedEvent()
	order, err := f.service.Checkout(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, order.CartID)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(36000)))

	closed, err := f.carts.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.False(t, closed.State)
	require.NotNil(t, closed.OrderID)
	assert.Equal(t, order.ID, *closed.OrderID)
}

func TestOrderService_Checkout_EmptyCartStaysOpen(t *testing.T) {
	f := createTestOrderService(t)
	ctx := context.Background()
	customer := f.store.createCustomer(t, "ana@example.com")

	cart, err := f.carts.GetOrCreateActiveCart(ctx, customer.ID)
	require.NoError(t, err)

	_, err = f.service.Checkout(ctx, customer.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrCartEmpty))

	reloaded, err := f.carts.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.State)
}

func TestOrderService_AssignStaff(t *testing.T) {
	f := createTestOrderService(t)
	ctx := context.Background()
	customer := f.store.createCustomer(t, "ana@example.com")
	cart := f.closedCart(t, customer, 1)

	f.expectCreatedEvent()
	order, err := f.service.CreateOrder(ctx, cart.ID)
	require.NoError(t, err)

	operator := &entity.Operator{Name: "Marta", IDNumber: "1001", Available: true}
	require.NoError(t, f.store.operatorRepo.CreateOperator(ctx, operator))
	courier := &entity.Courier{Name: "Pedro", IDNumber: "2002", Available: true, OperatorID: &operator.ID}
	require.NoError(t, f.store.courierRepo.CreateCourier(ctx, courier))
	busy := &entity.Courier{Name: "Juan", IDNumber: "2003", Available: false}
	require.NoError(t, f.store.courierRepo.CreateCourier(ctx, busy))

	updated, err := f.service.AssignCourier(ctx, order.ID, courier.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.CourierID)
	assert.Equal(t, courier.ID, *updated.CourierID)

	updated, err = f.service.AssignOperator(ctx, order.ID, operator.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.OperatorID)
	assert.Equal(t, operator.ID, *updated.OperatorID)

	_, err = f.service.AssignCourier(ctx, order.ID, busy.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrCourierUnavailable))

	_, err = f.service.AssignCourier(ctx, order.ID, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrCourierNotFound))

	_, err = f.service.AssignOperator(ctx, order.ID, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrOperatorNotFound))
}

func TestOrderService_ListOrders(t *testing.T) {
	f := createTestOrderService(t)
	ctx := context.Background()
	ana := f.store.createCustomer(t, "ana@example.com")
	luis := f.store.createCustomer(t, "luis@example.com")

	f.metrics.EXPECT().OrderCreated().Return()
	f.metrics.EXPECT().StatusChanged(mock.Anything).Return()
	f.publisher.EXPECT().PublishOrderEvent(mock.Anything, mock.Anything).Return(nil)

	first, err := f.service.CreateOrder(ctx, f.closedCart(t, ana, 1).ID)
	require.NoError(t, err)
	_, err = f.service.CreateOrder(ctx, f.closedCart(t, luis, 1).ID)
	require.NoError(t, err)
	_, err = f.service.AdvanceStatus(ctx, first.ID, "En camino")
	require.NoError(t, err)

	all, err := f.service.ListOrders(ctx, entity.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := f.service.ListOrders(ctx, entity.OrderFilter{CustomerID: &ana.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	cooking, err := f.service.ListOrders(ctx, entity.OrderFilter{Status: " Cocinando "})
	require.NoError(t, err)
	require.Len(t, cooking, 1)
	assert.Equal(t, luis.ID, cooking[0].CustomerID)
}

func TestOrderService_TrackingQR(t *testing.T) {
	f := createTestOrderService(t)
	ctx := context.Background()
	customer := f.store.createCustomer(t, "ana@example.com")
	cart := f.closedCart(t, customer, 1)

	f.expectCreatedEvent()
	order, err := f.service.CreateOrder(ctx, cart.ID)
	require.NoError(t, err)

	png, err := f.service.TrackingQR(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	_, err = f.service.TrackingQR(ctx, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}
