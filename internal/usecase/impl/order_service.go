package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	deliverycontext "burgerhub/internal/delivery/context"
	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/domain/service"
	"burgerhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type orderService struct {
	txManager    repository.TransactionManager
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	courierRepo  repository.CourierRepository
	operatorRepo repository.OperatorRepository
	publisher    service.EventPublisher
	metrics      service.OrderMetrics
	qrService    service.QRCodeService
	now          func() time.Time
	logger       *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	OrderRepo    repository.OrderRepository
	CartRepo     repository.CartRepository
	CourierRepo  repository.CourierRepository
	OperatorRepo repository.OperatorRepository
	Publisher    service.EventPublisher `optional:"true"`
	Metrics      service.OrderMetrics   `optional:"true"`
	QRService    service.QRCodeService
	Logger       *slog.Logger
}

// NewOrderService creates the order use case.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:    params.TxManager,
		orderRepo:    params.OrderRepo,
		cartRepo:     params.CartRepo,
		courierRepo:  params.CourierRepo,
		operatorRepo: params.OperatorRepo,
		publisher:    params.Publisher,
		metrics:      params.Metrics,
		qrService:    params.QRService,
		now:          time.Now,
		logger:       params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *orderService) CreateOrder(ctx context.Context, cartID uuid.UUID) (*entity.Order, error) {
	if cartID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID.WithDetails("carritoId")
	}

	cart, err := srv.cartRepo.FindCartByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrUnknownCart
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	var order *entity.Order
	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		var err error
		order, err = srv.orderFromCart(ctx, factory, cart)

		return err
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to create order", slog.Any("cartID", cartID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.afterCreate(ctx, order)

	return order, nil
}

func (srv *orderService) Checkout(ctx context.Context, customerID uuid.UUID) (*entity.Order, error) {
	if customerID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID.WithDetails("clienteId")
	}

	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		cartRepo := factory.NewCartRepository()

		cart, err := cartRepo.FindOpenCartByCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return domainerrors.ErrCartEmpty.WithDetails("no hay un carrito activo")
			}

			return errors.Wrap(err, "failed to find open cart")
		}
		if err := closeCart(ctx, cartRepo, cart); err != nil {
			return err
		}

		order, err = srv.orderFromCart(ctx, factory, cart)

		return err
	})
	if err != nil {
		srv.log(ctx).Warn("Checkout failed", slog.Any("customerID", customerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to checkout")
	}

	srv.afterCreate(ctx, order)

	return order, nil
}

// orderFromCart checks the cart can become an order and stores the order
// with a snapshot line per cart item.
func (srv *orderService) orderFromCart(ctx context.Context, factory repository.RepositoryFactory, cart *entity.Cart) (*entity.Order, error) {
	if len(cart.Items) == 0 {
		return nil, domainerrors.ErrOrderCartEmpty
	}
	if cart.IsOpen() {
		return nil, domainerrors.ErrOrderCartOpen
	}
	if cart.OrderID != nil {
		return nil, domainerrors.ErrOrderAlreadyExists
	}

	lines, err := buildOrderLines(ctx, factory, cart.Items)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		CreatedAt:  srv.now(),
		Status:     entity.OrderStatusCooking,
		TotalPrice: cart.TotalPrice,
		CustomerID: cart.CustomerID,
		CartID:     cart.ID,
		Lines:      lines,
	}
	if err := factory.NewOrderRepository().CreateOrder(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicateOrder) {
			return nil, domainerrors.ErrOrderAlreadyExists
		}

		return nil, err
	}

	return order, nil
}

func buildOrderLines(ctx context.Context, factory repository.RepositoryFactory, items []*entity.CartItem) ([]*entity.OrderLine, error) {
	productIDs := make([]uuid.UUID, 0, len(items))
	addOnIDs := make([]uuid.UUID, 0)
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
		for _, a := range item.AddOns {
			addOnIDs = append(addOnIDs, a.AddOnID)
		}
	}

	productNames, err := factory.NewProductRepository().FindProductNames(ctx, productIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load product names")
	}
	addOnNames := map[uuid.UUID]string{}
	if len(addOnIDs) > 0 {
		addOnNames, err = factory.NewAddOnRepository().FindAddOnNames(ctx, addOnIDs)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load add-on names")
		}
	}

	lines := make([]*entity.OrderLine, 0, len(items))
	for _, item := range items {
		names := make([]string, 0, len(item.AddOns))
		for _, a := range item.AddOns {
			names = append(names, addOnNames[a.AddOnID])
		}
		lines = append(lines, &entity.OrderLine{
			ProductID:   item.ProductID,
			ProductName: productNames[item.ProductID],
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			AddOnNames:  names,
		})
	}

	return lines, nil
}

func (srv *orderService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, status string) (*entity.Order, error) {
	if orderID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, domainerrors.ErrOrderStatusEmpty
	}
	if utf8.RuneCountInString(status) > entity.MaxStatusLength {
		return nil, domainerrors.ErrOrderStatusTooLong
	}

	order, err := srv.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	order.Status = status
	if entity.IsDeliveredStatus(status) {
		deliveredAt := srv.now()
		order.DeliveredAt = &deliveredAt
	} else {
		// Only a delivered order carries a delivery date.
		order.DeliveredAt = nil
	}

	if err := srv.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, translateOrderError(err)
	}

	srv.log(ctx).Info("Order status changed",
		slog.Any("orderID", orderID),
		slog.String("from", previous),
		slog.String("to", status),
	)

	if srv.metrics != nil {
		srv.metrics.StatusChanged(status)
	}
	srv.publish(ctx, entity.OrderEventStatusChanged, order)

	return order, nil
}

func (srv *orderService) GetByID(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	if orderID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}

	order, err := srv.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, translateOrderError(err)
	}

	return order, nil
}

func (srv *orderService) AssignCourier(ctx context.Context, orderID, courierID uuid.UUID) (*entity.Order, error) {
	if courierID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID.WithDetails("domiciliarioId")
	}

	order, err := srv.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	courier, err := srv.courierRepo.FindCourierByID(ctx, courierID)
	if err != nil {
		if errors.Is(err, repository.ErrCourierNotFound) {
			return nil, domainerrors.ErrCourierNotFound
		}

		return nil, errors.Wrap(err, "failed to find courier")
	}
	if !courier.Available {
		return nil, domainerrors.ErrCourierUnavailable
	}

	order.CourierID = &courier.ID
	if err := srv.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, translateOrderError(err)
	}

	srv.log(ctx).Info("Courier assigned", slog.Any("orderID", orderID), slog.Any("courierID", courierID))

	return order, nil
}

func (srv *orderService) AssignOperator(ctx context.Context, orderID, operatorID uuid.UUID) (*entity.Order, error) {
	if operatorID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID.WithDetails("operadorId")
	}

	order, err := srv.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	operator, err := srv.operatorRepo.FindOperatorByID(ctx, operatorID)
	if err != nil {
		if errors.Is(err, repository.ErrOperatorNotFound) {
			return nil, domainerrors.ErrOperatorNotFound
		}

		return nil, errors.Wrap(err, "failed to find operator")
	}
	if !operator.Available {
		return nil, domainerrors.ErrOperatorUnavailable
	}

	order.OperatorID = &operator.ID
	if err := srv.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, translateOrderError(err)
	}

	srv.log(ctx).Info("Operator assigned", slog.Any("orderID", orderID), slog.Any("operatorID", operatorID))

	return order, nil
}

func (srv *orderService) ListOrders(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, error) {
	filter.Status = strings.TrimSpace(filter.Status)

	orders, err := srv.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

func (srv *orderService) TrackingQR(ctx context.Context, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateOrderQR(order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate order QR")
	}

	return png, nil
}

func (srv *orderService) afterCreate(ctx context.Context, order *entity.Order) {
	srv.log(ctx).Info("Order created",
		slog.Any("orderID", order.ID),
		slog.Any("cartID", order.CartID),
		slog.String("total", order.TotalPrice.String()),
		slog.Int("lines", len(order.Lines)),
	)

	if srv.metrics != nil {
		srv.metrics.OrderCreated()
	}
	srv.publish(ctx, entity.OrderEventCreated, order)
}

// publish sends the order event. The order is already stored, so failures are only logged.
func (srv *orderService) publish(ctx context.Context, eventType entity.OrderEventType, order *entity.Order) {
	if srv.publisher == nil {
		return
	}

	msg := &service.OrderEventMessage{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		OrderEvent: &entity.OrderEvent{
			Type:       eventType,
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Status:     order.Status,
			TotalPrice: order.TotalPrice,
			OccurredAt: srv.now(),
		},
	}
	if err := srv.publisher.PublishOrderEvent(ctx, msg); err != nil {
		srv.log(ctx).Error("Failed to publish order event",
			slog.String("type", string(eventType)),
			slog.Any("orderID", order.ID),
			slog.Any("error", err),
		)
	}
}

func translateOrderError(err error) error {
	if errors.Is(err, repository.ErrOrderNotFound) {
		return domainerrors.ErrOrderNotFound
	}

	return err
}
