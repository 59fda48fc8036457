package postgres

import (
	"context"

	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	// Lines are inserted by GORM as a has-many association.
	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateOrder
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCartNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	*order = *toOrderDomain(orderM)

	return nil
}

func (repo *orderRepository) UpdateOrder(ctx context.Context, order *entity.Order) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{ID: order.ID}).
		Select("status", "delivered_at", "courier_id", "operator_id").
		Updates(&model.OrderModel{
			Status:      order.Status,
			DeliveredAt: order.DeliveredAt,
			CourierID:   order.CourierID,
			OperatorID:  order.OperatorID,
		})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WithDetails("invalid courier or operator reference")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

func (repo *orderRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *orderRepository) FindOrderByCartID(ctx context.Context, cartID uuid.UUID) (*entity.Order, error) {
	return repo.findOne(ctx, "cart_id = ?", cartID)
}

func (repo *orderRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_lines.id ASC")
		}).
		Where(query, args...).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) ListOrders(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})
	if filter.Status != "" {
		query = query.Where("LOWER(status) = LOWER(?)", filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}

	if err := query.
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_lines.id ASC")
		}).
		Order("id DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

func (repo *orderRepository) Stats(ctx context.Context, topProducts int) (*entity.DashboardStats, error) {
	db := repo.db.WithContext(ctx)
	stats := &entity.DashboardStats{
		OrdersByStatus: map[string]int64{},
		TopProducts:    []*entity.ProductSales{},
	}

	var byStatus []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&model.OrderModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count orders by status")
	}
	for _, row := range byStatus {
		stats.OrdersByStatus[row.Status] = row.Total
		stats.TotalOrders += row.Total
	}

	var revenue struct {
		Total     decimal.Decimal
		Delivered decimal.Decimal
	}
	if err := db.Model(&model.OrderModel{}).
		Select("COALESCE(SUM(total_price), 0) AS total, " +
			"COALESCE(SUM(CASE WHEN delivered_at IS NOT NULL THEN total_price ELSE 0 END), 0) AS delivered").
		Scan(&revenue).Error; err != nil {
		return nil, errors.Wrap(err, "failed to sum revenue")
	}
	stats.TotalRevenue = revenue.Total
	stats.DeliveredRevenue = revenue.Delivered

	var top []struct {
		ProductID   uuid.UUID
		ProductName string
		Quantity    int64
	}
	if err := db.Model(&model.OrderLineModel{}).
		Select("product_id, MAX(product_name) AS product_name, SUM(quantity) AS quantity").
		Group("product_id").
		Order("quantity DESC").
		Limit(topProducts).
		Scan(&top).Error; err != nil {
		return nil, errors.Wrap(err, "failed to rank products")
	}
	for _, row := range top {
		stats.TopProducts = append(stats.TopProducts, &entity.ProductSales{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
		})
	}

	return stats, nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	lines := make([]*entity.OrderLine, 0, len(data.Lines))
	for _, l := range data.Lines {
		addOnNames := l.AddOnNames
		if addOnNames == nil {
			addOnNames = []string{}
		}
		lines = append(lines, &entity.OrderLine{
			ID:          l.ID,
			OrderID:     l.OrderID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			AddOnNames:  addOnNames,
		})
	}

	return &entity.Order{
		ID:          data.ID,
		CreatedAt:   data.CreatedAt,
		DeliveredAt: data.DeliveredAt,
		Status:      data.Status,
		TotalPrice:  data.TotalPrice,
		CustomerID:  data.CustomerID,
		CourierID:   data.CourierID,
		OperatorID:  data.OperatorID,
		CartID:      data.CartID,
		Lines:       lines,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	lines := make([]model.OrderLineModel, 0, len(data.Lines))
	for _, l := range data.Lines {
		lines = append(lines, model.OrderLineModel{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			AddOnNames:  l.AddOnNames,
		})
	}

	return &model.OrderModel{
		ID:          data.ID,
		CreatedAt:   data.CreatedAt,
		DeliveredAt: data.DeliveredAt,
		Status:      data.Status,
		TotalPrice:  data.TotalPrice,
		CustomerID:  data.CustomerID,
		CourierID:   data.CourierID,
		OperatorID:  data.OperatorID,
		CartID:      data.CartID,
		Lines:       lines,
		UpdatedAt:   data.UpdatedAt,
	}
}
