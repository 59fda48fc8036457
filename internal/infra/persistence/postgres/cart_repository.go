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

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (repo *cartRepository) CreateCart(ctx context.Context, cart *entity.Cart) error {
	cartM := &model.CartModel{
		ID:         cart.ID,
		State:      cart.State,
		TotalPrice: cart.TotalPrice,
		CustomerID: cart.CustomerID,
	}

	if err := repo.db.WithContext(ctx).Omit("Items", "Order").Create(cartM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrOpenCartExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCustomerNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	cart.ID = cartM.ID
	cart.CreatedAt = cartM.CreatedAt
	cart.UpdatedAt = cartM.UpdatedAt
	if cart.Items == nil {
		cart.Items = []*entity.CartItem{}
	}

	return nil
}

func (repo *cartRepository) FindCartByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	return repo.findOne(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("carts.id = ?", id)
	})
}

func (repo *cartRepository) FindOpenCartByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error) {
	return repo.findOne(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("carts.customer_id = ? AND carts.state = ?", customerID, true)
	})
}

func (repo *cartRepository) FindLatestClosedCartWithoutOrder(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error) {
	return repo.findOne(ctx, func(db *gorm.DB) *gorm.DB {
		return db.
			Where("carts.customer_id = ? AND carts.state = ?", customerID, false).
			Where("NOT EXISTS (SELECT 1 FROM orders WHERE orders.cart_id = carts.id)")
	})
}

// findOne loads the newest cart matching scope, with items and selections.
func (repo *cartRepository) findOne(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (*entity.Cart, error) {
	var cartM model.CartModel

	if err := repo.db.WithContext(ctx).
		Scopes(scope).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Preload("Items.AddOns", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_item_add_ons.id ASC")
		}).
		Preload("Order", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "cart_id")
		}).
		Order("carts.id DESC").
		First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	return toCartDomain(&cartM), nil
}

func (repo *cartRepository) UpdateCartTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartModel{}).
		Where("id = ?", id).
		Update("total_price", total)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update cart total")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	return nil
}

func (repo *cartRepository) UpdateCartState(ctx context.Context, id uuid.UUID, open bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartModel{}).
		Where("id = ?", id).
		Update("state", open)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrOpenCartExists
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update cart state")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	return nil
}

func (repo *cartRepository) CountOpenCarts(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.CartModel{}).
		Where("state = ?", true).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count open carts")
	}

	return count, nil
}

func (repo *cartRepository) CreateItem(ctx context.Context, item *entity.CartItem) error {
	itemM := fromCartItemDomain(item)

	// AddOns are inserted by GORM as a has-many association.
	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCartNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart item")
	}

	created := toCartItemDomain(itemM)
	*item = *created

	return nil
}

func (repo *cartRepository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.
		Where("cart_item_id = ?", itemID).
		Delete(&model.CartItemAddOnModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete cart item add-ons")
	}

	result := db.
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&model.CartItemModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete cart item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

func (repo *cartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	itemIDs := db.Model(&model.CartItemModel{}).Select("id").Where("cart_id = ?", cartID)
	if err := db.
		Where("cart_item_id IN (?)", itemIDs).
		Delete(&model.CartItemAddOnModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete cart item add-ons")
	}

	if err := db.
		Where("cart_id = ?", cartID).
		Delete(&model.CartItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete cart items")
	}

	return nil
}

// --- Mapper Functions ---

func toCartDomain(data *model.CartModel) *entity.Cart {
	if data == nil {
		return nil
	}

	items := make([]*entity.CartItem, 0, len(data.Items))
	for i := range data.Items {
		items = append(items, toCartItemDomain(&data.Items[i]))
	}

	cart := &entity.Cart{
		ID:         data.ID,
		State:      data.State,
		TotalPrice: data.TotalPrice,
		CustomerID: data.CustomerID,
		Items:      items,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
	if data.Order != nil {
		orderID := data.Order.ID
		cart.OrderID = &orderID
	}

	return cart
}

func toCartItemDomain(data *model.CartItemModel) *entity.CartItem {
	addOns := make([]*entity.CartItemAddOn, 0, len(data.AddOns))
	for _, a := range data.AddOns {
		addOns = append(addOns, &entity.CartItemAddOn{
			ID:         a.ID,
			CartItemID: a.CartItemID,
			AddOnID:    a.AddOnID,
		})
	}

	return &entity.CartItem{
		ID:        data.ID,
		CartID:    data.CartID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		UnitPrice: data.UnitPrice,
		AddOns:    addOns,
		CreatedAt: data.CreatedAt,
	}
}

func fromCartItemDomain(data *entity.CartItem) *model.CartItemModel {
	addOns := make([]model.CartItemAddOnModel, 0, len(data.AddOns))
	for _, a := range data.AddOns {
		addOns = append(addOns, model.CartItemAddOnModel{
			ID:      a.ID,
			AddOnID: a.AddOnID,
		})
	}

	return &model.CartItemModel{
		ID:        data.ID,
		CartID:    data.CartID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		UnitPrice: data.UnitPrice,
		AddOns:    addOns,
		CreatedAt: data.CreatedAt,
	}
}
