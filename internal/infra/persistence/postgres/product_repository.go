package postgres

import (
	"context"

	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidStock
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

func (repo *productRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{ID: product.ID}).
		Select("name", "price", "description", "image_key", "category", "ingredients", "stock", "active", "new", "popular").
		Updates(productM)
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidStock
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DeleteProduct soft deletes the product so historical orders keep resolving it.
func (repo *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (repo *productRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) FindProductNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	if err := repo.db.WithContext(ctx).
		Unscoped().
		Model(&model.ProductModel{}).
		Select("id", "name").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find product names")
	}

	for _, row := range rows {
		names[row.ID] = row.Name
	}

	return names, nil
}

func (repo *productRepository) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filter.NewOnly {
		query = query.Where("new = ?", true)
	}
	if filter.PopularOnly {
		query = query.Where("popular = ?", true)
	}

	if err := query.Order("category ASC").Order("name ASC").Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

func (repo *productRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to adjust stock")
	}

	product, err := repo.FindProductByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if result.RowsAffected == 0 {
		return product.Stock, repository.ErrInsufficientStock
	}

	return product.Stock, nil
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	ingredients := data.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}

	return &entity.Product{
		ID:          data.ID,
		Name:        data.Name,
		Price:       data.Price,
		Description: data.Description,
		ImageKey:    data.ImageKey,
		Category:    entity.Category(data.Category),
		Ingredients: ingredients,
		Stock:       data.Stock,
		Active:      data.Active,
		New:         data.New,
		Popular:     data.Popular,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:          data.ID,
		Name:        data.Name,
		Price:       data.Price,
		Description: data.Description,
		ImageKey:    data.ImageKey,
		Category:    string(data.Category),
		Ingredients: data.Ingredients,
		Stock:       data.Stock,
		Active:      data.Active,
		New:         data.New,
		Popular:     data.Popular,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
