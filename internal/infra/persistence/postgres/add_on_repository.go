package postgres

import (
	"context"
	"strings"

	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const allowedAddOnBatchSize = 200

// addOnRepository implements the repository.AddOnRepository interface.
type addOnRepository struct {
	db *gorm.DB
}

// NewAddOnRepository is the constructor for addOnRepository.
func NewAddOnRepository(db *gorm.DB) repository.AddOnRepository {
	return &addOnRepository{db: db}
}

func (repo *addOnRepository) CreateAddOn(ctx context.Context, addOn *entity.AddOn) error {
	addOnM := fromAddOnDomain(addOn)

	if err := repo.db.WithContext(ctx).Create(addOnM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create add-on")
	}

	addOn.ID = addOnM.ID
	addOn.CreatedAt = addOnM.CreatedAt
	addOn.UpdatedAt = addOnM.UpdatedAt

	return nil
}

func (repo *addOnRepository) UpdateAddOn(ctx context.Context, addOn *entity.AddOn) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AddOnModel{ID: addOn.ID}).
		Select("name", "price", "active", "categories").
		Updates(fromAddOnDomain(addOn))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update add-on")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddOnNotFound
	}

	return nil
}

// DeleteAddOn soft deletes the add-on so past cart selections keep resolving it.
func (repo *addOnRepository) DeleteAddOn(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AddOnModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete add-on")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddOnNotFound
	}

	return nil
}

func (repo *addOnRepository) FindAddOnByID(ctx context.Context, id uuid.UUID) (*entity.AddOn, error) {
	var addOnM model.AddOnModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&addOnM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddOnNotFound
		}

		return nil, errors.Wrap(err, "failed to find add-on by ID")
	}

	return toAddOnDomain(&addOnM), nil
}

func (repo *addOnRepository) FindAddOnsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.AddOn, error) {
	if len(ids) == 0 {
		return []*entity.AddOn{}, nil
	}

	var addOnModels []*model.AddOnModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&addOnModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find add-ons by IDs")
	}

	return toAddOnDomainList(addOnModels), nil
}

func (repo *addOnRepository) FindAddOnNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
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
		Model(&model.AddOnModel{}).
		Select("id", "name").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find add-on names")
	}

	for _, row := range rows {
		names[row.ID] = row.Name
	}

	return names, nil
}

func (repo *addOnRepository) FindAddOnByName(ctx context.Context, name string) (*entity.AddOn, error) {
	var addOnM model.AddOnModel

	if err := repo.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&addOnM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddOnNotFound
		}

		return nil, errors.Wrap(err, "failed to find add-on by name")
	}

	return toAddOnDomain(&addOnM), nil
}

func (repo *addOnRepository) SearchAddOns(ctx context.Context, name string) ([]*entity.AddOn, error) {
	var addOnModels []*model.AddOnModel

	query := repo.db.WithContext(ctx).Model(&model.AddOnModel{})
	if needle := strings.ToLower(strings.TrimSpace(name)); needle != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+needle+"%")
	}

	if err := query.Order("name ASC").Find(&addOnModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search add-ons")
	}

	return toAddOnDomainList(addOnModels), nil
}

func (repo *addOnRepository) ListAddOns(ctx context.Context) ([]*entity.AddOn, error) {
	return repo.SearchAddOns(ctx, "")
}

func (repo *addOnRepository) ListAddOnsForProduct(ctx context.Context, productID uuid.UUID) ([]*entity.AddOn, error) {
	var addOnModels []*model.AddOnModel

	if err := repo.db.WithContext(ctx).
		Joins("JOIN allowed_add_ons ON allowed_add_ons.add_on_id = add_ons.id").
		Where("allowed_add_ons.product_id = ?", productID).
		Order("add_ons.name ASC").
		Find(&addOnModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list add-ons for product")
	}

	return toAddOnDomainList(addOnModels), nil
}

func (repo *addOnRepository) ReplaceAllowedAddOns(ctx context.Context, links []*entity.AllowedAddOn) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("1 = 1").Delete(&model.AllowedAddOnModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear allowed add-ons")
	}
	if len(links) == 0 {
		return nil
	}

	linkModels := make([]*model.AllowedAddOnModel, 0, len(links))
	for _, link := range links {
		linkModels = append(linkModels, &model.AllowedAddOnModel{
			ProductID: link.ProductID,
			AddOnID:   link.AddOnID,
		})
	}

	if err := db.CreateInBatches(linkModels, allowedAddOnBatchSize).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to store allowed add-ons")
	}

	return nil
}

// --- Mapper Functions ---

func toAddOnDomain(data *model.AddOnModel) *entity.AddOn {
	if data == nil {
		return nil
	}

	categories := make([]entity.Category, 0, len(data.Categories))
	for _, c := range data.Categories {
		categories = append(categories, entity.Category(c))
	}

	return &entity.AddOn{
		ID:         data.ID,
		Name:       data.Name,
		Price:      data.Price,
		Active:     data.Active,
		Categories: categories,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func toAddOnDomainList(data []*model.AddOnModel) []*entity.AddOn {
	addOns := make([]*entity.AddOn, 0, len(data))
	for _, addOnM := range data {
		addOns = append(addOns, toAddOnDomain(addOnM))
	}

	return addOns
}

func fromAddOnDomain(data *entity.AddOn) *model.AddOnModel {
	if data == nil {
		return nil
	}

	categories := make([]string, 0, len(data.Categories))
	for _, c := range data.Categories {
		categories = append(categories, string(c))
	}

	return &model.AddOnModel{
		ID:         data.ID,
		Name:       data.Name,
		Price:      data.Price,
		Active:     data.Active,
		Categories: categories,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
