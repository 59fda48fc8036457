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

// courierRepository implements the repository.CourierRepository interface.
type courierRepository struct {
	db *gorm.DB
}

// NewCourierRepository is the constructor for courierRepository.
func NewCourierRepository(db *gorm.DB) repository.CourierRepository {
	return &courierRepository{db: db}
}

func (repo *courierRepository) CreateCourier(ctx context.Context, courier *entity.Courier) error {
	courierM := fromCourierDomain(courier)

	if err := repo.db.WithContext(ctx).Omit("Orders").Create(courierM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateIDNumber
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrOperatorNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create courier")
	}

	courier.ID = courierM.ID
	courier.CreatedAt = courierM.CreatedAt
	courier.UpdatedAt = courierM.UpdatedAt

	return nil
}

func (repo *courierRepository) UpdateCourier(ctx context.Context, courier *entity.Courier) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CourierModel{ID: courier.ID}).
		Select("name", "id_number", "available", "operator_id").
		Updates(fromCourierDomain(courier))
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateIDNumber
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrOperatorNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update courier")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCourierNotFound
	}

	return nil
}

func (repo *courierRepository) DeleteCourier(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	// Orders keep their history without the courier.
	if err := db.Model(&model.OrderModel{}).
		Where("courier_id = ?", id).
		Update("courier_id", nil).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to detach courier from orders")
	}

	result := db.Where("id = ?", id).Delete(&model.CourierModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete courier")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCourierNotFound
	}

	return nil
}

func (repo *courierRepository) FindCourierByID(ctx context.Context, id uuid.UUID) (*entity.Courier, error) {
	var courierM model.CourierModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&courierM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCourierNotFound
		}

		return nil, errors.Wrap(err, "failed to find courier by ID")
	}

	return toCourierDomain(&courierM), nil
}

func (repo *courierRepository) ListCouriers(ctx context.Context, availableOnly bool) ([]*entity.Courier, error) {
	var courierModels []*model.CourierModel

	query := repo.db.WithContext(ctx).Model(&model.CourierModel{})
	if availableOnly {
		query = query.Where("available = ?", true)
	}
	if err := query.Order("name ASC").Find(&courierModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list couriers")
	}

	couriers := make([]*entity.Courier, 0, len(courierModels))
	for _, courierM := range courierModels {
		couriers = append(couriers, toCourierDomain(courierM))
	}

	return couriers, nil
}

// operatorRepository implements the repository.OperatorRepository interface.
type operatorRepository struct {
	db *gorm.DB
}

// NewOperatorRepository is the constructor for operatorRepository.
func NewOperatorRepository(db *gorm.DB) repository.OperatorRepository {
	return &operatorRepository{db: db}
}

func (repo *operatorRepository) CreateOperator(ctx context.Context, operator *entity.Operator) error {
	operatorM := fromOperatorDomain(operator)

	if err := repo.db.WithContext(ctx).Omit("Couriers", "Orders").Create(operatorM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateIDNumber
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create operator")
	}

	operator.ID = operatorM.ID
	operator.CreatedAt = operatorM.CreatedAt
	operator.UpdatedAt = operatorM.UpdatedAt

	return nil
}

func (repo *operatorRepository) UpdateOperator(ctx context.Context, operator *entity.Operator) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OperatorModel{ID: operator.ID}).
		Select("name", "id_number", "available").
		Updates(fromOperatorDomain(operator))
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateIDNumber
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update operator")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOperatorNotFound
	}

	return nil
}

func (repo *operatorRepository) DeleteOperator(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Model(&model.CourierModel{}).
		Where("operator_id = ?", id).
		Update("operator_id", nil).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to detach operator from couriers")
	}
	if err := db.Model(&model.OrderModel{}).
		Where("operator_id = ?", id).
		Update("operator_id", nil).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to detach operator from orders")
	}

	result := db.Where("id = ?", id).Delete(&model.OperatorModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete operator")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOperatorNotFound
	}

	return nil
}

func (repo *operatorRepository) FindOperatorByID(ctx context.Context, id uuid.UUID) (*entity.Operator, error) {
	var operatorM model.OperatorModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&operatorM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOperatorNotFound
		}

		return nil, errors.Wrap(err, "failed to find operator by ID")
	}

	return toOperatorDomain(&operatorM), nil
}

func (repo *operatorRepository) ListOperators(ctx context.Context, availableOnly bool) ([]*entity.Operator, error) {
	var operatorModels []*model.OperatorModel

	query := repo.db.WithContext(ctx).Model(&model.OperatorModel{})
	if availableOnly {
		query = query.Where("available = ?", true)
	}
	if err := query.Order("name ASC").Find(&operatorModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list operators")
	}

	operators := make([]*entity.Operator, 0, len(operatorModels))
	for _, operatorM := range operatorModels {
		operators = append(operators, toOperatorDomain(operatorM))
	}

	return operators, nil
}

// --- Mapper Functions ---

func toCourierDomain(data *model.CourierModel) *entity.Courier {
	return &entity.Courier{
		ID:         data.ID,
		Name:       data.Name,
		IDNumber:   data.IDNumber,
		Available:  data.Available,
		OperatorID: data.OperatorID,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromCourierDomain(data *entity.Courier) *model.CourierModel {
	return &model.CourierModel{
		ID:         data.ID,
		Name:       data.Name,
		IDNumber:   data.IDNumber,
		Available:  data.Available,
		OperatorID: data.OperatorID,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func toOperatorDomain(data *model.OperatorModel) *entity.Operator {
	return &entity.Operator{
		ID:        data.ID,
		Name:      data.Name,
		IDNumber:  data.IDNumber,
		Available: data.Available,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromOperatorDomain(data *entity.Operator) *model.OperatorModel {
	return &model.OperatorModel{
		ID:        data.ID,
		Name:      data.Name,
		IDNumber:  data.IDNumber,
		Available: data.Available,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
