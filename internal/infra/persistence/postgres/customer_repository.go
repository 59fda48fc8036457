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

// customerRepository implements the repository.CustomerRepository interface.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (repo *customerRepository) CreateCustomer(ctx context.Context, customer *entity.Customer) error {
	customerM := fromCustomerDomain(customer)

	if err := repo.db.WithContext(ctx).Create(customerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create customer")
	}

	customer.ID = customerM.ID
	customer.CreatedAt = customerM.CreatedAt
	customer.UpdatedAt = customerM.UpdatedAt

	return nil
}

func (repo *customerRepository) UpdateCustomer(ctx context.Context, customer *entity.Customer) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CustomerModel{ID: customer.ID}).
		Select("name", "surname", "email", "password_hash", "phone", "address", "active").
		Updates(fromCustomerDomain(customer))
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update customer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCustomerNotFound
	}

	return nil
}

func (repo *customerRepository) FindCustomerByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customerM model.CustomerModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&customerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by ID")
	}

	return toCustomerDomain(&customerM), nil
}

func (repo *customerRepository) FindCustomerByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	var customerM model.CustomerModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&customerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by email")
	}

	return toCustomerDomain(&customerM), nil
}

func (repo *customerRepository) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	var customerModels []*model.CustomerModel

	if err := repo.db.WithContext(ctx).
		Order("surname ASC").
		Order("name ASC").
		Find(&customerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	customers := make([]*entity.Customer, 0, len(customerModels))
	for _, customerM := range customerModels {
		customers = append(customers, toCustomerDomain(customerM))
	}

	return customers, nil
}

func (repo *customerRepository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.CustomerModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count customers")
	}

	return count, nil
}

// --- Mapper Functions ---

func toCustomerDomain(data *model.CustomerModel) *entity.Customer {
	if data == nil {
		return nil
	}

	return &entity.Customer{
		ID:           data.ID,
		Name:         data.Name,
		Surname:      data.Surname,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Phone:        data.Phone,
		Address:      data.Address,
		Active:       data.Active,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromCustomerDomain(data *entity.Customer) *model.CustomerModel {
	if data == nil {
		return nil
	}

	return &model.CustomerModel{
		ID:           data.ID,
		Name:         data.Name,
		Surname:      data.Surname,
		Email:        strings.ToLower(strings.TrimSpace(data.Email)),
		PasswordHash: data.PasswordHash,
		Phone:        data.Phone,
		Address:      data.Address,
		Active:       data.Active,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
