package repository

import (
	"context"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrCustomerNotFound is returned when a customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrDuplicateEmail is returned when an email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// CustomerRepository defines the persistence operations for customers.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *entity.Customer) error
	UpdateCustomer(ctx context.Context, customer *entity.Customer) error
	FindCustomerByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// FindCustomerByEmail looks the email up ignoring case.
	FindCustomerByEmail(ctx context.Context, email string) (*entity.Customer, error)

	ListCustomers(ctx context.Context) ([]*entity.Customer, error)
	CountCustomers(ctx context.Context) (int64, error)
}
