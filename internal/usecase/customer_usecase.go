package usecase

import (
	"context"
	"time"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterCustomerInput defines the data required to register a customer.
type RegisterCustomerInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
	Phone    string
	Address  string
}

// UpdateCustomerInput carries the profile fields a customer can change.
// An empty Password keeps the current one.
type UpdateCustomerInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
	Phone    string
	Address  string
}

// --- Output DTOs ---

// LoginOutput returns the generated token after a successful login.
type LoginOutput struct {
	AccessToken string
	ExpiresIn   time.Duration
	Customer    *entity.Customer
}

// CustomerUsecase defines the customer account operations.
type CustomerUsecase interface {
	Register(ctx context.Context, input RegisterCustomerInput) (*entity.Customer, error)
	Login(ctx context.Context, email, password string) (*LoginOutput, error)

	// Authenticate validates the token and re-reads the customer it names.
	Authenticate(ctx context.Context, token string) (*entity.Customer, error)

	GetProfile(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*entity.Customer, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Customer, error)
	ListCustomers(ctx context.Context) ([]*entity.Customer, error)
}
