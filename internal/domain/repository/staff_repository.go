package repository

import (
	"context"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrCourierNotFound is returned when a courier is not found.
	ErrCourierNotFound = errors.New("courier not found")
	// ErrOperatorNotFound is returned when an operator is not found.
	ErrOperatorNotFound = errors.New("operator not found")
	// ErrDuplicateIDNumber is returned when the identity document is already registered.
	ErrDuplicateIDNumber = errors.New("id number already registered")
)

// CourierRepository defines the persistence operations for couriers.
type CourierRepository interface {
	CreateCourier(ctx context.Context, courier *entity.Courier) error
	UpdateCourier(ctx context.Context, courier *entity.Courier) error
	DeleteCourier(ctx context.Context, id uuid.UUID) error
	FindCourierByID(ctx context.Context, id uuid.UUID) (*entity.Courier, error)
	ListCouriers(ctx context.Context, availableOnly bool) ([]*entity.Courier, error)
}

// OperatorRepository defines the persistence operations for operators.
type OperatorRepository interface {
	CreateOperator(ctx context.Context, operator *entity.Operator) error
	UpdateOperator(ctx context.Context, operator *entity.Operator) error
	DeleteOperator(ctx context.Context, id uuid.UUID) error
	FindOperatorByID(ctx context.Context, id uuid.UUID) (*entity.Operator, error)
	ListOperators(ctx context.Context, availableOnly bool) ([]*entity.Operator, error)
}
