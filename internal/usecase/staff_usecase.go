package usecase

import (
	"context"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
)

// CourierInput carries the editable fields of a courier.
type CourierInput struct {
	Name       string
	IDNumber   string
	Available  bool
	OperatorID *uuid.UUID
}

// OperatorInput carries the editable fields of an operator.
type OperatorInput struct {
	Name      string
	IDNumber  string
	Available bool
}

// StaffUsecase manages the courier and operator directories.
type StaffUsecase interface {
	CreateCourier(ctx context.Context, input CourierInput) (*entity.Courier, error)
	UpdateCourier(ctx context.Context, id uuid.UUID, input CourierInput) (*entity.Courier, error)
	DeleteCourier(ctx context.Context, id uuid.UUID) error
	GetCourier(ctx context.Context, id uuid.UUID) (*entity.Courier, error)
	ListCouriers(ctx context.Context, availableOnly bool) ([]*entity.Courier, error)

	CreateOperator(ctx context.Context, input OperatorInput) (*entity.Operator, error)
	UpdateOperator(ctx context.Context, id uuid.UUID, input OperatorInput) (*entity.Operator, error)
	DeleteOperator(ctx context.Context, id uuid.UUID) error
	GetOperator(ctx context.Context, id uuid.UUID) (*entity.Operator, error)
	ListOperators(ctx context.Context, availableOnly bool) ([]*entity.Operator, error)
}

// DashboardUsecase reports store statistics.
type DashboardUsecase interface {
	Stats(ctx context.Context) (*entity.DashboardStats, error)
}
