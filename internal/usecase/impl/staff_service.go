package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	deliverycontext "burgerhub/internal/delivery/context"
	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type staffService struct {
	courierRepo  repository.CourierRepository
	operatorRepo repository.OperatorRepository
	logger       *slog.Logger
}

// StaffServiceParams holds dependencies for StaffService, injected by Fx.
type StaffServiceParams struct {
	fx.In

	CourierRepo  repository.CourierRepository
	OperatorRepo repository.OperatorRepository
	Logger       *slog.Logger
}

// NewStaffService creates the courier and operator registry use case.
func NewStaffService(params StaffServiceParams) usecase.StaffUsecase {
	return &staffService{
		courierRepo:  params.CourierRepo,
		operatorRepo: params.OperatorRepo,
		logger:       params.Logger,
	}
}

func (srv *staffService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// --- Couriers ---

func (srv *staffService) CreateCourier(ctx context.Context, input usecase.CourierInput) (*entity.Courier, error) {
	courier, err := srv.buildCourier(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := srv.courierRepo.CreateCourier(ctx, courier); err != nil {
		return nil, translateStaffError(err)
	}

	srv.log(ctx).Info("Courier created", slog.Any("courierID", courier.ID))

	return courier, nil
}

func (srv *staffService) UpdateCourier(ctx context.Context, id uuid.UUID, input usecase.CourierInput) (*entity.Courier, error) {
	existing, err := srv.GetCourier(ctx, id)
	if err != nil {
		return nil, err
	}

	courier, err := srv.buildCourier(ctx, input)
	if err != nil {
		return nil, err
	}
	courier.ID = existing.ID
	courier.CreatedAt = existing.CreatedAt

	if err := srv.courierRepo.UpdateCourier(ctx, courier); err != nil {
		return nil, translateStaffError(err)
	}

	return srv.GetCourier(ctx, id)
}

func (srv *staffService) DeleteCourier(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domainerrors.ErrInvalidID
	}
	if err := srv.courierRepo.DeleteCourier(ctx, id); err != nil {
		return translateStaffError(err)
	}

	srv.log(ctx).Info("Courier deleted", slog.Any("courierID", id))

	return nil
}

func (srv *staffService) GetCourier(ctx context.Context, id uuid.UUID) (*entity.Courier, error) {
	if id == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}

	courier, err := srv.courierRepo.FindCourierByID(ctx, id)
	if err != nil {
		return nil, translateStaffError(err)
	}

	return courier, nil
}

func (srv *staffService) ListCouriers(ctx context.Context, availableOnly bool) ([]*entity.Courier, error) {
	couriers, err := srv.courierRepo.ListCouriers(ctx, availableOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list couriers")
	}

	return couriers, nil
}

func (srv *staffService) buildCourier(ctx context.Context, input usecase.CourierInput) (*entity.Courier, error) {
	name, idNumber, err := validatePerson(input.Name, input.IDNumber)
	if err != nil {
		return nil, err
	}

	if input.OperatorID != nil {
		if _, err := srv.operatorRepo.FindOperatorByID(ctx, *input.OperatorID); err != nil {
			if errors.Is(err, repository.ErrOperatorNotFound) {
				return nil, domainerrors.ErrUnknownOperator
			}

			return nil, errors.Wrap(err, "failed to find operator")
		}
	}

	return &entity.Courier{
		Name:       name,
		IDNumber:   idNumber,
		Available:  input.Available,
		OperatorID: input.OperatorID,
	}, nil
}

// --- Operators ---

func (srv *staffService) CreateOperator(ctx context.Context, input usecase.OperatorInput) (*entity.Operator, error) {
	name, idNumber, err := validatePerson(input.Name, input.IDNumber)
	if err != nil {
		return nil, err
	}

	operator := &entity.Operator{Name: name, IDNumber: idNumber, Available: input.Available}
	if err := srv.operatorRepo.CreateOperator(ctx, operator); err != nil {
		return nil, translateStaffError(err)
	}

	srv.log(ctx).Info("Operator created", slog.Any("operatorID", operator.ID))

	return operator, nil
}

func (srv *staffService) UpdateOperator(ctx context.Context, id uuid.UUID, input usecase.OperatorInput) (*entity.Operator, error) {
	existing, err := srv.GetOperator(ctx, id)
	if err != nil {
		return nil, err
	}

	name, idNumber, err := validatePerson(input.Name, input.IDNumber)
	if err != nil {
		return nil, err
	}
	existing.Name = name
	existing.IDNumber = idNumber
	existing.Available = input.Available

	if err := srv.operatorRepo.UpdateOperator(ctx, existing); err != nil {
		return nil, translateStaffError(err)
	}

	return srv.GetOperator(ctx, id)
}

func (srv *staffService) DeleteOperator(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domainerrors.ErrInvalidID
	}
	if err := srv.operatorRepo.DeleteOperator(ctx, id); err != nil {
		return translateStaffError(err)
	}

	srv.log(ctx).Info("Operator deleted", slog.Any("operatorID", id))

	return nil
}

func (srv *staffService) GetOperator(ctx context.Context, id uuid.UUID) (*entity.Operator, error) {
	if id == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}

	operator, err := srv.operatorRepo.FindOperatorByID(ctx, id)
	if err != nil {
		return nil, translateStaffError(err)
	}

	return operator, nil
}

func (srv *staffService) ListOperators(ctx context.Context, availableOnly bool) ([]*entity.Operator, error) {
	operators, err := srv.operatorRepo.ListOperators(ctx, availableOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list operators")
	}

	return operators, nil
}

func validatePerson(name, idNumber string) (string, string, error) {
	name = strings.TrimSpace(name)
	idNumber = strings.TrimSpace(idNumber)
	if name == "" || idNumber == "" {
		return "", "", domainerrors.ErrValidationFailed.WithDetails("nombre y documento son obligatorios")
	}
	if utf8.RuneCountInString(name) > entity.MaxNameLength || utf8.RuneCountInString(idNumber) > entity.MaxIDNumberLength {
		return "", "", domainerrors.ErrValidationFailed.WithDetails("nombre o documento demasiado largo")
	}

	return name, idNumber, nil
}

func translateStaffError(err error) error {
	switch {
	case errors.Is(err, repository.ErrCourierNotFound):
		return domainerrors.ErrCourierNotFound
	case errors.Is(err, repository.ErrOperatorNotFound):
		return domainerrors.ErrOperatorNotFound
	case errors.Is(err, repository.ErrDuplicateIDNumber):
		return domainerrors.ErrIDNumberDuplicated
	default:
		return err
	}
}
