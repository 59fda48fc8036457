package impl

import (
	"context"

	"burgerhub/internal/domain/entity"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const topProductsLimit = 5

type dashboardService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	cartRepo     repository.CartRepository
}

// DashboardServiceParams holds dependencies for DashboardService, injected by Fx.
type DashboardServiceParams struct {
	fx.In

	OrderRepo    repository.OrderRepository
	CustomerRepo repository.CustomerRepository
	CartRepo     repository.CartRepository
}

// NewDashboardService creates the statistics use case.
func NewDashboardService(params DashboardServiceParams) usecase.DashboardUsecase {
	return &dashboardService{
		orderRepo:    params.OrderRepo,
		customerRepo: params.CustomerRepo,
		cartRepo:     params.CartRepo,
	}
}

func (srv *dashboardService) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	stats, err := srv.orderRepo.Stats(ctx, topProductsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate orders")
	}

	if stats.CustomerCount, err = srv.customerRepo.CountCustomers(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count customers")
	}
	if stats.OpenCartCount, err = srv.cartRepo.CountOpenCarts(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count open carts")
	}

	return stats, nil
}
