package main

import (
	"context"
	"log/slog"
	"os"

	"burgerhub/config"
	"burgerhub/internal/delivery"
	"burgerhub/internal/delivery/api"
	"burgerhub/internal/delivery/api/middleware"
	"burgerhub/internal/delivery/api/router/handler"
	"burgerhub/internal/infra/auth"
	logs "burgerhub/internal/infra/log"
	"burgerhub/internal/infra/metrics"
	"burgerhub/internal/infra/persistence/postgres"
	"burgerhub/internal/infra/pubsub"
	"burgerhub/internal/infra/qrcode"
	"burgerhub/internal/infra/storage"
	"burgerhub/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
		),
		metrics.Module,
		pubsub.Module,
		storage.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewProductRepository,
			postgres.NewAddOnRepository,
			postgres.NewCustomerRepository,
			postgres.NewCartRepository,
			postgres.NewOrderRepository,
			postgres.NewCourierRepository,
			postgres.NewOperatorRepository,
			postgres.NewDeviceRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			qrcode.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCatalogService,
			impl.NewCustomerService,
			impl.NewCartService,
			impl.NewOrderService,
			impl.NewStaffService,
			impl.NewDashboardService,
			impl.NewDeviceService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewProductHandler,
			handler.NewAddOnHandler,
			handler.NewCustomerHandler,
			handler.NewCartHandler,
			handler.NewOrderHandler,
			handler.NewStaffHandler,
			handler.NewDeviceHandler,
			handler.NewMenuHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
