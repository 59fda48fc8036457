package worker

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"burgerhub/config"
	"burgerhub/internal/delivery"
	"burgerhub/internal/delivery/middleware"
	"burgerhub/internal/delivery/worker/handler"
	"burgerhub/internal/domain/lifecycle"
	"burgerhub/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// pushBodyLimit caps a single Pub/Sub push envelope.
const pushBodyLimit = "1M"

type notifierServer struct {
	port   int
	logger *slog.Logger
	echo   *echo.Echo
}

// ServerParams holds dependencies for the notifier HTTP server
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	Metrics     *metrics.Metrics `optional:"true"`
	PushHandler *handler.PushHandler
}

// NewServer builds the notifier server that receives pushed order events.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &notifierServer{
		port:   params.Cfg.HTTP.Port,
		logger: params.Logger.With(slog.String("component", "notifier")),
		echo:   newNotifierEcho(params),
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

func newNotifierEcho(params ServerParams) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())
	e.Use(middleware.NewRequestIDMiddleware(params.Logger).Process)
	if params.Metrics != nil {
		e.Use(params.Metrics.Middleware)
	}
	e.Use(middleware.NewLoggerMiddleware(params.Logger, params.Cfg).Handle)
	e.Use(echomiddleware.BodyLimit(pushBodyLimit))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if params.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(params.Metrics.Handler()))
	}

	// Pub/Sub push subscription target
	e.POST("/push", params.PushHandler.HandlePush)

	return e
}

func (s *notifierServer) Serve(_ context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.port))
	s.logger.Info("Notifier listening for pushed events", slog.String("host_port", hostPort))

	err := s.echo.Start(hostPort)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return errors.WithStack(err)
}

func (s *notifierServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Stopping notifier server")

	return errors.WithStack(s.echo.Shutdown(shutdownCtx))
}
