// Package storage keeps product images in an object store.
package storage

import (
	"context"
	"log/slog"

	"burgerhub/config"
	"burgerhub/internal/domain/constants"
	"burgerhub/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the image storage, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// New returns the configured ImageStorage, or nil when storage is disabled.
func New(params Params) (service.ImageStorage, error) {
	cfg := params.Config.Storage
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("Image storage not configured, uploads disabled")

		return nil, nil //nolint:nilnil // storage is optional
	}

	var (
		storage service.ImageStorage
		err     error
	)

	switch cfg.Provider {
	case constants.StorageProviderBlob:
		if cfg.BucketURL == "" {
			return nil, errors.New("bucket URL is required for blob storage")
		}
		logger.Info("Using blob image storage", slog.String("bucket_url", cfg.BucketURL))

		storage, err = NewBlobStorage(context.Background(), cfg.BucketURL, cfg.PublicBaseURL)

	case constants.StorageProviderS3:
		if cfg.S3.Bucket == "" {
			return nil, errors.New("bucket is required for s3 storage")
		}
		logger.Info("Using S3 image storage",
			slog.String("region", cfg.S3.Region),
			slog.String("bucket", cfg.S3.Bucket),
		)

		storage, err = NewS3Storage(context.Background(), S3Options{
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})

	default:
		return nil, errors.Errorf("unknown storage provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing image storage")

			return storage.Close()
		},
	})

	return storage, nil
}

// Module provides the storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
