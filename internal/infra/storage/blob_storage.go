package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	"burgerhub/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	_ "gocloud.dev/blob/s3blob"   // s3:// buckets
	"gocloud.dev/gcerrors"
)

// blobStorage stores images in any bucket gocloud can open by URL.
type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// NewBlobStorage opens bucketURL. publicBaseURL is used to build download
// addresses when the bucket driver cannot sign URLs.
func NewBlobStorage(ctx context.Context, bucketURL, publicBaseURL string) (service.ImageStorage, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	return newBlobStorage(bucket, publicBaseURL), nil
}

func newBlobStorage(bucket *blob.Bucket, publicBaseURL string) *blobStorage {
	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (s *blobStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.WithStack(err)
	}

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()

		return errors.WithStack(err)
	}

	return errors.WithStack(w.Close())
}

func (s *blobStorage) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil
	}

	return errors.WithStack(err)
}

func (s *blobStorage) URL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	signed, err := s.bucket.SignedURL(ctx, key, &blob.SignedURLOptions{Expiry: ttl})
	if err == nil {
		return signed, nil
	}
	if gcerrors.Code(err) != gcerrors.Unimplemented {
		return "", errors.WithStack(err)
	}

	if s.publicBaseURL == "" {
		return key, nil
	}

	return s.publicBaseURL + "/" + (&url.URL{Path: key}).EscapedPath(), nil
}

func (s *blobStorage) Close() error {
	return errors.WithStack(s.bucket.Close())
}
