package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBlobStorage_UploadAndDelete(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	storage := newBlobStorage(bucket, "http://localhost:8080/media/")
	defer storage.Close()

	key := "products/123/image.png"
	require.NoError(t, storage.Upload(ctx, key, strings.NewReader("png-bytes"), "image/png"))

	data, err := bucket.ReadAll(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	attrs, err := bucket.Attributes(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "image/png", attrs.ContentType)

	require.NoError(t, storage.Delete(ctx, key))
	exists, err := bucket.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBlobStorage_DeleteMissingKey(t *testing.T) {
	storage := newBlobStorage(memblob.OpenBucket(nil), "")
	defer storage.Close()

	assert.NoError(t, storage.Delete(context.Background(), "products/missing.png"))
}

func TestBlobStorage_URLFallsBackToPublicBase(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		key      string
		expected string
	}{
		{
			name:     "with base url",
			baseURL:  "http://localhost:8080/media/",
			key:      "products/1/a b.png",
			expected: "http://localhost:8080/media/products/1/a%20b.png",
		},
		{
			name:     "without base url",
			baseURL:  "",
			key:      "products/1/a.png",
			expected: "products/1/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newBlobStorage(memblob.OpenBucket(nil), tt.baseURL)
			defer storage.Close()

			got, err := storage.URL(context.Background(), tt.key, time.Minute)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewBlobStorage_InvalidURL(t *testing.T) {
	_, err := NewBlobStorage(context.Background(), "nope://bucket", "")
	assert.Error(t, err)
}
