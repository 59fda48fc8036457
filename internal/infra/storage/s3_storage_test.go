package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	putInput    *s3.PutObjectInput
	putBody     string
	deleteInput *s3.DeleteObjectInput
	err         error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.putInput = params
	body, _ := io.ReadAll(params.Body)
	f.putBody = string(body)

	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleteInput = params

	return &s3.DeleteObjectOutput{}, f.err
}

type fakePresigner struct {
	expires time.Duration
}

func (f *fakePresigner) PresignGetObject(_ context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	opts := &s3.PresignOptions{}
	for _, fn := range optFns {
		fn(opts)
	}
	f.expires = opts.Expires

	return &v4.PresignedHTTPRequest{URL: "https://" + *params.Bucket + ".s3.test/" + *params.Key}, nil
}

func TestS3Storage_Upload(t *testing.T) {
	client := &fakeS3{}
	storage := &s3Storage{client: client, presigner: &fakePresigner{}, bucket: "menu"}

	require.NoError(t, storage.Upload(context.Background(), "products/1/a.png", strings.NewReader("img"), "image/png"))
	assert.Equal(t, "menu", *client.putInput.Bucket)
	assert.Equal(t, "products/1/a.png", *client.putInput.Key)
	assert.Equal(t, "image/png", *client.putInput.ContentType)
	assert.Equal(t, "img", client.putBody)
}

func TestS3Storage_UploadError(t *testing.T) {
	storage := &s3Storage{client: &fakeS3{err: errors.New("denied")}, bucket: "menu"}

	err := storage.Upload(context.Background(), "k", strings.NewReader("img"), "image/png")
	assert.ErrorContains(t, err, "denied")
}

func TestS3Storage_DeleteEmptyKey(t *testing.T) {
	client := &fakeS3{}
	storage := &s3Storage{client: client, bucket: "menu"}

	require.NoError(t, storage.Delete(context.Background(), ""))
	assert.Nil(t, client.deleteInput)

	require.NoError(t, storage.Delete(context.Background(), "products/1/a.png"))
	assert.Equal(t, "products/1/a.png", *client.deleteInput.Key)
}

func TestS3Storage_URL(t *testing.T) {
	presigner := &fakePresigner{}
	storage := &s3Storage{client: &fakeS3{}, presigner: presigner, bucket: "menu"}

	got, err := storage.URL(context.Background(), "products/1/a.png", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://menu.s3.test/products/1/a.png", got)
	assert.Equal(t, 15*time.Minute, presigner.expires)
}
