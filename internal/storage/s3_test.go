package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *s3.Client {
	return s3.New(s3.Options{
		Region: "us-east-1",
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{AccessKeyID: "AKID", SecretAccessKey: "SECRET"}, nil
		}),
		BaseEndpoint: aws.String("http://127.0.0.1:9000"),
		UsePathStyle: true,
	})
}

func TestS3Service_ObjectKey(t *testing.T) {
	svc := NewS3Service(newTestClient(), "bucket", "/ledger/")

	key, err := svc.objectKey("/avatars/u1/a.png")
	require.NoError(t, err)
	assert.Equal(t, "ledger/avatars/u1/a.png", key)

	_, err = svc.objectKey("/")
	assert.Error(t, err)

	bare := NewS3Service(newTestClient(), "bucket", "")
	key, err = bare.objectKey("avatars/u1/a.png")
	require.NoError(t, err)
	assert.Equal(t, "avatars/u1/a.png", key)
}

func TestS3Service_RequiresBucket(t *testing.T) {
	svc := NewS3Service(newTestClient(), "", "ledger")
	ctx := context.Background()

	assert.ErrorIs(t, svc.Upload(ctx, "k", strings.NewReader("x"), "image/png"), ErrNotConfigured)
	assert.ErrorIs(t, svc.Delete(ctx, "k"), ErrNotConfigured)
	_, err := svc.PresignURL(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestS3Service_PresignURL(t *testing.T) {
	svc := NewS3Service(newTestClient(), "bucket", "ledger")

	url, err := svc.PresignURL(context.Background(), "avatars/u1/a.png", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "/bucket/ledger/avatars/u1/a.png")
	assert.Contains(t, url, "X-Amz-Expires=900")
}
