package s3_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abdosaeedelhassan/email-templates/integration/storage/s3"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) PutObject(ctx context.Context, in *s3aws.PutObjectInput, _ ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3aws.PutObjectOutput)
	return out, args.Error(1)
}

func (m *mockClient) HeadObject(ctx context.Context, in *s3aws.HeadObjectInput, _ ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3aws.HeadObjectOutput)
	return out, args.Error(1)
}

func (m *mockClient) DeleteObject(ctx context.Context, in *s3aws.DeleteObjectInput, _ ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3aws.DeleteObjectOutput)
	return out, args.Error(1)
}

func newAssets(t *testing.T, cfg s3.Config, client *mockClient) *s3.Assets {
	t.Helper()
	a, err := s3.New(context.Background(), cfg, s3.WithClient(client))
	require.NoError(t, err)
	return a
}

func TestNew_RequiresBucketAndRegion(t *testing.T) {
	t.Parallel()

	_, err := s3.New(context.Background(), s3.Config{Region: "eu-west-1"})
	assert.ErrorIs(t, err, s3.ErrInvalidConfig)

	_, err = s3.New(context.Background(), s3.Config{Bucket: "assets"})
	assert.ErrorIs(t, err, s3.ErrInvalidConfig)
}

func TestAssets_AssetURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  s3.Config
		path string
		want string
	}{
		{
			name: "virtual hosted",
			cfg:  s3.Config{Bucket: "assets", Region: "eu-west-1"},
			path: "media/logo.png",
			want: "https://assets.s3.eu-west-1.amazonaws.com/media/logo.png",
		},
		{
			name: "path style",
			cfg:  s3.Config{Bucket: "assets", Region: "eu-west-1", ForcePathStyle: true},
			path: "/media/logo.png",
			want: "https://s3.eu-west-1.amazonaws.com/assets/media/logo.png",
		},
		{
			name: "custom endpoint",
			cfg:  s3.Config{Bucket: "assets", Region: "us-east-1", Endpoint: "http://minio:9000/", ForcePathStyle: true},
			path: "logo.png",
			want: "http://minio:9000/assets/logo.png",
		},
		{
			name: "cdn base with prefix",
			cfg:  s3.Config{Bucket: "assets", Region: "us-east-1", BaseURL: "https://cdn.acme.test/", Prefix: "/email/"},
			path: "logo.png",
			want: "https://cdn.acme.test/email/logo.png",
		},
		{
			name: "absolute url untouched",
			cfg:  s3.Config{Bucket: "assets", Region: "us-east-1"},
			path: "https://elsewhere.test/logo.png",
			want: "https://elsewhere.test/logo.png",
		},
		{
			name: "traversal untouched",
			cfg:  s3.Config{Bucket: "assets", Region: "us-east-1"},
			path: "../secret",
			want: "../secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := newAssets(t, tt.cfg, &mockClient{})
			assert.Equal(t, tt.want, a.AssetURL(tt.path))
		})
	}
}

func TestAssets_Upload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	client := &mockClient{}
	client.On("PutObject", ctx, mock.MatchedBy(func(in *s3aws.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "assets" &&
			aws.ToString(in.Key) == "email/logo.png" &&
			aws.ToString(in.ContentType) == "image/png"
	})).Return(&s3aws.PutObjectOutput{}, nil).Once()

	a := newAssets(t, s3.Config{Bucket: "assets", Region: "eu-west-1", Prefix: "email"}, client)
	u, err := a.Upload(ctx, "logo.png", strings.NewReader("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://assets.s3.eu-west-1.amazonaws.com/email/logo.png", u)
	client.AssertExpectations(t)

	_, err = a.Upload(ctx, "../logo.png", strings.NewReader("png"), "image/png")
	assert.ErrorIs(t, err, s3.ErrInvalidPath)
}

func TestAssets_Exists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	client := &mockClient{}
	client.On("HeadObject", ctx, mock.MatchedBy(func(in *s3aws.HeadObjectInput) bool {
		return aws.ToString(in.Key) == "present.png"
	})).Return(&s3aws.HeadObjectOutput{}, nil)
	client.On("HeadObject", ctx, mock.MatchedBy(func(in *s3aws.HeadObjectInput) bool {
		return aws.ToString(in.Key) == "missing.png"
	})).Return(nil, &types.NotFound{})
	client.On("HeadObject", ctx, mock.MatchedBy(func(in *s3aws.HeadObjectInput) bool {
		return aws.ToString(in.Key) == "private.png"
	})).Return(nil, &smithy.GenericAPIError{Code: "AccessDenied"})

	a := newAssets(t, s3.Config{Bucket: "assets", Region: "eu-west-1"}, client)

	ok, err := a.Exists(ctx, "present.png")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Exists(ctx, "missing.png")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = a.Exists(ctx, "private.png")
	assert.ErrorIs(t, err, s3.ErrAccessDenied)
}

func TestAssets_Delete(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &mockClient{}
	client.On("DeleteObject", ctx, mock.Anything).Return(nil, context.Canceled).Once()

	a := newAssets(t, s3.Config{Bucket: "assets", Region: "eu-west-1"}, client)
	err := a.Delete(ctx, "logo.png")
	assert.ErrorIs(t, err, s3.ErrOperationCanceled)
}
