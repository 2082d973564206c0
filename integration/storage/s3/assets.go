package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
)

// Compile-time check.
var _ emailtemplate.AssetResolver = (*Assets)(nil)

// Client is the subset of the S3 API used for template assets.
type Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3aws.HeadObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3aws.DeleteObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error)
}

// Config describes the bucket that holds template assets such as logos.
type Config struct {
	Bucket         string `env:"S3_BUCKET,required"`
	Region         string `env:"S3_REGION,required"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`         // MinIO, Wasabi and other S3-compatible services
	BaseURL        string `env:"S3_BASE_URL"`         // CDN or public base; generated when empty
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE"` // required by MinIO
	Prefix         string `env:"S3_ASSET_PREFIX"`     // key prefix for every asset
}

// Assets stores template assets in S3 and resolves their public URLs.
type Assets struct {
	client Client
	cfg    Config
}

// Option configures Assets.
type Option func(*options)

type options struct {
	client        Client
	httpClient    *http.Client
	configOptions []func(*config.LoadOptions) error
}

// WithClient uses a preconfigured S3 client.
func WithClient(c Client) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithHTTPClient sets the HTTP client for SDK requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithConfigOption adds an AWS config load option.
func WithConfigOption(opt func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.configOptions = append(o.configOptions, opt)
	}
}

// New creates an asset store. Static credentials are used when both keys are
// set; otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg Config, opts ...Option) (*Assets, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: bucket and region are required", ErrInvalidConfig)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		if o.httpClient != nil {
			loadOpts = append(loadOpts, config.WithHTTPClient(o.httpClient))
		}
		loadOpts = append(loadOpts, o.configOptions...)

		awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("failed to load AWS config: %w", err))
		}
		client = s3aws.NewFromConfig(awsCfg, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
		})
	}

	return &Assets{client: client, cfg: cfg}, nil
}

// key converts an asset path into an object key under the configured prefix.
func (a *Assets) key(p string) (string, error) {
	p = strings.TrimPrefix(p, "/")
	if p == "" || strings.Contains(p, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	if a.cfg.Prefix == "" {
		return p, nil
	}
	return path.Join(strings.Trim(a.cfg.Prefix, "/"), p), nil
}

// AssetURL implements emailtemplate.AssetResolver. Absolute http(s) URLs and
// invalid paths are returned unchanged.
func (a *Assets) AssetURL(p string) string {
	if u, err := url.Parse(p); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return p
	}
	key, err := a.key(p)
	if err != nil {
		return p
	}
	return a.URL(key)
}

// URL returns the public URL of an object key.
func (a *Assets) URL(key string) string {
	key = strings.TrimPrefix(key, "/")

	if a.cfg.BaseURL != "" {
		return strings.TrimSuffix(a.cfg.BaseURL, "/") + "/" + key
	}

	if a.cfg.Endpoint != "" {
		scheme, host := "https://", strings.TrimSuffix(a.cfg.Endpoint, "/")
		if after, ok := strings.CutPrefix(host, "http://"); ok {
			scheme, host = "http://", after
		} else if after, ok := strings.CutPrefix(host, "https://"); ok {
			host = after
		}
		if a.cfg.ForcePathStyle {
			return fmt.Sprintf("%s%s/%s/%s", scheme, host, a.cfg.Bucket, key)
		}
		return fmt.Sprintf("%s%s.%s/%s", scheme, a.cfg.Bucket, host, key)
	}

	if a.cfg.ForcePathStyle {
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", a.cfg.Region, a.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.cfg.Bucket, a.cfg.Region, key)
}

// Upload stores an asset and returns its public URL.
func (a *Assets) Upload(ctx context.Context, p string, body io.Reader, contentType string) (string, error) {
	key, err := a.key(p)
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = a.client.PutObject(ctx, &s3aws.PutObjectInput{
		Bucket:      aws.String(a.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", classifyError(err, "upload asset")
	}
	return a.URL(key), nil
}

// Exists reports whether an asset is stored. A missing object is not an
// error.
func (a *Assets) Exists(ctx context.Context, p string) (bool, error) {
	key, err := a.key(p)
	if err != nil {
		return false, err
	}

	_, err = a.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(a.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	err = classifyError(err, "check asset")
	if errors.Is(err, ErrAssetNotFound) {
		return false, nil
	}
	return false, err
}

// Delete removes an asset.
func (a *Assets) Delete(ctx context.Context, p string) error {
	key, err := a.key(p)
	if err != nil {
		return err
	}

	_, err = a.client.DeleteObject(ctx, &s3aws.DeleteObjectInput{
		Bucket: aws.String(a.cfg.Bucket),
		Key:    aws.String(key),
	})
	return classifyError(err, "delete asset")
}
