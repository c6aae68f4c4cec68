// Package storage provides object storage implementations for delivery photos.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/photo"
	infraconfig "github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

// Ensure S3ObjectStorage implements photo.ObjectStore
var _ photo.ObjectStore = (*S3ObjectStorage)(nil)

// S3ObjectStorage implements photo.ObjectStore using AWS S3 SDK v2.
// It is compatible with any S3-compatible storage (AWS S3, MinIO, Supabase storage, etc.)
type S3ObjectStorage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        *zap.Logger
}

// S3ObjectStorageOption is a functional option for configuring S3ObjectStorage
type S3ObjectStorageOption func(*S3ObjectStorage)

// WithLogger sets a custom logger for S3ObjectStorage
func WithLogger(logger *zap.Logger) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		s.logger = logger
	}
}

// NewS3ObjectStorage creates a new S3ObjectStorage from configuration.
// An empty endpoint uses the regular AWS endpoint resolution.
func NewS3ObjectStorage(cfg *infraconfig.StorageConfig, opts ...S3ObjectStorageOption) (*S3ObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	storage := &S3ObjectStorage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBaseURL(cfg, endpoint, region),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(storage)
	}
	return storage, nil
}

func publicBaseURL(cfg *infraconfig.StorageConfig, endpoint, region string) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(cfg.PublicBaseURL, "/")
	}
	if endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
	}
	if cfg.UsePathStyle {
		return endpoint + "/" + cfg.Bucket
	}
	u, _ := url.Parse(endpoint)
	return u.Scheme + "://" + cfg.Bucket + "." + u.Host
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup to ensure the bucket is ready.
func (s *S3ObjectStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// Ignore "BucketAlreadyOwnedByYou" error (race condition)
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Put uploads body under key
func (s *S3ObjectStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// List returns every key under prefix in lexical order
func (s *S3ObjectStorage) List(ctx context.Context, prefix string) ([]string, error) {
	keys := []string{}
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// PublicURL returns the public URL of key
func (s *S3ObjectStorage) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}

// GetBucket returns the bucket name
func (s *S3ObjectStorage) GetBucket() string {
	return s.bucket
}
