package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/photo"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

// NewObjectStore builds the photo store selected by storage.type.
// For s3 the bucket is created when missing.
func NewObjectStore(cfg *config.StorageConfig, logger *zap.Logger) (photo.ObjectStore, error) {
	switch cfg.Type {
	case "s3":
		s, err := NewS3ObjectStorage(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using S3 object storage", zap.String("bucket", s.GetBucket()))
		return s, nil
	case "stub", "":
		logger.Warn("Using in-memory stub object storage; photos are lost on restart")
		s := NewStubObjectStorage()
		if cfg.PublicBaseURL != "" {
			s.BaseURL = cfg.PublicBaseURL
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
