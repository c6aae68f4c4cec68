package photo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/photo"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/trade"
)

// PhotoService stores and lists delivery photos
type PhotoService struct {
	deliveries trade.DeliveryRepository
	store      photo.ObjectStore
	maxBytes   int64
	now        func() time.Time
	logger     *zap.Logger
}

// NewPhotoService creates a new PhotoService. maxBytes <= 0 disables the size check.
func NewPhotoService(deliveries trade.DeliveryRepository, store photo.ObjectStore, maxBytes int64, logger *zap.Logger) *PhotoService {
	return &PhotoService{
		deliveries: deliveries,
		store:      store,
		maxBytes:   maxBytes,
		now:        time.Now,
		logger:     logger,
	}
}

// UploadPhotoInput is a photo upload for one delivery
type UploadPhotoInput struct {
	DeliveryID  uuid.UUID
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadPhoto stores a photo under deliveries/<delivery_id>/ and returns its public URL
func (s *PhotoService) UploadPhoto(ctx context.Context, in UploadPhotoInput) (*photo.Photo, error) {
	if in.Size <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "photo is empty")
	}
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		return nil, shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("photo exceeds the %d byte limit", s.maxBytes))
	}
	ext, err := photo.Extension(in.Filename, in.ContentType)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDelivery(ctx, in.DeliveryID); err != nil {
		return nil, err
	}

	key := photo.Key(in.DeliveryID, s.now(), ext)
	if err := s.store.Put(ctx, key, in.Body, in.Size, photo.ContentType(ext)); err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}

	s.logger.Info("Delivery photo uploaded",
		zap.String("delivery_id", in.DeliveryID.String()),
		zap.String("key", key),
		zap.Int64("size", in.Size))

	return &photo.Photo{Key: key, URL: s.store.PublicURL(key)}, nil
}

// ListPhotos returns the photos of a delivery, oldest first
func (s *PhotoService) ListPhotos(ctx context.Context, deliveryID uuid.UUID) ([]photo.Photo, error) {
	if err := s.ensureDelivery(ctx, deliveryID); err != nil {
		return nil, err
	}
	keys, err := s.store.List(ctx, photo.Prefix(deliveryID))
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	out := make([]photo.Photo, len(keys))
	for i, k := range keys {
		out[i] = photo.Photo{Key: k, URL: s.store.PublicURL(k)}
	}
	return out, nil
}

func (s *PhotoService) ensureDelivery(ctx context.Context, id uuid.UUID) error {
	ok, err := s.deliveries.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError(shared.CodeNotFound, "delivery not found")
	}
	return nil
}
