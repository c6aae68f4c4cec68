package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	photoapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/photo"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/photo"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/dto"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/router"
)

// photoFormField is the multipart field carrying the image
const photoFormField = "photo"

// PhotoService stores and lists delivery photos
type PhotoService interface {
	UploadPhoto(ctx context.Context, in photoapp.UploadPhotoInput) (*photo.Photo, error)
	ListPhotos(ctx context.Context, deliveryID uuid.UUID) ([]photo.Photo, error)
}

var _ PhotoService = (*photoapp.PhotoService)(nil)

// PhotoHandler serves delivery photo uploads
type PhotoHandler struct {
	BaseHandler
	photos PhotoService
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(photos PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// Routes returns the delivery photo routes
func (h *PhotoHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("deliveries", "/deliveries")
	g.POST("/:id/photos", h.Upload)
	g.GET("/:id/photos", h.List)
	return g
}

// Upload stores the multipart "photo" file and returns its public URL
func (h *PhotoHandler) Upload(c *gin.Context) {
	deliveryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	fh, err := c.FormFile(photoFormField)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "multipart field \"photo\" is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer f.Close()

	p, err := h.photos.UploadPhoto(c.Request.Context(), photoapp.UploadPhotoInput{
		DeliveryID:  deliveryID,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// List returns the photos of the delivery, oldest first
func (h *PhotoHandler) List(c *gin.Context) {
	deliveryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	photos, err := h.photos.ListPhotos(c.Request.Context(), deliveryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(c, photos)
}
