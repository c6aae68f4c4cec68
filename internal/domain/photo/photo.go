// Package photo models weigh-ticket and load photos attached to deliveries.
package photo

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// Photo is a stored delivery photo
type Photo struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ObjectStore is the blob storage holding delivery photos
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// List returns the keys under prefix in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
	PublicURL(key string) string
}

var allowedExtensions = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"heic": "image/heic",
}

// Prefix is the storage folder of one delivery
func Prefix(deliveryID uuid.UUID) string {
	return "deliveries/" + deliveryID.String() + "/"
}

// Key builds deliveries/<delivery_id>/<unix_millis>.<ext>
func Key(deliveryID uuid.UUID, at time.Time, ext string) string {
	return fmt.Sprintf("%s%d.%s", Prefix(deliveryID), at.UnixMilli(), ext)
}

// Extension picks the stored extension from the file name, falling back to
// the content type. Only image types are accepted.
func Extension(filename, contentType string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if _, ok := allowedExtensions[ext]; ok {
		return ext, nil
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	switch ct {
	case "image/jpeg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	case "image/heic":
		return "heic", nil
	}
	return "", shared.NewDomainError(shared.CodeInvalidInput, "photo must be a jpeg, png, webp or heic image")
}

// ContentType returns the canonical content type for a stored extension
func ContentType(ext string) string {
	if ct, ok := allowedExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
