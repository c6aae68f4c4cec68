package persistence

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// mapNotFound converts gorm.ErrRecordNotFound into a NOT_FOUND domain error
// naming the missing entity. Other errors pass through unchanged.
func mapNotFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewDomainError(shared.CodeNotFound, entity+" not found")
	}
	return err
}
