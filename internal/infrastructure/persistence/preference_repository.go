package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/preference"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/persistence/models"
)

// GormPreferenceStore implements preference.Store on the user_preferences table
type GormPreferenceStore struct {
	db     *gorm.DB
	policy QueryPolicy
}

// NewGormPreferenceStore creates a new GormPreferenceStore
func NewGormPreferenceStore(db *gorm.DB, policy QueryPolicy) *GormPreferenceStore {
	return &GormPreferenceStore{db: db, policy: policy}
}

// Get reads one value
func (s *GormPreferenceStore) Get(ctx context.Context, userID, key string) (string, bool, error) {
	var m models.UserPreferenceModel
	err := s.policy.Read(ctx, "get preference", func(ctx context.Context) error {
		return s.db.WithContext(ctx).Where("user_id = ? AND key = ?", userID, key).First(&m).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return m.Value, true, nil
}

// Set inserts or replaces one value
func (s *GormPreferenceStore) Set(ctx context.Context, userID, key, value string) error {
	m := models.UserPreferenceModel{UserID: userID, Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
}

// Delete removes one value. Deleting an absent key is not an error.
func (s *GormPreferenceStore) Delete(ctx context.Context, userID, key string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", userID, key).
		Delete(&models.UserPreferenceModel{}).Error
}

// List returns every value whose key starts with prefix
func (s *GormPreferenceStore) List(ctx context.Context, userID, prefix string) (map[string]string, error) {
	var ms []models.UserPreferenceModel
	err := s.policy.Read(ctx, "list preferences", func(ctx context.Context) error {
		ms = nil
		return s.db.WithContext(ctx).
			Where("user_id = ? AND key LIKE ?", userID, prefix+"%").
			Order("key ASC").
			Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(ms))
	for _, m := range ms {
		// "_" in a prefix is a LIKE wildcard
		if strings.HasPrefix(m.Key, prefix) {
			out[m.Key] = m.Value
		}
	}
	return out, nil
}

var _ preference.Store = (*GormPreferenceStore)(nil)
