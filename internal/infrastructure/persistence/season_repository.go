package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/season"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/persistence/models"
)

// GormSeasonRepository implements season.Repository using GORM
type GormSeasonRepository struct {
	db     *gorm.DB
	policy QueryPolicy
}

// NewGormSeasonRepository creates a new GormSeasonRepository
func NewGormSeasonRepository(db *gorm.DB, policy QueryPolicy) *GormSeasonRepository {
	return &GormSeasonRepository{db: db, policy: policy}
}

// List returns every season, most recent start first
func (r *GormSeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	var ms []models.SeasonModel
	err := r.policy.Read(ctx, "list seasons", func(ctx context.Context) error {
		ms = nil
		return r.db.WithContext(ctx).Order("start_date DESC").Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]season.Season, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// FindByID finds a season by its ID
func (r *GormSeasonRepository) FindByID(ctx context.Context, id uuid.UUID) (*season.Season, error) {
	var m models.SeasonModel
	err := r.policy.Read(ctx, "find season", func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	})
	if err != nil {
		return nil, mapNotFound(err, "season")
	}
	return m.ToDomain(), nil
}

// FindActive returns the active season
func (r *GormSeasonRepository) FindActive(ctx context.Context) (*season.Season, error) {
	var m models.SeasonModel
	err := r.policy.Read(ctx, "find active season", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Where("is_active = ?", true).First(&m).Error
	})
	if err != nil {
		return nil, mapNotFound(err, "active season")
	}
	return m.ToDomain(), nil
}

// StartNew deactivates every season and inserts s as the active one. On
// PostgreSQL the seasons table is locked against concurrent writers for the
// duration of the transaction; the partial unique index on is_active backs
// this up on every engine.
func (r *GormSeasonRepository) StartNew(ctx context.Context, s *season.Season) error {
	s.IsActive = true
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("LOCK TABLE seasons IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
				return fmt.Errorf("lock seasons: %w", err)
			}
		}
		if err := tx.Model(&models.SeasonModel{}).
			Where("is_active = ?", true).
			Updates(map[string]any{"is_active": false, "updated_at": time.Now()}).Error; err != nil {
			return fmt.Errorf("deactivate seasons: %w", err)
		}
		if err := tx.Create(models.SeasonModelFromDomain(s)).Error; err != nil {
			return fmt.Errorf("insert season: %w", err)
		}
		return nil
	})
}

var _ season.Repository = (*GormSeasonRepository)(nil)
