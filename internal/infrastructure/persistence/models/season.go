package models

import (
	"time"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/season"
)

// SeasonModel is the persistence model for seasons
type SeasonModel struct {
	BaseModel
	Name      string    `gorm:"type:varchar(100);not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   *time.Time
	IsActive  bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (SeasonModel) TableName() string { return "seasons" }

// ToDomain converts to the domain season
func (m *SeasonModel) ToDomain() *season.Season {
	return &season.Season{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		IsActive:   m.IsActive,
	}
}

// SeasonModelFromDomain converts a domain season
func SeasonModelFromDomain(s *season.Season) *SeasonModel {
	m := &SeasonModel{
		Name:      s.Name,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		IsActive:  s.IsActive,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
