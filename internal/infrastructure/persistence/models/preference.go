package models

import "time"

// UserPreferenceModel is one per-user key-value entry
type UserPreferenceModel struct {
	UserID    string `gorm:"type:varchar(64);primaryKey"`
	Key       string `gorm:"type:varchar(200);primaryKey"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (UserPreferenceModel) TableName() string { return "user_preferences" }
