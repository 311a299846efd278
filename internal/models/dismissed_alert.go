package models

import (
	"gorm.io/gorm"
)

// DismissedAlert records that a user dismissed a dashboard alert key.
type DismissedAlert struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"uniqueIndex:idx_user_alert"`
	AlertKey string `json:"alert_key" gorm:"uniqueIndex:idx_user_alert"`
}
