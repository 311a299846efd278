package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	DiscordID string `gorm:"uniqueIndex"`
	Username  string
	Email     string
	Avatar    string
	// IDNumber and AgeRange come from the profile form and back the
	// age-histogram fallback when a participant row has no age range.
	IDNumber string `gorm:"index"`
	AgeRange string
}
