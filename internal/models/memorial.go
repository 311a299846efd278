package models

import (
	"gorm.io/gorm"
)

type ApprovalStatus string

const (
	MemorialPending  ApprovalStatus = "pending"
	MemorialApproved ApprovalStatus = "approved"
	MemorialRejected ApprovalStatus = "rejected"
)

type Dedication struct {
	gorm.Model
	MemorialID  uint   `json:"memorial_id"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	Content     string `json:"content" gorm:"type:text"`
}

type Memorial struct {
	gorm.Model
	TripID         uint           `json:"trip_id" gorm:"index"`
	FallenName     string         `json:"fallen_name"`
	DateOfFall     string         `json:"date_of_fall"`
	PlaceOfFall    string         `json:"place_of_fall"`
	Story          string         `json:"story" gorm:"type:text"`
	Status         ApprovalStatus `json:"status" gorm:"default:pending"`
	SubmitterEmail string         `json:"submitter_email"`
	// DisplayOnDate is the trek day's calendar date the memorial is
	// shown on. Nil means unassigned.
	DisplayOnDate *string      `json:"display_on_date"`
	Dedications   []Dedication `json:"dedications" gorm:"constraint:OnDelete:CASCADE"`
}
