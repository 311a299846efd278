package models

import (
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
	PaymentExempt    PaymentStatus = "exempt"
)

type Participant struct {
	gorm.Model
	RegistrationID uint   `json:"registration_id"`
	Name           string `json:"name" validate:"required"`
	IDNumber       string `json:"id_number"`
	AgeRange       string `json:"age_range"`
	Phone          string `json:"phone"`
	Email          string `json:"email" validate:"omitempty,email"`
}

type Registration struct {
	gorm.Model
	Reference     string        `json:"reference" gorm:"uniqueIndex"`
	UserID        uint          `json:"user_id" gorm:"index"`
	User          User          `json:"-" gorm:"foreignKey:UserID"`
	TripID        uint          `json:"trip_id" gorm:"index"`
	CustomerEmail string        `json:"customer_email" validate:"required,email"`
	Participants  []Participant `json:"participants" gorm:"constraint:OnDelete:CASCADE" validate:"min=1,dive"`
	SelectedDays  []int         `json:"selected_days" gorm:"serializer:json"`
	PaymentStatus PaymentStatus `json:"payment_status" validate:"oneof=pending partial completed exempt"`
	// Status is a second, legacy completion flag that predates
	// PaymentStatus. Both are consulted when deciding "paid".
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
	AmountPaid  float64 `json:"amount_paid"`
	IsGroup     bool    `json:"is_group"`
	GroupName   string  `json:"group_name"`
	GroupType   string  `json:"group_type"`
	Cancelled   bool    `json:"cancelled"`
}
