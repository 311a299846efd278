package models

import (
	"gorm.io/gorm"
)

// RegistrationHistory is an append-only snapshot of a registration's
// payment state, written inside the same transaction as the change.
type RegistrationHistory struct {
	gorm.Model
	RegistrationID uint          `json:"registration_id" gorm:"index"`
	UserID         uint          `json:"user_id"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	Status         string        `json:"status"`
	AmountPaid     float64       `json:"amount_paid"`
	Note           string        `json:"note"`
}
