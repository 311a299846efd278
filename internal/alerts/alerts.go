package alerts

import (
	"fmt"

	"github.com/nifgashim/trek-api/internal/models"
	"gorm.io/gorm"
)

type Alert struct {
	Key      string `json:"key"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Store persists per-user alert dismissals. Injected so the filtering
// logic stays testable without a database.
type Store interface {
	IsDismissed(userID uint, key string) (bool, error)
	Dismiss(userID uint, key string) error
}

// Filter drops alerts the user dismissed, preserving input order.
func Filter(all []Alert, store Store, userID uint) ([]Alert, error) {
	visible := make([]Alert, 0, len(all))
	for _, a := range all {
		dismissed, err := store.IsDismissed(userID, a.Key)
		if err != nil {
			return nil, err
		}
		if !dismissed {
			visible = append(visible, a)
		}
	}
	return visible, nil
}

// Derive builds the organizer dashboard alerts from current data.
func Derive(db *gorm.DB) ([]Alert, error) {
	var alerts []Alert

	var pendingMemorials int64
	if err := db.Model(&models.Memorial{}).Where("status = ?", models.MemorialPending).Count(&pendingMemorials).Error; err != nil {
		return nil, err
	}
	if pendingMemorials > 0 {
		alerts = append(alerts, Alert{
			Key:      "memorials-pending",
			Severity: "info",
			Message:  fmt.Sprintf("%d memorial submissions await review", pendingMemorials),
		})
	}

	var unassigned int64
	if err := db.Model(&models.Memorial{}).
		Where("status = ? AND display_on_date IS NULL", models.MemorialApproved).
		Count(&unassigned).Error; err != nil {
		return nil, err
	}
	if unassigned > 0 {
		alerts = append(alerts, Alert{
			Key:      "memorials-unassigned",
			Severity: "warning",
			Message:  fmt.Sprintf("%d approved memorials are not assigned to a trek day", unassigned),
		})
	}

	var unpaid int64
	if err := db.Model(&models.Registration{}).
		Where("cancelled = ? AND payment_status NOT IN ? AND status != ?",
			false, []models.PaymentStatus{models.PaymentCompleted, models.PaymentExempt}, "completed").
		Count(&unpaid).Error; err != nil {
		return nil, err
	}
	if unpaid > 0 {
		alerts = append(alerts, Alert{
			Key:      "registrations-unpaid",
			Severity: "warning",
			Message:  fmt.Sprintf("%d registrations have outstanding payments", unpaid),
		})
	}

	return alerts, nil
}

// GormStore keeps dismissals in the dismissed_alerts table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) IsDismissed(userID uint, key string) (bool, error) {
	var count int64
	err := s.db.Model(&models.DismissedAlert{}).
		Where("user_id = ? AND alert_key = ?", userID, key).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) Dismiss(userID uint, key string) error {
	dismissed, err := s.IsDismissed(userID, key)
	if err != nil || dismissed {
		return err
	}
	return s.db.Create(&models.DismissedAlert{UserID: userID, AlertKey: key}).Error
}
