package stats

import (
	"testing"

	"github.com/nifgashim/trek-api/internal/models"
)

func TestNormalizeRegistration_Aliases(t *testing.T) {
	raw := RawRegistration{
		Email:             "user@example.com",
		SelectedDaysCamel: []int{1, 3},
		Amount:            500,
		PaidAmount:        100,
		OrganizedGroup:    true,
		GroupName:         "scouts",
		Participants: []RawParticipant{
			{FullName: "alice", AgeGroup: "7-10"},
		},
	}

	reg, err := NormalizeRegistration(raw)
	if err != nil {
		t.Fatalf("NormalizeRegistration returned error: %v", err)
	}

	if reg.CustomerEmail != "user@example.com" {
		t.Errorf("CustomerEmail = %q", reg.CustomerEmail)
	}
	if len(reg.SelectedDays) != 2 || reg.SelectedDays[0] != 1 {
		t.Errorf("SelectedDays = %v", reg.SelectedDays)
	}
	if reg.TotalAmount != 500 {
		t.Errorf("TotalAmount = %v, want 500", reg.TotalAmount)
	}
	if reg.AmountPaid != 100 {
		t.Errorf("AmountPaid = %v, want 100", reg.AmountPaid)
	}
	if !reg.IsGroup {
		t.Error("IsGroup should be set from organized_group alias")
	}
	if reg.PaymentStatus != models.PaymentPending {
		t.Errorf("PaymentStatus = %q, want pending default", reg.PaymentStatus)
	}
	if reg.Participants[0].Name != "alice" || reg.Participants[0].AgeRange != "7-10" {
		t.Errorf("participant aliases not resolved: %+v", reg.Participants[0])
	}
}

func TestNormalizeRegistration_CanonicalFieldsWin(t *testing.T) {
	raw := RawRegistration{
		CustomerEmail: "canonical@example.com",
		Email:         "alias@example.com",
		SelectedDays:  []int{2},
		Days:          []int{9},
		TotalAmount:   300,
		Amount:        999,
		Participants:  []RawParticipant{{Name: "a"}},
	}

	reg, err := NormalizeRegistration(raw)
	if err != nil {
		t.Fatalf("NormalizeRegistration returned error: %v", err)
	}

	if reg.CustomerEmail != "canonical@example.com" {
		t.Errorf("CustomerEmail = %q, canonical field should win", reg.CustomerEmail)
	}
	if reg.SelectedDays[0] != 2 {
		t.Errorf("SelectedDays = %v, canonical field should win", reg.SelectedDays)
	}
	if reg.TotalAmount != 300 {
		t.Errorf("TotalAmount = %v, canonical field should win", reg.TotalAmount)
	}
}

func TestNormalizeRegistration_Invalid(t *testing.T) {
	t.Run("MissingEmail", func(t *testing.T) {
		raw := RawRegistration{Participants: []RawParticipant{{Name: "a"}}}
		if _, err := NormalizeRegistration(raw); err == nil {
			t.Error("expected error for missing customer email")
		}
	})

	t.Run("NoParticipants", func(t *testing.T) {
		raw := RawRegistration{Email: "user@example.com"}
		if _, err := NormalizeRegistration(raw); err == nil {
			t.Error("expected error for empty participant list")
		}
	})

	t.Run("BadPaymentStatus", func(t *testing.T) {
		raw := RawRegistration{
			Email:         "user@example.com",
			PaymentStatus: "whatever",
			Participants:  []RawParticipant{{Name: "a"}},
		}
		if _, err := NormalizeRegistration(raw); err == nil {
			t.Error("expected error for unknown payment status")
		}
	})
}
