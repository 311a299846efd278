package stats

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/nifgashim/trek-api/internal/models"
)

var validate = validator.New()

// RawRegistration mirrors every field-name alias observed in signup
// payloads from older clients (selectedDays vs selected_days, amount vs
// total_amount, and so on). It exists only at the API boundary;
// everything past NormalizeRegistration sees one canonical shape.
type RawRegistration struct {
	CustomerEmail string `json:"customer_email,omitempty"`
	Email         string `json:"email,omitempty"`

	Participants []RawParticipant `json:"participants,omitempty"`

	SelectedDays      []int `json:"selected_days,omitempty"`
	SelectedDaysCamel []int `json:"selectedDays,omitempty"`
	Days              []int `json:"days,omitempty"`

	TotalAmount float64 `json:"total_amount,omitempty"`
	Amount      float64 `json:"amount,omitempty"`

	AmountPaid float64 `json:"amount_paid,omitempty"`
	PaidAmount float64 `json:"paid_amount,omitempty"`

	PaymentStatus string `json:"payment_status,omitempty"`
	Status        string `json:"status,omitempty"`

	IsGroup        bool   `json:"is_group,omitempty"`
	OrganizedGroup bool   `json:"organized_group,omitempty"`
	GroupName      string `json:"group_name,omitempty"`
	GroupType      string `json:"group_type,omitempty"`
}

type RawParticipant struct {
	Name     string `json:"name,omitempty"`
	FullName string `json:"full_name,omitempty"`
	IDNumber string `json:"id_number,omitempty"`
	AgeRange string `json:"age_range,omitempty"`
	AgeGroup string `json:"ageGroup,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// NormalizeRegistration maps a raw payload into the canonical model,
// resolving each alias pair (first non-zero wins) and validating the
// result. Payment status defaults to pending.
func NormalizeRegistration(raw RawRegistration) (models.Registration, error) {
	reg := models.Registration{
		CustomerEmail: firstString(raw.CustomerEmail, raw.Email),
		SelectedDays:  firstInts(raw.SelectedDays, raw.SelectedDaysCamel, raw.Days),
		TotalAmount:   firstFloat(raw.TotalAmount, raw.Amount),
		AmountPaid:    firstFloat(raw.AmountPaid, raw.PaidAmount),
		PaymentStatus: models.PaymentStatus(firstString(raw.PaymentStatus, string(models.PaymentPending))),
		Status:        raw.Status,
		IsGroup:       raw.IsGroup || raw.OrganizedGroup,
		GroupName:     raw.GroupName,
		GroupType:     raw.GroupType,
	}

	for _, p := range raw.Participants {
		reg.Participants = append(reg.Participants, models.Participant{
			Name:     firstString(p.Name, p.FullName),
			IDNumber: p.IDNumber,
			AgeRange: firstString(p.AgeRange, p.AgeGroup),
			Phone:    p.Phone,
			Email:    p.Email,
		})
	}

	if err := validate.Struct(&reg); err != nil {
		return models.Registration{}, fmt.Errorf("invalid registration: %w", err)
	}

	return reg, nil
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInts(vals ...[]int) []int {
	for _, v := range vals {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}

func firstFloat(vals ...float64) float64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}
