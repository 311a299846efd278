package stats

import (
	"testing"

	"github.com/nifgashim/trek-api/internal/models"
)

type mapResolver map[string]string

func (m mapResolver) AgeRange(idNumber string) (string, bool) {
	v, ok := m[idNumber]
	return v, ok
}

func TestAggregate_Scenario(t *testing.T) {
	regs := []models.Registration{
		{
			Participants: []models.Participant{
				{Name: "a", AgeRange: "7-10"},
				{Name: "b", AgeRange: "35-45"},
			},
			PaymentStatus: models.PaymentPending,
		},
	}

	s := Aggregate(regs, nil)

	if s.TotalRegistrations != 1 {
		t.Errorf("TotalRegistrations = %d, want 1", s.TotalRegistrations)
	}
	if s.TotalParticipants != 2 {
		t.Errorf("TotalParticipants = %d, want 2", s.TotalParticipants)
	}
	if s.TotalAdults != 1 {
		t.Errorf("TotalAdults = %d, want 1", s.TotalAdults)
	}
	if s.TotalChildren != 1 {
		t.Errorf("TotalChildren = %d, want 1", s.TotalChildren)
	}
	if s.PaidCount != 0 {
		t.Errorf("PaidCount = %d, want 0", s.PaidCount)
	}
	if s.PendingCount != 1 {
		t.Errorf("PendingCount = %d, want 1", s.PendingCount)
	}
	if s.ChildrenByAgeRange["7-10"] != 1 {
		t.Errorf("ChildrenByAgeRange[7-10] = %d, want 1", s.ChildrenByAgeRange["7-10"])
	}
	if s.ParentsByAge["35-45"] != 1 {
		t.Errorf("ParentsByAge[35-45] = %d, want 1", s.ParentsByAge["35-45"])
	}
}

func TestAggregate_CountConservation(t *testing.T) {
	regs := []models.Registration{
		{Participants: []models.Participant{{Name: "a", AgeRange: "7-10"}, {Name: "b"}, {Name: "c", AgeRange: "bogus"}}},
		{Participants: []models.Participant{{Name: "d", AgeRange: "21+"}}},
		{Participants: nil},
	}

	s := Aggregate(regs, nil)

	wantParticipants := 4
	if s.TotalParticipants != wantParticipants {
		t.Errorf("TotalParticipants = %d, want %d", s.TotalParticipants, wantParticipants)
	}
	if s.TotalAdults+s.TotalChildren != s.TotalParticipants {
		t.Errorf("adults+children = %d, want %d", s.TotalAdults+s.TotalChildren, s.TotalParticipants)
	}
	if s.PaidCount+s.PendingCount != s.TotalRegistrations {
		t.Errorf("paid+pending = %d, want %d", s.PaidCount+s.PendingCount, s.TotalRegistrations)
	}
}

// Either completion field alone must count as paid. This covers the
// legacy Status flag that coexists with PaymentStatus; records exist
// with only one of the two set.
func TestAggregate_DualStatusFields(t *testing.T) {
	t.Run("PaymentStatusOnly", func(t *testing.T) {
		regs := []models.Registration{{PaymentStatus: models.PaymentCompleted}}
		if s := Aggregate(regs, nil); s.PaidCount != 1 {
			t.Errorf("PaidCount = %d, want 1", s.PaidCount)
		}
	})

	t.Run("LegacyStatusOnly", func(t *testing.T) {
		regs := []models.Registration{{PaymentStatus: models.PaymentPending, Status: "completed"}}
		if s := Aggregate(regs, nil); s.PaidCount != 1 {
			t.Errorf("PaidCount = %d, want 1", s.PaidCount)
		}
	})

	t.Run("NeitherSet", func(t *testing.T) {
		regs := []models.Registration{{PaymentStatus: models.PaymentPartial}}
		s := Aggregate(regs, nil)
		if s.PaidCount != 0 {
			t.Errorf("PaidCount = %d, want 0", s.PaidCount)
		}
		if s.PendingCount != 1 {
			t.Errorf("PendingCount = %d, want 1", s.PendingCount)
		}
	})
}

func TestAggregate_ProfileFallback(t *testing.T) {
	regs := []models.Registration{
		{Participants: []models.Participant{
			{Name: "with-profile", IDNumber: "111"},
			{Name: "no-data", IDNumber: "999"},
		}},
	}
	profiles := mapResolver{"111": "7-10"}

	s := Aggregate(regs, profiles)

	if s.TotalChildren != 1 {
		t.Errorf("TotalChildren = %d, want 1 (profile fallback)", s.TotalChildren)
	}
	if s.ChildrenByAgeRange["7-10"] != 1 {
		t.Errorf("ChildrenByAgeRange[7-10] = %d, want 1", s.ChildrenByAgeRange["7-10"])
	}

	// No age range anywhere: adult bucket, no histogram entry.
	if s.TotalAdults != 1 {
		t.Errorf("TotalAdults = %d, want 1", s.TotalAdults)
	}
	total := 0
	for _, n := range s.ParentsByAge {
		total += n
	}
	if total != 0 {
		t.Errorf("ParentsByAge should be empty, got %v", s.ParentsByAge)
	}
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	regs := []models.Registration{
		{Participants: []models.Participant{{Name: "a", AgeRange: "7-10"}}},
	}

	Aggregate(regs, nil)

	if regs[0].Participants[0].AgeRange != "7-10" {
		t.Error("input registration was mutated")
	}
}
