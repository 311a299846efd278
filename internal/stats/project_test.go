package stats

import (
	"testing"

	"github.com/nifgashim/trek-api/internal/models"
)

func TestProjectByDay_FanOut(t *testing.T) {
	regs := []models.Registration{
		{
			Reference:    "r1",
			SelectedDays: []int{1, 2, 3},
			Participants: []models.Participant{{Name: "alice", Email: "alice@example.com", AgeRange: "7-10"}},
		},
		{
			Reference:     "r2",
			SelectedDays:  []int{2},
			PaymentStatus: models.PaymentCompleted,
			Participants:  []models.Participant{{Name: "bob", Email: "bob@example.com"}},
		},
	}

	proj := ProjectByDay(regs)

	if len(proj.ByDay[1]) != 1 || len(proj.ByDay[3]) != 1 {
		t.Errorf("days 1/3 = %d/%d rows, want 1/1", len(proj.ByDay[1]), len(proj.ByDay[3]))
	}
	if len(proj.ByDay[2]) != 2 {
		t.Fatalf("day 2 = %d rows, want 2", len(proj.ByDay[2]))
	}

	// Alice selected three days but appears once in the all view.
	if len(proj.All) != 2 {
		t.Fatalf("All = %d rows, want 2", len(proj.All))
	}

	alice := proj.ByDay[1][0]
	if !alice.IsChild {
		t.Error("alice should be classified as child")
	}
	if alice.IsPaid {
		t.Error("alice should not be paid")
	}
	bob := proj.ByDay[2][1]
	if !bob.IsPaid {
		t.Error("bob should be paid")
	}
}

func TestProjectByDay_DuplicateDaySetLike(t *testing.T) {
	regs := []models.Registration{
		{
			Reference:    "r1",
			SelectedDays: []int{1, 1, 1},
			Participants: []models.Participant{{Name: "alice"}},
		},
	}

	proj := ProjectByDay(regs)

	if len(proj.ByDay[1]) != 1 {
		t.Errorf("day 1 = %d rows, want 1 (duplicate day entries collapse)", len(proj.ByDay[1]))
	}
}

func TestProjectByDay_DedupStability(t *testing.T) {
	regs := []models.Registration{
		{
			Reference:    "first",
			SelectedDays: []int{1},
			Participants: []models.Participant{{Name: "alice", Email: "alice@example.com", Phone: "111"}},
		},
		{
			Reference:    "second",
			SelectedDays: []int{2},
			Participants: []models.Participant{{Name: "alice", Email: "alice@example.com", Phone: "222"}},
		},
	}

	proj := ProjectByDay(regs)

	if len(proj.All) != 1 {
		t.Fatalf("All = %d rows, want 1", len(proj.All))
	}
	// First occurrence wins; the later phone number is not reconciled.
	if proj.All[0].Phone != "111" {
		t.Errorf("All[0].Phone = %q, want %q", proj.All[0].Phone, "111")
	}
	if proj.All[0].Reference != "first" {
		t.Errorf("All[0].Reference = %q, want %q", proj.All[0].Reference, "first")
	}
}

func TestProjectByDay_NameKeyWhenNoEmail(t *testing.T) {
	regs := []models.Registration{
		{SelectedDays: []int{1}, Participants: []models.Participant{{Name: "no-email"}}},
		{SelectedDays: []int{2}, Participants: []models.Participant{{Name: "no-email"}}},
		{SelectedDays: []int{2}, Participants: []models.Participant{{Name: "other"}}},
	}

	proj := ProjectByDay(regs)

	if len(proj.All) != 2 {
		t.Errorf("All = %d rows, want 2 (name used as fallback key)", len(proj.All))
	}
}
