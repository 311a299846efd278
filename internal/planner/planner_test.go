package planner

import (
	"context"
	"testing"

	"github.com/nifgashim/trek-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Trip{}, &models.TrekDay{}, &models.Memorial{}, &models.Dedication{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

type fakeOracle struct {
	plan map[string]int
	err  error
}

func (f *fakeOracle) Suggest(ctx context.Context, prompt string, out any) error {
	if f.err != nil {
		return f.err
	}
	*(out.(*map[string]int)) = f.plan
	return nil
}

func TestAssign(t *testing.T) {
	db := setupDB(t)

	trip := models.Trip{Name: "Nifgashim 2025", Days: []models.TrekDay{
		{DayNumber: 1, Date: "2025-01-01"},
		{DayNumber: 2, Date: "2025-01-02"},
	}}
	db.Create(&trip)

	memorial := models.Memorial{TripID: trip.ID, FallenName: "m1", Status: models.MemorialApproved}
	db.Create(&memorial)

	day := 1
	if err := Assign(db, memorial.ID, &day); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}

	var got models.Memorial
	db.First(&got, memorial.ID)
	if got.DisplayOnDate == nil || *got.DisplayOnDate != "2025-01-01" {
		t.Fatalf("DisplayOnDate = %v, want 2025-01-01", got.DisplayOnDate)
	}

	t.Run("Idempotent", func(t *testing.T) {
		if err := Assign(db, memorial.ID, &day); err != nil {
			t.Fatalf("second Assign returned error: %v", err)
		}
		var again models.Memorial
		db.First(&again, memorial.ID)
		if again.DisplayOnDate == nil || *again.DisplayOnDate != "2025-01-01" {
			t.Errorf("DisplayOnDate changed on repeat assign: %v", again.DisplayOnDate)
		}
	})

	t.Run("Reassign", func(t *testing.T) {
		day2 := 2
		if err := Assign(db, memorial.ID, &day2); err != nil {
			t.Fatalf("reassign returned error: %v", err)
		}
		var got models.Memorial
		db.First(&got, memorial.ID)
		if got.DisplayOnDate == nil || *got.DisplayOnDate != "2025-01-02" {
			t.Errorf("DisplayOnDate = %v, want 2025-01-02", got.DisplayOnDate)
		}
	})

	t.Run("Unassign", func(t *testing.T) {
		if err := Assign(db, memorial.ID, nil); err != nil {
			t.Fatalf("unassign returned error: %v", err)
		}
		var got models.Memorial
		db.First(&got, memorial.ID)
		if got.DisplayOnDate != nil {
			t.Errorf("DisplayOnDate = %v, want nil", got.DisplayOnDate)
		}
	})

	t.Run("UnknownDay", func(t *testing.T) {
		bad := 99
		if err := Assign(db, memorial.ID, &bad); err == nil {
			t.Error("expected error for unknown day number")
		}
	})

	t.Run("UnknownMemorial", func(t *testing.T) {
		if err := Assign(db, 9999, &day); err == nil {
			t.Error("expected error for unknown memorial")
		}
	})
}

func TestAutoDistribute(t *testing.T) {
	db := setupDB(t)

	trip := models.Trip{Name: "trek", Days: []models.TrekDay{
		{DayNumber: 1, Date: "2025-01-01"},
	}}
	db.Create(&trip)

	m1 := models.Memorial{TripID: trip.ID, FallenName: "m1", Status: models.MemorialApproved}
	m2 := models.Memorial{TripID: trip.ID, FallenName: "m2", Status: models.MemorialApproved}
	db.Create(&m1)
	db.Create(&m2)

	// Index 0 resolves; index 5 and day 99 are out of range.
	oracle := &fakeOracle{plan: map[string]int{"0": 1, "5": 99}}

	res, err := AutoDistribute(context.Background(), db, trip.ID, oracle)
	if err != nil {
		t.Fatalf("AutoDistribute returned error: %v", err)
	}

	if res.Applied != 1 {
		t.Errorf("Applied = %d, want 1", res.Applied)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}

	var got models.Memorial
	db.First(&got, m1.ID)
	if got.DisplayOnDate == nil || *got.DisplayOnDate != "2025-01-01" {
		t.Errorf("m1.DisplayOnDate = %v, want 2025-01-01", got.DisplayOnDate)
	}
	var untouched models.Memorial
	db.First(&untouched, m2.ID)
	if untouched.DisplayOnDate != nil {
		t.Errorf("m2.DisplayOnDate = %v, want nil", untouched.DisplayOnDate)
	}
}

func TestAutoDistribute_OnlyApproved(t *testing.T) {
	db := setupDB(t)

	trip := models.Trip{Name: "trek", Days: []models.TrekDay{{DayNumber: 1, Date: "2025-01-01"}}}
	db.Create(&trip)

	pending := models.Memorial{TripID: trip.ID, FallenName: "p", Status: models.MemorialPending}
	db.Create(&pending)

	oracle := &fakeOracle{plan: map[string]int{"0": 1}}
	res, err := AutoDistribute(context.Background(), db, trip.ID, oracle)
	if err != nil {
		t.Fatalf("AutoDistribute returned error: %v", err)
	}
	if res.Applied != 0 || res.Skipped != 0 {
		t.Errorf("res = %+v, want empty result when no approved memorials", res)
	}

	var got models.Memorial
	db.First(&got, pending.ID)
	if got.DisplayOnDate != nil {
		t.Error("pending memorial must not be assigned")
	}
}

func TestAutoDistribute_OracleFailure(t *testing.T) {
	db := setupDB(t)

	trip := models.Trip{Name: "trek", Days: []models.TrekDay{{DayNumber: 1, Date: "2025-01-01"}}}
	db.Create(&trip)
	db.Create(&models.Memorial{TripID: trip.ID, FallenName: "m", Status: models.MemorialApproved})

	oracle := &fakeOracle{err: context.DeadlineExceeded}
	if _, err := AutoDistribute(context.Background(), db, trip.ID, oracle); err == nil {
		t.Error("expected error when oracle fails")
	}
}
