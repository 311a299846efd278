package planner

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nifgashim/trek-api/internal/models"
	"github.com/nifgashim/trek-api/internal/suggest"
	"gorm.io/gorm"
)

// Assign sets a memorial's display date to the trek day identified by
// dayNumber within the memorial's trip, or clears it when dayNumber is
// nil. Assigning the same day twice is a no-op on the second call.
func Assign(db *gorm.DB, memorialID uint, dayNumber *int) error {
	var memorial models.Memorial
	if err := db.First(&memorial, memorialID).Error; err != nil {
		return fmt.Errorf("memorial %d: %w", memorialID, err)
	}

	if dayNumber == nil {
		return db.Model(&memorial).Update("display_on_date", nil).Error
	}

	var day models.TrekDay
	if err := db.Where("trip_id = ? AND day_number = ?", memorial.TripID, *dayNumber).First(&day).Error; err != nil {
		return fmt.Errorf("trek day %d: %w", *dayNumber, err)
	}

	return db.Model(&memorial).Update("display_on_date", day.Date).Error
}

// Result reports the outcome of a batch distribution. There is no
// atomicity across the batch: some assignments may land while others
// are skipped.
type Result struct {
	Applied int      `json:"applied"`
	Skipped int      `json:"skipped"`
	Reasons []string `json:"reasons,omitempty"`
}

// AutoDistribute asks the oracle to spread a trip's approved memorials
// across its trek days and applies every suggestion that survives
// bounds checking. Unknown indices, out-of-range day numbers, and
// failed writes are skipped, never rolled back.
func AutoDistribute(ctx context.Context, db *gorm.DB, tripID uint, oracle suggest.Oracle) (Result, error) {
	var memorials []models.Memorial
	if err := db.Where("trip_id = ? AND status = ?", tripID, models.MemorialApproved).
		Order("id asc").Find(&memorials).Error; err != nil {
		return Result{}, fmt.Errorf("failed to load memorials: %w", err)
	}

	var days []models.TrekDay
	if err := db.Where("trip_id = ?", tripID).Order("day_number asc").Find(&days).Error; err != nil {
		return Result{}, fmt.Errorf("failed to load trek days: %w", err)
	}

	if len(memorials) == 0 || len(days) == 0 {
		return Result{}, nil
	}

	validDays := map[int]bool{}
	for _, d := range days {
		validDays[d.DayNumber] = true
	}

	var plan map[string]int
	if err := oracle.Suggest(ctx, buildPrompt(memorials, days), &plan); err != nil {
		return Result{}, fmt.Errorf("suggestion failed: %w", err)
	}

	var res Result
	for _, key := range sortedKeys(plan) {
		dayNumber := plan[key]

		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(memorials) {
			res.Skipped++
			res.Reasons = append(res.Reasons, fmt.Sprintf("index %q out of range", key))
			continue
		}
		if !validDays[dayNumber] {
			res.Skipped++
			res.Reasons = append(res.Reasons, fmt.Sprintf("day %d does not exist", dayNumber))
			continue
		}

		if err := Assign(db, memorials[idx].ID, &dayNumber); err != nil {
			res.Skipped++
			res.Reasons = append(res.Reasons, fmt.Sprintf("memorial %d: %v", memorials[idx].ID, err))
			continue
		}
		res.Applied++
	}

	return res, nil
}

func buildPrompt(memorials []models.Memorial, days []models.TrekDay) string {
	perDay := map[string]int{}
	unassigned := 0
	for _, m := range memorials {
		if m.DisplayOnDate == nil {
			unassigned++
		} else {
			perDay[*m.DisplayOnDate]++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A memorial trek has %d days and %d approved memorial records, %d of them unassigned.\n",
		len(days), len(memorials), unassigned)
	b.WriteString("Current load per day:\n")
	for _, d := range days {
		fmt.Fprintf(&b, "- day %d (%s): %d memorials\n", d.DayNumber, d.Date, perDay[d.Date])
	}
	fmt.Fprintf(&b, "Memorial indices run from 0 to %d in the order given.\n", len(memorials)-1)
	b.WriteString("Suggest an even distribution. Reply with a JSON object mapping memorial index to day number, e.g. {\"0\": 1, \"1\": 2}.")
	return b.String()
}

func sortedKeys(plan map[string]int) []string {
	keys := make([]string, 0, len(plan))
	for k := range plan {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
