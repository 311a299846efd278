package stats

import (
	"github.com/nifgashim/trek-api/internal/models"
)

// ProfileResolver looks up an age range for a participant's ID number
// when the participant row itself carries none. A gorm-backed resolver
// reads user profiles; tests use a map.
type ProfileResolver interface {
	AgeRange(idNumber string) (string, bool)
}

type Summary struct {
	TotalRegistrations int            `json:"total_registrations"`
	TotalParticipants  int            `json:"total_participants"`
	TotalAdults        int            `json:"total_adults"`
	TotalChildren      int            `json:"total_children"`
	PaidCount          int            `json:"paid_count"`
	PendingCount       int            `json:"pending_count"`
	ChildrenByAgeRange map[string]int `json:"children_by_age_range"`
	ParentsByAge       map[string]int `json:"parents_by_age"`
}

// IsPaid consults both completion fields. The legacy Status flag and
// the newer PaymentStatus coexist in older records; either one set to
// completed means paid. Do not unify them without a data migration.
func IsPaid(r models.Registration) bool {
	return r.PaymentStatus == models.PaymentCompleted || r.Status == "completed"
}

// Aggregate computes registration/participant counts over an already
// fetched snapshot. It never mutates its input and performs no I/O.
// Participants with no resolvable age range count as adults but are
// dropped from the histograms.
func Aggregate(regs []models.Registration, profiles ProfileResolver) Summary {
	s := Summary{
		ChildrenByAgeRange: map[string]int{},
		ParentsByAge:       map[string]int{},
	}

	for _, r := range regs {
		s.TotalRegistrations++
		if IsPaid(r) {
			s.PaidCount++
		}

		for _, p := range r.Participants {
			s.TotalParticipants++

			ageRange := p.AgeRange
			if ageRange == "" && profiles != nil {
				if v, ok := profiles.AgeRange(p.IDNumber); ok {
					ageRange = v
				}
			}

			if IsChild(ageRange) {
				s.TotalChildren++
				if ageRange != "" {
					s.ChildrenByAgeRange[ageRange]++
				}
			} else {
				s.TotalAdults++
				if ageRange != "" {
					s.ParentsByAge[ageRange]++
				}
			}
		}
	}

	s.PendingCount = s.TotalRegistrations - s.PaidCount
	return s
}
